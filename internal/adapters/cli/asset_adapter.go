package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/labres/internal/ports/primary"
)

// AssetAdapter translates CLI operations to DepreciationService calls.
type AssetAdapter struct {
	service primary.DepreciationService
	out     io.Writer
}

// NewAssetAdapter creates a new AssetAdapter with the given service.
func NewAssetAdapter(service primary.DepreciationService, out io.Writer) *AssetAdapter {
	return &AssetAdapter{
		service: service,
		out:     out,
	}
}

// Register records a new asset.
func (a *AssetAdapter) Register(ctx context.Context, req primary.RegisterAssetRequest) (*primary.Asset, error) {
	asset, err := a.service.RegisterAsset(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Registered asset %s: %s (%s)\n", okMark, asset.ID, asset.Name, asset.InventoryCode)
	return asset, nil
}

// Depreciate computes and stores a depreciation snapshot.
func (a *AssetAdapter) Depreciate(ctx context.Context, assetID string) (*primary.Depreciation, error) {
	d, err := a.service.Calculate(ctx, assetID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s %s depreciated to %s\n", okMark, d.AssetID, d.Value)
	fmt.Fprintf(a.out, "  Snapshot: %s at %s\n", d.ID, d.CalculatedAt)
	return d, nil
}

// Value prints the current book value without storing it.
func (a *AssetAdapter) Value(ctx context.Context, assetID string) (string, error) {
	value, err := a.service.CurrentValue(ctx, assetID)
	if err != nil {
		return "", fmt.Errorf("failed to compute value: %w", err)
	}

	fmt.Fprintf(a.out, "%s: %s\n", assetID, orDash(value))
	return value, nil
}

// History lists stored snapshots for an asset.
func (a *AssetAdapter) History(ctx context.Context, assetID string) ([]*primary.Depreciation, error) {
	records, err := a.service.History(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintf(a.out, "No depreciation history for %s.\n", assetID)
		return records, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CALCULATED\tVALUE\tID")
	fmt.Fprintln(w, "----------\t-----\t--")
	for _, d := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.CalculatedAt, d.Value, d.ID)
	}
	w.Flush()
	return records, nil
}

// List lists assets, optionally filtered by lab.
func (a *AssetAdapter) List(ctx context.Context, labID string) ([]*primary.Asset, error) {
	assets, err := a.service.ListAssets(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	if len(assets) == 0 {
		fmt.Fprintln(a.out, "No assets found.")
		return assets, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNAME\tLAB\tCOST\tACQUIRED\tLIFE")
	fmt.Fprintln(w, "--\t----\t----\t---\t----\t--------\t----")
	for _, asset := range assets {
		life := "-"
		if asset.UsefulLifeYears > 0 {
			life = fmt.Sprintf("%dy", asset.UsefulLifeYears)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			asset.ID,
			asset.InventoryCode,
			asset.Name,
			orDash(asset.LabID),
			orDash(asset.Cost),
			orDash(asset.AcquisitionDate),
			life,
		)
	}
	w.Flush()
	return assets, nil
}
