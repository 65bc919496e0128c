package primary

import "context"

// DepreciationService defines the primary port for asset depreciation.
type DepreciationService interface {
	// RegisterAsset records a new asset. Cost, date and useful life may be omitted.
	RegisterAsset(ctx context.Context, req RegisterAssetRequest) (*Asset, error)

	// GetAsset retrieves an asset with its current book value.
	GetAsset(ctx context.Context, assetID string) (*Asset, error)

	// ListAssets lists assets, optionally filtered by lab.
	ListAssets(ctx context.Context, labID string) ([]*Asset, error)

	// CurrentValue computes the book value as of now without storing a snapshot.
	// Assets that cannot be depreciated report their acquisition cost.
	CurrentValue(ctx context.Context, assetID string) (string, error)

	// Calculate computes the depreciated value as of now and stores a snapshot.
	Calculate(ctx context.Context, assetID string) (*Depreciation, error)

	// History lists the stored snapshots for an asset, newest first.
	History(ctx context.Context, assetID string) ([]*Depreciation, error)
}

// RegisterAssetRequest contains parameters for registering an asset.
type RegisterAssetRequest struct {
	InventoryCode   string `validate:"required,max=50"`
	Name            string `validate:"required,max=100"`
	LabID           string
	Cost            string `validate:"omitempty,numeric"`
	AcquisitionDate string `validate:"omitempty,datetime=2006-01-02"`
	UsefulLifeYears int    `validate:"gte=0"`
}

// Asset represents an asset at the port boundary.
// CurrentValue is empty when neither a depreciated value nor a cost is known.
type Asset struct {
	ID              string
	InventoryCode   string
	Name            string
	LabID           string
	Cost            string
	AcquisitionDate string
	UsefulLifeYears int
	CurrentValue    string
}

// Depreciation represents a depreciation snapshot at the port boundary.
type Depreciation struct {
	ID           string
	AssetID      string
	CalculatedAt string
	Value        string
}
