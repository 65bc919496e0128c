package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/labres/internal/ports/primary"
)

// LabAdapter translates CLI operations to LabService calls.
type LabAdapter struct {
	service primary.LabService
	out     io.Writer
}

// NewLabAdapter creates a new LabAdapter with the given service.
func NewLabAdapter(service primary.LabService, out io.Writer) *LabAdapter {
	return &LabAdapter{
		service: service,
		out:     out,
	}
}

// Create registers a lab.
func (a *LabAdapter) Create(ctx context.Context, req primary.CreateLabRequest) (*primary.Lab, error) {
	lab, err := a.service.CreateLab(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Created lab %s: %s (%s)\n", okMark, lab.ID, lab.Name, lab.Code)
	return lab, nil
}

// List lists labs, optionally filtered by status.
func (a *LabAdapter) List(ctx context.Context, status string) ([]*primary.Lab, error) {
	labs, err := a.service.ListLabs(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}

	if len(labs) == 0 {
		fmt.Fprintln(a.out, "No labs found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Register your first lab:")
		fmt.Fprintln(a.out, "  labres lab create --code CHEM-1 --name \"Chemistry Lab\"")
		return labs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNAME\tLOCATION\tSTATUS")
	fmt.Fprintln(w, "--\t----\t----\t--------\t------")

	for _, lab := range labs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			lab.ID,
			lab.Code,
			lab.Name,
			orDash(lab.Location),
			lab.Status,
		)
	}

	w.Flush()
	return labs, nil
}

// Deactivate marks a lab inactive.
func (a *LabAdapter) Deactivate(ctx context.Context, labID string) error {
	if err := a.service.DeactivateLab(ctx, labID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Lab %s %s\n", okMark, labID, statusLabel("INACTIVE"))
	return nil
}
