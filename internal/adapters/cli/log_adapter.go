package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/labres/internal/ports/primary"
)

// LogAdapter prints the audit trail.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// List prints audit entries, newest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No log entries found.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTOR\tENTITY\tACTION\tCHANGE")
	fmt.Fprintln(w, "----\t-----\t------\t------\t------")
	for _, e := range entries {
		change := "-"
		if e.Action == "update" {
			change = fmt.Sprintf("%s: %s → %s", e.FieldName, orDash(e.OldValue), orDash(e.NewValue))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt,
			e.ActorID,
			e.EntityID,
			e.Action,
			change,
		)
	}
	w.Flush()
	return entries, nil
}
