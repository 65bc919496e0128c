package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/labres/internal/ports/primary"
	"github.com/example/labres/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	var filters primary.LogFilters

	cmd := &cobra.Command{
		Use:   "log [entity-id]",
		Short: "View the audit trail",
		Long: `View audit entries, newest first (default 50).

Examples:
  labres log
  labres log RES-001
  labres log --type lab --limit 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				filters.EntityID = args[0]
			}
			if filters.Limit <= 0 {
				filters.Limit = 50
			}
			_, err := wire.LogAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), filters)
			return err
		},
	}

	cmd.Flags().StringVarP(&filters.EntityType, "type", "t", "", "Filter by entity type (reservation, lab, asset)")
	cmd.Flags().IntVarP(&filters.Limit, "limit", "n", 50, "Maximum number of entries")

	return cmd
}
