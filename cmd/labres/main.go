package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/labres/internal/cli"
	"github.com/example/labres/internal/version"
)

func main() {
	var actor string

	rootCmd := &cobra.Command{
		Use:     "labres",
		Short:   "LABRES - lab reservations and asset depreciation",
		Version: version.String(),
		Long: `LABRES manages lab reservations and the assets kept in each lab.
Reservations move from PENDING to APPROVED or REJECTED; approved bookings
for the same lab never overlap.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.SetActorID(actor)
		},
	}

	rootCmd.PersistentFlags().StringVar(&actor, "actor", "", "Who is acting (default $LABRES_ACTOR, then \"system\")")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.LabCmd())
	rootCmd.AddCommand(cli.ReservationCmd())
	rootCmd.AddCommand(cli.AssetCmd())
	rootCmd.AddCommand(cli.LogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
