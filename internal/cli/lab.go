package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/labres/internal/ports/primary"
	"github.com/example/labres/internal/wire"
)

// LabCmd returns the lab command
func LabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Manage labs",
		Long:  `Register labs and take them out of service. Labs are never deleted.`,
	}

	cmd.AddCommand(labCreateCmd())
	cmd.AddCommand(labListCmd())
	cmd.AddCommand(labDeactivateCmd())

	return cmd
}

func labCreateCmd() *cobra.Command {
	var req primary.CreateLabRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new lab",
		Long: `Register a new, active lab.

Examples:
  labres lab create --code CHEM-1 --name "Chemistry Lab" --location "Building A"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.LabAdapterWithOutput(cmd.OutOrStdout()).Create(NewContext(), req)
			return err
		},
	}

	cmd.Flags().StringVar(&req.Code, "code", "", "Unique lab code (required)")
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Lab name (required)")
	cmd.Flags().StringVarP(&req.Location, "location", "l", "", "Where the lab is")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("name")

	return cmd
}

func labListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.LabAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), status)
			return err
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (ACTIVE, INACTIVE)")

	return cmd
}

func labDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate [lab-id]",
		Short: "Mark a lab inactive",
		Long:  `Mark a lab inactive. Existing reservations are kept; new ones are refused.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "lab"); err != nil {
				return err
			}
			return wire.LabAdapterWithOutput(cmd.OutOrStdout()).Deactivate(NewContext(), args[0])
		},
	}
}
