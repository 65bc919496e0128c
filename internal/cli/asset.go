package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/labres/internal/ports/primary"
	"github.com/example/labres/internal/wire"
)

// AssetCmd returns the asset command
func AssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage lab assets and their depreciation",
	}

	cmd.AddCommand(assetRegisterCmd())
	cmd.AddCommand(assetListCmd())
	cmd.AddCommand(assetValueCmd())
	cmd.AddCommand(assetDepreciateCmd())
	cmd.AddCommand(assetHistoryCmd())

	return cmd
}

func assetRegisterCmd() *cobra.Command {
	var req primary.RegisterAssetRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an asset",
		Long: `Register an asset. Cost, acquisition date and useful life may be added later
but are required before the asset can be depreciated.

Examples:
  labres asset register --code INV-0001 --name Microscope --lab LAB-001 --cost 1200.00 --acquired 2024-02-01 --life 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(req.LabID, "lab"); err != nil {
				return err
			}
			_, err := wire.AssetAdapterWithOutput(cmd.OutOrStdout()).Register(NewContext(), req)
			return err
		},
	}

	cmd.Flags().StringVar(&req.InventoryCode, "code", "", "Unique inventory code (required)")
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Asset name (required)")
	cmd.Flags().StringVar(&req.LabID, "lab", "", "Lab holding the asset")
	cmd.Flags().StringVar(&req.Cost, "cost", "", "Acquisition cost")
	cmd.Flags().StringVar(&req.AcquisitionDate, "acquired", "", "Acquisition date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&req.UsefulLifeYears, "life", 0, "Useful life in years")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("name")

	return cmd
}

func assetListCmd() *cobra.Command {
	var labID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.AssetAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), labID)
			return err
		},
	}

	cmd.Flags().StringVar(&labID, "lab", "", "Filter by lab")

	return cmd
}

func assetValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "value [asset-id]",
		Short: "Show the current book value without recording it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "asset"); err != nil {
				return err
			}
			_, err := wire.AssetAdapterWithOutput(cmd.OutOrStdout()).Value(NewContext(), args[0])
			return err
		},
	}
}

func assetDepreciateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "depreciate [asset-id]",
		Short: "Compute and record the depreciated value as of today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "asset"); err != nil {
				return err
			}
			_, err := wire.AssetAdapterWithOutput(cmd.OutOrStdout()).Depreciate(NewContext(), args[0])
			return err
		},
	}
}

func assetHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [asset-id]",
		Short: "List recorded depreciation values, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "asset"); err != nil {
				return err
			}
			_, err := wire.AssetAdapterWithOutput(cmd.OutOrStdout()).History(NewContext(), args[0])
			return err
		},
	}
}
