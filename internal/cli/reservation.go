package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/labres/internal/ports/primary"
	"github.com/example/labres/internal/wire"
)

// ReservationCmd returns the reservation command
func ReservationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservation",
		Aliases: []string{"res"},
		Short:   "Manage lab reservations",
		Long: `Submit, approve and reject lab reservations.

Lifecycle: PENDING → APPROVED | REJECTED. Both outcomes are final.`,
	}

	cmd.AddCommand(reservationCreateCmd())
	cmd.AddCommand(reservationApproveCmd())
	cmd.AddCommand(reservationRejectCmd())
	cmd.AddCommand(reservationShowCmd())
	cmd.AddCommand(reservationListCmd())
	cmd.AddCommand(reservationCheckCmd())

	return cmd
}

func reservationCreateCmd() *cobra.Command {
	var req primary.CreateReservationRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a reservation request",
		Long: `Submit a PENDING reservation. The interval must be free of blocking reservations.

Examples:
  labres reservation create --lab LAB-001 --requester alice --date 2026-03-10 --start 09:00 --end 10:30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(req.LabID, "lab"); err != nil {
				return err
			}
			if req.RequesterID == "" {
				req.RequesterID = GetActorID()
			}
			_, err := wire.ReservationAdapterWithOutput(cmd.OutOrStdout()).Create(NewContext(), req)
			return err
		},
	}

	cmd.Flags().StringVar(&req.LabID, "lab", "", "Lab ID (required)")
	cmd.Flags().StringVarP(&req.RequesterID, "requester", "r", "", "Requester (defaults to --actor)")
	cmd.Flags().StringVarP(&req.Date, "date", "d", "", "Date as YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "Start time as HH:mm (required)")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "End time as HH:mm (required)")
	cmd.MarkFlagRequired("lab")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func reservationApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve [reservation-id]",
		Short: "Approve a pending reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "reservation"); err != nil {
				return err
			}
			_, err := wire.ReservationAdapterWithOutput(cmd.OutOrStdout()).Approve(NewContext(), args[0])
			return err
		},
	}
}

func reservationRejectCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject [reservation-id]",
		Short: "Reject a pending reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "reservation"); err != nil {
				return err
			}
			_, err := wire.ReservationAdapterWithOutput(cmd.OutOrStdout()).Reject(NewContext(), args[0], reason)
			return err
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the request is rejected (required)")
	cmd.MarkFlagRequired("reason")

	return cmd
}

func reservationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [reservation-id]",
		Short: "Show reservation details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "reservation"); err != nil {
				return err
			}
			_, err := wire.ReservationAdapterWithOutput(cmd.OutOrStdout()).Show(NewContext(), args[0])
			return err
		},
	}
}

func reservationListCmd() *cobra.Command {
	var filters primary.ReservationFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(filters.LabID, "lab"); err != nil {
				return err
			}
			_, err := wire.ReservationAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), filters)
			return err
		},
	}

	cmd.Flags().StringVar(&filters.LabID, "lab", "", "Filter by lab")
	cmd.Flags().StringVarP(&filters.Date, "date", "d", "", "Filter by date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&filters.Status, "status", "s", "", "Filter by status (PENDING, APPROVED, REJECTED)")
	cmd.Flags().StringVarP(&filters.RequesterID, "requester", "r", "", "Filter by requester")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "Maximum number of results")

	return cmd
}

func reservationCheckCmd() *cobra.Command {
	var req primary.AvailabilityRequest

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether an interval is free",
		Long: `Check an interval against existing reservations without writing anything.
Blocking statuses default to the configured conflict policy.

Examples:
  labres reservation check --lab LAB-001 --date 2026-03-10 --start 09:00 --end 10:00
  labres reservation check --lab LAB-001 --date 2026-03-10 --start 09:00 --end 10:00 --status APPROVED,PENDING`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(req.LabID, "lab"); err != nil {
				return err
			}
			return wire.ReservationAdapterWithOutput(cmd.OutOrStdout()).Check(NewContext(), req)
		},
	}

	cmd.Flags().StringVar(&req.LabID, "lab", "", "Lab ID (required)")
	cmd.Flags().StringVarP(&req.Date, "date", "d", "", "Date as YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "Start time as HH:mm (required)")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "End time as HH:mm (required)")
	cmd.Flags().StringVar(&req.ExcludeID, "exclude", "", "Reservation ID to ignore")
	cmd.Flags().StringSliceVarP(&req.Statuses, "status", "s", nil, "Blocking statuses (overrides the policy)")
	cmd.MarkFlagRequired("lab")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}
