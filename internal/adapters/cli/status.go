package cli

import "github.com/fatih/color"

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
)

// statusLabel colors a reservation or lab status for terminal output.
func statusLabel(status string) string {
	switch status {
	case "APPROVED", "ACTIVE":
		return color.New(color.FgGreen).Sprint(status)
	case "PENDING":
		return color.New(color.FgYellow).Sprint(status)
	case "REJECTED", "INACTIVE":
		return color.New(color.FgRed).Sprint(status)
	default:
		return status
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
