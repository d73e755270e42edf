package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

func newSummaryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the period summary for every unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := models.TimeRange(days)
			if !rng.Valid() {
				return fmt.Errorf("%w: %d days (use 7, 30 or 90)", compliance.ErrInvalidRange, days)
			}
			return printSummary(cmd, app, rng)
		},
	}

	cmd.Flags().IntVar(&days, "range", int(models.TimeRange7Days), "Quick range in days: 7, 30 or 90")

	return cmd
}

func printSummary(cmd *cobra.Command, app *App, rng models.TimeRange) error {
	mgr, err := app.manager()
	if err != nil {
		return err
	}
	data, err := mgr.DashboardData(rng)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), formatSummary(data))
	return err
}
