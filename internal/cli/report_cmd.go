package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/report"
)

type reportFlags struct {
	unit   string
	kind   string
	days   int
	from   string
	to     string
	format string
	out    string
}

func (f reportFlags) filter() (models.Filter, error) {
	filter := models.Filter{Range: models.TimeRange(f.days), Unit: f.unit, Kind: f.kind}
	var err error
	if f.from != "" {
		if filter.Start, err = compliance.ParseDate(f.from); err != nil {
			return models.Filter{}, fmt.Errorf("--from: %w", err)
		}
	}
	if f.to != "" {
		if filter.End, err = compliance.ParseDate(f.to); err != nil {
			return models.Filter{}, fmt.Errorf("--to: %w", err)
		}
	}
	return filter, nil
}

func newReportCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a compliance report",
		Long: `Build a compliance report for a unit and period.

Text reports are printed to stdout unless --out is given. HTML reports are
written to the export directory, or to --out, and recorded in the export log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.manager()
			if err != nil {
				return err
			}
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			format, err := report.ParseFormat(flags.format)
			if err != nil {
				return err
			}

			if format == report.FormatText && flags.out == "" {
				doc, pages, err := mgr.BuildReport(filter)
				if err != nil {
					return err
				}
				return report.Write(cmd.OutOrStdout(), format, doc, pages)
			}

			rec, err := mgr.ExportReport(filter, format, flags.out)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d pages, %s, %s)\n",
				rec.Path, rec.Pages, rec.DateRangeLabel, models.FormatPercent(rec.SuccessRate))
			return err
		},
	}

	cmd.Flags().StringVar(&flags.unit, "unit", models.UnitAll, "Unit id: all, icu, emergency, surgery, pediatrics, inpatient")
	cmd.Flags().StringVar(&flags.kind, "kind", models.ReportGeneral, "Report kind: general, compliance, steps, comparative")
	cmd.Flags().IntVar(&flags.days, "range", int(models.TimeRange30Days), "Quick range in days: 7, 30 or 90")
	cmd.Flags().StringVar(&flags.from, "from", "", "First day, YYYY-MM-DD (overrides --range)")
	cmd.Flags().StringVar(&flags.to, "to", "", "Last day, YYYY-MM-DD (overrides --range)")
	cmd.Flags().StringVar(&flags.format, "format", string(report.FormatText), "Output format: text or html")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Write the report to this path")

	return cmd
}
