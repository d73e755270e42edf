package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cysce/handwash-dashboard-tui/internal/animator"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

func newStationCmd(app *App) *cobra.Command {
	var every int

	cmd := &cobra.Command{
		Use:   "station",
		Short: "Run the wash station analysis and print step progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if every <= 0 {
				return fmt.Errorf("--every must be positive, got %d", every)
			}
			mgr, err := app.manager()
			if err != nil {
				return err
			}
			sched, err := mgr.NewStationAnimator()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var runErr error
			err = sched.Run(cmd.Context(), func(slots []animator.Slot) {
				if sched.Ticks()%every != 0 || runErr != nil {
					return
				}
				_, runErr = fmt.Fprintf(out, "tick %d\n%s\n", sched.Ticks(), formatProgress(slots))
			})
			if err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}

			slots := sched.Snapshot()
			_, err = fmt.Fprintf(out, "Wash analyzed after %d ticks\n%sOverall %s\n",
				sched.Ticks(), formatProgress(slots), models.FormatPercent(animator.Overall(slots)))
			return err
		},
	}

	cmd.Flags().IntVar(&every, "every", 10, "Print progress every N ticks")

	return cmd
}
