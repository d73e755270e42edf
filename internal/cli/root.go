// Package cli holds the hwd command tree.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
	"github.com/cysce/handwash-dashboard-tui/internal/version"
)

// ErrNoServices is returned when a command needs the service manager but none was wired.
var ErrNoServices = errors.New("services not initialized")

// App holds what the commands run against.
type App struct {
	Services *services.Manager

	// RunTUI starts the interactive dashboard. Nil disables it.
	RunTUI func() error

	// IsInteractive reports whether stdout is a terminal.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "hwd" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           version.Name,
		Short:         "Hand hygiene compliance dashboard",
		Long:          "hwd shows simulated hand hygiene compliance for hospital units and exports reports.",
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.RunTUI != nil && app.interactive() {
				return app.RunTUI()
			}
			return printSummary(cmd, app, models.DefaultFilter().Range)
		},
	}

	root.AddCommand(
		newReportCmd(app),
		newStationCmd(app),
		newSummaryCmd(app),
		newVersionCmd(),
	)

	return root
}

func (a *App) manager() (*services.Manager, error) {
	if a.Services == nil {
		return nil, ErrNoServices
	}
	return a.Services, nil
}
