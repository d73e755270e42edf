// Package main is the entry point for the hand hygiene dashboard.
// It loads configuration, starts services and runs the command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/cysce/handwash-dashboard-tui/internal/app"
	"github.com/cysce/handwash-dashboard-tui/internal/cli"
	"github.com/cysce/handwash-dashboard-tui/internal/config"
	"github.com/cysce/handwash-dashboard-tui/internal/logger"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/tabs/dashboard"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/tabs/info"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/tabs/reports"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/tabs/station"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/tabs/steps"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// 2. Route logs away from the alt screen
	if cfg.LogFile == "" && interactive {
		logger.Discard()
	} else {
		closer, err := logger.Configure(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}
		defer closer.Close()
	}

	// 3. Initialize the service manager
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	a := &cli.App{
		Services:      svcManager,
		RunTUI:        func() error { return runTUI(cfg, svcManager) },
		IsInteractive: func() bool { return interactive },
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

// runTUI builds the tabs and blocks until the user quits.
func runTUI(cfg *config.Config, svcManager *services.Manager) error {
	model := app.NewModel(svcManager)

	// Tabs in TabID order
	state := model.GetState()
	model.SetTabs([]app.Tab{
		station.New(state, svcManager),
		dashboard.New(state),
		steps.New(state, svcManager),
		reports.New(state, svcManager),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.Quit())
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
