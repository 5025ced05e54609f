// Package main is the entry point for the Bikeshare Dashboard TUI.
// It loads configuration, starts the services and runs the Bubble Tea
// program, or prints a report headlessly with the report subcommand.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/categories"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/hourly"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/seasonal"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "report":
			if err := runReport(os.Args[2:], os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				if errors.Is(err, models.ErrDataUnavailable) {
					fmt.Fprintln(os.Stderr, "Check DAY_DATA_PATH and HOUR_DATA_PATH.")
				}
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run starts the TUI and blocks until it exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCloser, err := logger.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logCloser.Close()

	logger.Info("starting", "version", version.GetVersion(), "daily", cfg.DayDataPath, "hourly", cfg.HourDataPath)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Tab order matches app.TabID.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		hourly.New(state),
		categories.New(state),
		seasonal.New(state),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Bikeshare Dashboard TUI - bicycle rental analytics in the terminal

Usage:
  bikedash [flags]
  bikedash report [report flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Report flags:
  -from DATE         Range start (YYYY-MM-DD)
  -to DATE           Range end (YYYY-MM-DD)
  -day DATE          Select a single day
  -format FORMAT     Output format: text or json (default: text)
  -export FORMAT     Also write an export: json, json.sz, csv or sqlite
  -from-export FILE  Reprint a json or json.sz export instead of loading the CSVs

Keyboard Shortcuts:
  1-5             Switch tabs (Overview, Hourly, Categories, Seasonal, Info)
  Tab/Shift+Tab   Next/previous tab
  [ ]             Move range start back/forward one day
  { }             Move range end back/forward one day
  < >             Shift the whole range
  d               Toggle single-day mode
  a               Reset to the full dataset
  e               Export the current report
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DAY_DATA_PATH     Daily CSV (default: dashboard/day_data.csv)
  HOUR_DATA_PATH    Hourly CSV (default: dashboard/hour_data.csv)
  EXPORT_DIR        Export directory
  EXPORT_FORMAT     Default export format (default: json)
  WATCH_SOURCES     Warn when the CSVs change on disk (default: true)
  WATCH_DEBOUNCE    Debounce for file events (default: 250ms)
  NOTIFY_ON_CHANGE  Desktop notification on source change (default: false)
  LOG_LEVEL         debug, info, warn or error (default: info)
  LOG_PATH          Log file path

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/bikedash/.env
  - The parent and grandparent directories`)
}
