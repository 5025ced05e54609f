package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/export"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

const reportTimeout = time.Minute

type reportOptions struct {
	from       string
	to         string
	day        string
	format     string
	export     string
	fromExport string
}

func parseReportFlags(args []string, stderr io.Writer) (reportOptions, error) {
	var opts reportOptions

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.from, "from", "", "range start (YYYY-MM-DD)")
	fs.StringVar(&opts.to, "to", "", "range end (YYYY-MM-DD)")
	fs.StringVar(&opts.day, "day", "", "select a single day (YYYY-MM-DD)")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.StringVar(&opts.export, "export", "", "also write an export in this format")
	fs.StringVar(&opts.fromExport, "from-export", "", "reprint a json export")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.format != "text" && opts.format != "json" {
		return opts, fmt.Errorf("unknown output format %q (want text or json)", opts.format)
	}
	if opts.day != "" && (opts.from != "" || opts.to != "") {
		return opts, errors.New("-day cannot be combined with -from or -to")
	}
	if opts.fromExport != "" && opts.export != "" {
		return opts, errors.New("-export cannot be combined with -from-export")
	}
	return opts, nil
}

// dateRange builds the requested range. Missing bounds give a degenerate
// range, which selects the full dataset.
func (o reportOptions) dateRange() (models.DateRange, error) {
	if o.day != "" {
		d, err := models.ParseDate(o.day)
		if err != nil {
			return models.DateRange{}, err
		}
		return models.SingleDate(d), nil
	}

	var r models.DateRange
	var err error
	if o.from != "" {
		if r.Start, err = models.ParseDate(o.from); err != nil {
			return r, err
		}
	}
	if o.to != "" {
		if r.End, err = models.ParseDate(o.to); err != nil {
			return r, err
		}
	}
	return r, nil
}

// runReport implements the report subcommand.
func runReport(args []string, stdout, stderr io.Writer) error {
	opts, err := parseReportFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.fromExport != "" {
		report, err := export.ReadJSON(opts.fromExport)
		if err != nil {
			return err
		}
		return writeReport(stdout, report, opts.format)
	}

	rng, err := opts.dateRange()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// Headless runs read the sources once.
	cfg.WatchSources = false
	cfg.NotifyOnChange = false

	logCloser, err := logger.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logCloser.Close()

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer mgr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	report, err := mgr.Report(ctx, rng)
	if err != nil {
		return err
	}

	if err := writeReport(stdout, report, opts.format); err != nil {
		return err
	}

	if opts.export != "" {
		format, err := export.ParseFormat(opts.export)
		if err != nil {
			return err
		}
		path, err := mgr.Export(ctx, report, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nExported %s\n", path)
	}
	return nil
}

func writeReport(w io.Writer, report *models.Report, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(w, report)
}

// printReport writes a plain-text summary of report.
func printReport(w io.Writer, report *models.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Range:\t%s\n", report.RangeLabel())
	fmt.Fprintf(tw, "Days:\t%d\n", report.DayCount)
	fmt.Fprintf(tw, "Total rentals:\t%s\n", report.TotalString())

	if s := report.Summary; s != nil {
		fmt.Fprintf(tw, "Daily mean:\t%s\n", s.MeanString())
		fmt.Fprintf(tw, "Max:\t%s\n", s.MaxString())
		fmt.Fprintf(tw, "Min:\t%s\n", s.MinString())
	} else {
		fmt.Fprintf(tw, "Summary:\tno data\n")
	}
	fmt.Fprintf(tw, "Change:\t%s vs %d in %s\n",
		report.Change.PercentString(), report.Change.Previous, report.Change.PreviousRange.String())

	if len(report.Monthly) > 0 {
		fmt.Fprintln(tw, "\nMonth\tTotal")
		for _, mt := range report.Monthly {
			fmt.Fprintf(tw, "%s\t%d\n", mt.Month, mt.Total)
		}
	}

	if len(report.Categories) > 0 {
		fmt.Fprintln(tw, "\nCategory\tDays\tMean\tMin\tMax")
		for _, c := range report.Categories {
			fmt.Fprintf(tw, "%s\t%d\t%.0f\t%d\t%d\n", c.Category, c.Days, c.Mean, c.Min, c.Max)
		}
	}

	if len(report.Seasonal) > 0 {
		fmt.Fprintln(tw, "\nSeason\tYear\tMean")
		for _, p := range report.Seasonal {
			fmt.Fprintf(tw, "%s\t%d\t%.0f\n", p.Label(), p.Year, p.Mean)
		}
	}

	return tw.Flush()
}
