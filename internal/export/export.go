// Package export writes the current report to disk.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang/snappy"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/db"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatJSON       Format = "json"
	FormatJSONSnappy Format = "json.sz"
	FormatCSV        Format = "csv"
	FormatSQLite     Format = "sqlite"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatJSONSnappy, FormatCSV, FormatSQLite}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want one of %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	if f == FormatSQLite {
		return "db"
	}
	return string(f)
}

const timestampLayout = "20060102-150405"

// Exporter writes reports into a directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// New creates an exporter rooted at dir. The directory is created on first write.
func New(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Dir returns the export directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// FileName returns report-<start>_<end>-<timestamp>.<ext>.
func FileName(report *models.Report, format Format, at time.Time) string {
	start, end := "all", "all"
	if report != nil && !report.Range.Start.IsZero() {
		eff := report.Range.Effective()
		start = eff.Start.Format(models.DateLayout)
		end = eff.End.Format(models.DateLayout)
	}
	return fmt.Sprintf("report-%s_%s-%s.%s", start, end, at.Format(timestampLayout), format.Extension())
}

// Write exports report in the given format and returns the written path.
// view supplies the filtered daily rows for the SQLite snapshot.
func (e *Exporter) Write(ctx context.Context, report *models.Report, view dataset.View, format Format) (string, error) {
	if report == nil {
		return "", fmt.Errorf("failed to export: %w", models.ErrDataUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(e.dir, FileName(report, format, e.now()))

	var err error
	switch format {
	case FormatJSON:
		err = writeJSON(path, report, false)
	case FormatJSONSnappy:
		err = writeJSON(path, report, true)
	case FormatCSV:
		err = writeCSV(path, report)
	case FormatSQLite:
		err = writeSQLite(ctx, path, report, view.Days)
	default:
		_, err = ParseFormat(string(format))
	}
	if err != nil {
		return "", err
	}

	logger.Info("report exported", "path", path, "format", format, "days", report.DayCount)
	return path, nil
}

func writeJSON(path string, report *models.Report, compress bool) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if compress {
		data = snappy.Encode(nil, data)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// writeCSV writes a long-format table of section,label,value rows.
func writeCSV(path string, report *models.Report) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.WriteAll(csvRows(report)); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return f.Close()
}

func csvRows(report *models.Report) [][]string {
	rows := [][]string{
		{"section", "label", "value"},
		{"summary", "range", report.RangeLabel()},
		{"summary", "days", strconv.Itoa(report.DayCount)},
		{"summary", "total", report.TotalString()},
	}
	if s := report.Summary; s != nil {
		rows = append(rows,
			[]string{"summary", "mean", s.MeanString()},
			[]string{"summary", "max", s.MaxString()},
			[]string{"summary", "min", s.MinString()},
		)
	}
	rows = append(rows, []string{"summary", "change", report.Change.PercentString()})

	for _, m := range report.Monthly {
		rows = append(rows, []string{"monthly", m.Month, strconv.FormatInt(m.Total, 10)})
	}
	for _, c := range report.Categories {
		rows = append(rows, []string{"category_mean", c.Category, formatFloat(c.Mean)})
	}
	for _, u := range report.UserTypes {
		rows = append(rows,
			[]string{"casual_mean", u.Category, formatFloat(u.Casual)},
			[]string{"registered_mean", u.Category, formatFloat(u.Registered)},
		)
	}
	for _, p := range report.Seasonal {
		rows = append(rows, []string{"seasonal_mean", fmt.Sprintf("%s %d", p.Label(), p.Year), formatFloat(p.Mean)})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeSQLite(ctx context.Context, path string, report *models.Report, days []models.DayRecord) error {
	snapshot, err := db.New(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}

	if err := snapshot.WriteSnapshot(ctx, report, days); err != nil {
		_ = snapshot.Close()
		return err
	}
	if err := snapshot.Vacuum(); err != nil {
		logger.Warn("snapshot vacuum failed", "path", path, "error", err)
	}
	return snapshot.Close()
}

// ReadJSON decodes a json or json.sz export back into a report.
func ReadJSON(path string) (*models.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	if strings.HasSuffix(path, "."+FormatJSONSnappy.Extension()) {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress export: %w", err)
		}
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode export: %w", err)
	}
	return &report, nil
}
