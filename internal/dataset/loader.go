// Package dataset loads the daily and hourly rental tables and derives the
// filtered and aggregated views shown by the dashboard.
package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Column names recognised in the source tables.
const (
	colSeason      = "season"
	colYear        = "yr"
	colHour        = "hr"
	colCasual      = "casual"
	colRegistered  = "registered"
	colTotal       = "cnt"
	colDayCategory = "day_category"
)

// dateColumns are accepted names for the date column, in preference order.
var dateColumns = []string{"dteday", "date"}

var (
	dailyRequired  = []string{colSeason, colYear, colCasual, colRegistered, colTotal}
	hourlyRequired = []string{colSeason, colYear, colHour, colCasual, colRegistered, colTotal}
)

// ctxCheckEvery is how many rows are parsed between context checks.
const ctxCheckEvery = 1024

// Load reads both source tables concurrently and returns the immutable dataset.
// Any missing file, missing required column or unparsable row yields an error
// wrapping models.ErrDataUnavailable.
func Load(ctx context.Context, dailyPath, hourlyPath string) (*Dataset, error) {
	var (
		days      []models.DayRecord
		hours     []models.HourRecord
		dailyCat  bool
		hourlyCat bool
	)
	start := time.Now()
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		days, dailyCat, err = loadDaily(gctx, dailyPath)
		return err
	})
	group.Go(func() error {
		var err error
		hours, hourlyCat, err = loadHourly(gctx, hourlyPath)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("%w: %s: daily table has no rows", models.ErrDataUnavailable, dailyPath)
	}

	ds := New(days, hours, models.Capabilities{
		DailyDayCategory:  dailyCat,
		HourlyDayCategory: hourlyCat,
	})
	ds.sources = Sources{Daily: dailyPath, Hourly: hourlyPath}

	logger.Info("dataset loaded",
		"days", len(days),
		"hours", len(hours),
		"daily_day_category", dailyCat,
		"hourly_day_category", hourlyCat,
		"elapsed", time.Since(start),
	)

	return ds, nil
}

// columnIndex maps a normalized header name to its column position.
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func (c columnIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}

func (c columnIndex) missing(names []string) []string {
	var out []string
	for _, n := range names {
		if !c.has(n) {
			out = append(out, n)
		}
	}
	return out
}

func (c columnIndex) dateColumn() (int, bool) {
	for _, name := range dateColumns {
		if i, ok := c[name]; ok {
			return i, true
		}
	}
	return 0, false
}

// table is an open CSV source positioned after its header row.
type table struct {
	path    string
	file    *os.File
	reader  *csv.Reader
	columns columnIndex
	dateCol int
	line    int
}

func openTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDataUnavailable, err)
	}

	reader := csv.NewReader(bufio.NewReader(f))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		_ = f.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: file is empty", models.ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %s: failed to read header: %w", models.ErrDataUnavailable, path, err)
	}

	cols := newColumnIndex(header)
	dateCol, ok := cols.dateColumn()
	if !ok {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: missing date column (%s)",
			models.ErrDataUnavailable, path, strings.Join(dateColumns, " or "))
	}
	if missing := cols.missing(required); len(missing) > 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: missing required columns: %s",
			models.ErrDataUnavailable, path, strings.Join(missing, ", "))
	}

	return &table{
		path:    path,
		file:    f,
		reader:  reader,
		columns: cols,
		dateCol: dateCol,
		line:    1,
	}, nil
}

// next returns the next row, or io.EOF when the table is exhausted.
func (t *table) next(ctx context.Context) ([]string, error) {
	if t.line%ctxCheckEvery == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	row, err := t.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, t.rowError(err)
	}
	t.line++
	return row, nil
}

func (t *table) rowError(err error) error {
	return fmt.Errorf("%w: %s: line %d: %w", models.ErrDataUnavailable, t.path, t.line, err)
}

func (t *table) close() {
	_ = t.file.Close()
}

func (t *table) intField(row []string, name string) (int, error) {
	raw := strings.TrimSpace(row[t.columns[name]])
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Some exports write integral counts as floats ("985.0").
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("column %s: invalid integer %q", name, raw)
		}
		v = int(f)
	}
	return v, nil
}

// dayFields parses the columns shared by both tables.
func (t *table) dayFields(row []string, withCategory bool) (models.DayRecord, error) {
	var rec models.DayRecord

	d, err := models.ParseDate(row[t.dateCol])
	if err != nil {
		return rec, err
	}
	rec.Date = d

	season, err := t.intField(row, colSeason)
	if err != nil {
		return rec, err
	}
	rec.Season = models.Season(season)
	if !rec.Season.Valid() {
		return rec, fmt.Errorf("column %s: code %d out of range 1..4", colSeason, season)
	}

	if rec.YearCode, err = t.intField(row, colYear); err != nil {
		return rec, err
	}
	if rec.YearCode != 0 && rec.YearCode != 1 {
		return rec, fmt.Errorf("column %s: code %d is not 0 or 1", colYear, rec.YearCode)
	}

	if rec.Casual, err = t.intField(row, colCasual); err != nil {
		return rec, err
	}
	if rec.Registered, err = t.intField(row, colRegistered); err != nil {
		return rec, err
	}
	if rec.Total, err = t.intField(row, colTotal); err != nil {
		return rec, err
	}
	if rec.Casual < 0 || rec.Registered < 0 {
		return rec, fmt.Errorf("negative user count (casual=%d, registered=%d)", rec.Casual, rec.Registered)
	}
	if rec.Total != rec.Casual+rec.Registered {
		return rec, fmt.Errorf("cnt %d != casual %d + registered %d", rec.Total, rec.Casual, rec.Registered)
	}

	if withCategory {
		rec.DayCategory = strings.TrimSpace(row[t.columns[colDayCategory]])
	}

	return rec, nil
}

func loadDaily(ctx context.Context, path string) ([]models.DayRecord, bool, error) {
	t, err := openTable(path, dailyRequired)
	if err != nil {
		return nil, false, err
	}
	defer t.close()

	withCategory := t.columns.has(colDayCategory)

	var days []models.DayRecord
	seen := make(map[time.Time]struct{})
	for {
		row, err := t.next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, err
		}

		rec, err := t.dayFields(row, withCategory)
		if err != nil {
			return nil, false, t.rowError(err)
		}
		if _, dup := seen[rec.Date]; dup {
			return nil, false, t.rowError(fmt.Errorf("duplicate date %s", rec.Date.Format(models.DateLayout)))
		}
		seen[rec.Date] = struct{}{}
		days = append(days, rec)
	}

	return days, withCategory, nil
}

func loadHourly(ctx context.Context, path string) ([]models.HourRecord, bool, error) {
	t, err := openTable(path, hourlyRequired)
	if err != nil {
		return nil, false, err
	}
	defer t.close()

	withCategory := t.columns.has(colDayCategory)

	type slot struct {
		date time.Time
		hour int
	}

	var hours []models.HourRecord
	seen := make(map[slot]struct{})
	for {
		row, err := t.next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, err
		}

		rec, err := t.dayFields(row, withCategory)
		if err != nil {
			return nil, false, t.rowError(err)
		}
		hour, err := t.intField(row, colHour)
		if err != nil {
			return nil, false, t.rowError(err)
		}
		if hour < 0 || hour > 23 {
			return nil, false, t.rowError(fmt.Errorf("column %s: hour %d out of range 0..23", colHour, hour))
		}
		key := slot{date: rec.Date, hour: hour}
		if _, dup := seen[key]; dup {
			return nil, false, t.rowError(fmt.Errorf("duplicate date %s hour %d", rec.Date.Format(models.DateLayout), hour))
		}
		seen[key] = struct{}{}
		hours = append(hours, models.HourRecord{DayRecord: rec, Hour: hour})
	}

	return hours, withCategory, nil
}
