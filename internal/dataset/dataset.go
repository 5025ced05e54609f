package dataset

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Sources records where the tables were read from.
type Sources struct {
	Daily  string
	Hourly string
}

// Dataset is the immutable pair of loaded tables. Accessors return copies.
type Dataset struct {
	days     []models.DayRecord
	hours    []models.HourRecord
	caps     models.Capabilities
	bounds   models.DateRange
	sources  Sources
	loadedAt time.Time
}

// New builds a dataset from already parsed records.
func New(days []models.DayRecord, hours []models.HourRecord, caps models.Capabilities) *Dataset {
	ds := &Dataset{
		days:     slices.Clone(days),
		hours:    slices.Clone(hours),
		caps:     caps,
		loadedAt: time.Now(),
	}

	for i, d := range ds.days {
		if i == 0 || d.Date.Before(ds.bounds.Start) {
			ds.bounds.Start = d.Date
		}
		if i == 0 || d.Date.After(ds.bounds.End) {
			ds.bounds.End = d.Date
		}
	}

	return ds
}

// Days returns a copy of the daily table.
func (d *Dataset) Days() []models.DayRecord {
	return slices.Clone(d.days)
}

// Hours returns a copy of the hourly table.
func (d *Dataset) Hours() []models.HourRecord {
	return slices.Clone(d.hours)
}

// DayCount returns the number of daily rows.
func (d *Dataset) DayCount() int { return len(d.days) }

// HourCount returns the number of hourly rows.
func (d *Dataset) HourCount() int { return len(d.hours) }

// Bounds returns the min and max dates of the daily table.
func (d *Dataset) Bounds() models.DateRange { return d.bounds }

// Capabilities returns the optional-column flags decided at load.
func (d *Dataset) Capabilities() models.Capabilities { return d.caps }

// Sources returns the file paths the tables were read from.
func (d *Dataset) Sources() Sources { return d.sources }

// LoadedAt returns when the dataset was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// View is the subset of both tables selected by a date range.
type View struct {
	Requested models.DateRange
	Range     models.DateRange
	FullSpan  bool
	Days      []models.DayRecord
	Hours     []models.HourRecord
}

// Filter returns the rows whose date lies within r, inclusive. A degenerate
// range selects the full dataset and reports FullSpan.
func (d *Dataset) Filter(r models.DateRange) View {
	v := View{Requested: r}

	if r.IsDegenerate() {
		v.Range = d.bounds
		v.FullSpan = true
		v.Days = slices.Clone(d.days)
		v.Hours = slices.Clone(d.hours)
		return v
	}

	v.Range = r.Effective()
	for _, rec := range d.days {
		if r.Contains(rec.Date) {
			v.Days = append(v.Days, rec)
		}
	}
	for _, rec := range d.hours {
		if r.Contains(rec.Date) {
			v.Hours = append(v.Hours, rec)
		}
	}
	return v
}

// LoadFunc produces a dataset. Handle calls it at most once.
type LoadFunc func(ctx context.Context) (*Dataset, error)

// Handle lazily loads a dataset once and hands out the same result afterwards.
// A failed load is not retried; the process must restart to reload.
type Handle struct {
	once   sync.Once
	load   LoadFunc
	ds     *Dataset
	err    error
	loaded atomic.Bool
}

// NewHandle returns a handle that loads the two CSV tables on first use.
func NewHandle(dailyPath, hourlyPath string) *Handle {
	return NewHandleFunc(func(ctx context.Context) (*Dataset, error) {
		return Load(ctx, dailyPath, hourlyPath)
	})
}

// NewHandleFunc returns a handle backed by an arbitrary loader.
func NewHandleFunc(fn LoadFunc) *Handle {
	return &Handle{load: fn}
}

// Get returns the dataset, loading it on the first call.
func (h *Handle) Get(ctx context.Context) (*Dataset, error) {
	h.once.Do(func() {
		h.ds, h.err = h.load(ctx)
		h.loaded.Store(true)
	})
	return h.ds, h.err
}

// Loaded reports whether the load has already run.
func (h *Handle) Loaded() bool {
	return h.loaded.Load()
}
