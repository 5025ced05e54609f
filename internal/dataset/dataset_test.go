package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

const dailyCSV = `instant,dteday,season,yr,mnth,casual,registered,cnt,day_category
1,2011-01-01,1,0,1,331,654,985,weekend
2,2011-01-02,1,0,1,131,670,801,weekend
3,2011-01-03,1,0,1,120,1229,1349,weekday
4,2011-02-01,1,0,2,47,1313,1360,weekday
`

const hourlyCSV = `instant,dteday,season,yr,mnth,hr,casual,registered,cnt
1,2011-01-01,1,0,1,0,3,13,16
2,2011-01-01,1,0,1,1,8,32,40
3,2011-01-02,1,0,1,0,0,17,17
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func newTestFiles(t *testing.T, daily, hourly string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return writeFile(t, dir, "day_data.csv", daily), writeFile(t, dir, "hour_data.csv", hourly)
}

func TestLoad(t *testing.T) {
	dayPath, hourPath := newTestFiles(t, dailyCSV, hourlyCSV)

	ds, err := Load(context.Background(), dayPath, hourPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if ds.DayCount() != 4 {
		t.Errorf("DayCount() = %d, want 4", ds.DayCount())
	}
	if ds.HourCount() != 3 {
		t.Errorf("HourCount() = %d, want 3", ds.HourCount())
	}

	caps := ds.Capabilities()
	if !caps.DailyDayCategory {
		t.Error("daily table should report day_category")
	}
	if caps.HourlyDayCategory {
		t.Error("hourly table should not report day_category")
	}

	bounds := ds.Bounds()
	if bounds.Start.Format(models.DateLayout) != "2011-01-01" || bounds.End.Format(models.DateLayout) != "2011-02-01" {
		t.Errorf("Bounds() = %v", bounds)
	}

	days := ds.Days()
	if days[0].Total != 985 || days[0].Casual != 331 || days[0].DayCategory != "weekend" {
		t.Errorf("first day = %+v", days[0])
	}
	if ds.Hours()[1].Hour != 1 {
		t.Errorf("second hour = %+v", ds.Hours()[1])
	}
	if ds.Sources().Daily != dayPath {
		t.Errorf("Sources().Daily = %q, want %q", ds.Sources().Daily, dayPath)
	}
}

func TestLoad_DateColumnAlias(t *testing.T) {
	daily := "date,season,yr,casual,registered,cnt\n2011-01-01,1,0,1,2,3\n"
	hourly := "date,season,yr,hr,casual,registered,cnt\n2011-01-01,1,0,5,1,2,3\n"
	dayPath, hourPath := newTestFiles(t, daily, hourly)

	ds, err := Load(context.Background(), dayPath, hourPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.DayCount() != 1 || ds.HourCount() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", ds.DayCount(), ds.HourCount())
	}
	if ds.Capabilities().HasCategoryViews() {
		t.Error("no day_category column, category views should be disabled")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		daily  string
		hourly string
		want   string
	}{
		{
			name:   "MissingDailyColumn",
			daily:  "dteday,season,yr,casual,registered\n2011-01-01,1,0,1,2\n",
			hourly: hourlyCSV,
			want:   "cnt",
		},
		{
			name:   "MissingHourColumn",
			daily:  dailyCSV,
			hourly: "dteday,season,yr,casual,registered,cnt\n2011-01-01,1,0,1,2,3\n",
			want:   "hr",
		},
		{
			name:   "MissingDateColumn",
			daily:  "season,yr,casual,registered,cnt\n1,0,1,2,3\n",
			hourly: hourlyCSV,
			want:   "date column",
		},
		{
			name:   "EmptyFile",
			daily:  "",
			hourly: hourlyCSV,
			want:   "empty",
		},
		{
			name:   "HeaderOnly",
			daily:  "dteday,season,yr,casual,registered,cnt\n",
			hourly: hourlyCSV,
			want:   "no rows",
		},
		{
			name:   "BadDate",
			daily:  "dteday,season,yr,casual,registered,cnt\nnot-a-date,1,0,1,2,3\n",
			hourly: hourlyCSV,
			want:   "invalid date",
		},
		{
			name:   "BadSeason",
			daily:  "dteday,season,yr,casual,registered,cnt\n2011-01-01,7,0,1,2,3\n",
			hourly: hourlyCSV,
			want:   "season",
		},
		{
			name:   "BadYear",
			daily:  "dteday,season,yr,casual,registered,cnt\n2011-01-01,1,2,1,2,3\n",
			hourly: hourlyCSV,
			want:   "yr",
		},
		{
			name:   "TotalMismatch",
			daily:  "dteday,season,yr,casual,registered,cnt\n2011-01-01,1,0,1,2,4\n",
			hourly: hourlyCSV,
			want:   "cnt 4",
		},
		{
			name:   "HourOutOfRange",
			daily:  dailyCSV,
			hourly: "dteday,season,yr,hr,casual,registered,cnt\n2011-01-01,1,0,24,1,2,3\n",
			want:   "hour 24",
		},
		{
			name:   "DuplicateDate",
			daily:  "dteday,season,yr,casual,registered,cnt\n2011-01-01,1,0,1,2,3\n2011-01-01,1,0,4,5,9\n",
			hourly: hourlyCSV,
			want:   "duplicate date 2011-01-01",
		},
		{
			name:   "DuplicateHour",
			daily:  dailyCSV,
			hourly: "dteday,season,yr,hr,casual,registered,cnt\n2011-01-01,1,0,5,1,2,3\n2011-01-01,1,0,5,1,1,2\n",
			want:   "duplicate date 2011-01-01 hour 5",
		},
		{
			name:   "RaggedRow",
			daily:  "dteday,season,yr,casual,registered,cnt\n2011-01-01,1,0,1\n",
			hourly: hourlyCSV,
			want:   "line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dayPath, hourPath := newTestFiles(t, tt.daily, tt.hourly)
			_, err := Load(context.Background(), dayPath, hourPath)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !errors.Is(err, models.ErrDataUnavailable) {
				t.Errorf("error %v should wrap ErrDataUnavailable", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	hourPath := writeFile(t, dir, "hour_data.csv", hourlyCSV)

	_, err := Load(context.Background(), filepath.Join(dir, "nope.csv"), hourPath)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Errorf("Load() error = %v, want ErrDataUnavailable", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, should keep the os.ErrNotExist cause", err)
	}
}

func TestLoad_FloatCounts(t *testing.T) {
	daily := "dteday,season,yr,casual,registered,cnt\n2011-01-01,1,0,1.0,2.0,3.0\n"
	dayPath, hourPath := newTestFiles(t, daily, hourlyCSV)

	ds, err := Load(context.Background(), dayPath, hourPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.Days()[0].Total != 3 {
		t.Errorf("Total = %d, want 3", ds.Days()[0].Total)
	}
}

func TestDataset_AccessorsReturnCopies(t *testing.T) {
	ds := New(scenarioDays(), nil, models.Capabilities{DailyDayCategory: true})

	days := ds.Days()
	days[0].Total = -1

	if ds.Days()[0].Total == -1 {
		t.Error("mutating Days() result should not affect the dataset")
	}
}

func TestHandle_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	h := NewHandleFunc(func(ctx context.Context) (*Dataset, error) {
		calls.Add(1)
		return New(scenarioDays(), nil, models.Capabilities{}), nil
	})

	if h.Loaded() {
		t.Error("handle should not be loaded before Get")
	}

	var wg sync.WaitGroup
	results := make([]*Dataset, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := h.Get(context.Background())
			if err != nil {
				t.Errorf("Get() failed: %v", err)
			}
			results[i] = ds
		}(i)
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("loader called %d times, want 1", got)
	}
	for _, ds := range results {
		if ds != results[0] {
			t.Error("every Get should return the same dataset")
		}
	}
	if !h.Loaded() {
		t.Error("handle should report loaded")
	}
}

func TestHandle_ErrorIsSticky(t *testing.T) {
	var calls int
	h := NewHandleFunc(func(ctx context.Context) (*Dataset, error) {
		calls++
		return nil, models.ErrDataUnavailable
	})

	for range 3 {
		if _, err := h.Get(context.Background()); !errors.Is(err, models.ErrDataUnavailable) {
			t.Errorf("Get() error = %v, want ErrDataUnavailable", err)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}

func TestNewHandle_FromFiles(t *testing.T) {
	dayPath, hourPath := newTestFiles(t, dailyCSV, hourlyCSV)
	h := NewHandle(dayPath, hourPath)

	ds, err := h.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ds.DayCount() != 4 {
		t.Errorf("DayCount() = %d, want 4", ds.DayCount())
	}
}
