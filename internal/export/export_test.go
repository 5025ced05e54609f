package export

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/snappy"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/db"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func date(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func testReport(t *testing.T) (*models.Report, dataset.View) {
	t.Helper()
	days := []models.DayRecord{
		{Date: date("2011-01-01"), Season: models.SeasonSpring, DayCategory: "weekday", Casual: 30, Registered: 70, Total: 100},
		{Date: date("2011-01-02"), Season: models.SeasonSpring, DayCategory: "weekend", Casual: 90, Registered: 110, Total: 200},
		{Date: date("2011-02-01"), Season: models.SeasonSpring, DayCategory: "weekday", Casual: 10, Registered: 40, Total: 50},
	}
	ds := dataset.New(days, nil, models.Capabilities{DailyDayCategory: true})
	report, view, err := dataset.ReportWithView(ds, models.NewDateRange(date("2011-01-01"), date("2011-01-31")))
	if err != nil {
		t.Fatalf("ReportWithView failed: %v", err)
	}
	return report, view
}

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	e := New(filepath.Join(t.TempDir(), "exports"))
	e.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }
	return e
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{" json.sz ", FormatJSONSnappy, false},
		{"csv", FormatCSV, false},
		{"sqlite", FormatSQLite, false},
		{"xlsx", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	report := &models.Report{Range: models.NewDateRange(date("2011-01-01"), date("2011-01-31"))}

	tests := []struct {
		name   string
		report *models.Report
		format Format
		want   string
	}{
		{"JSON", report, FormatJSON, "report-2011-01-01_2011-01-31-20250601-093000.json"},
		{"Snappy", report, FormatJSONSnappy, "report-2011-01-01_2011-01-31-20250601-093000.json.sz"},
		{"SQLite", report, FormatSQLite, "report-2011-01-01_2011-01-31-20250601-093000.db"},
		{"SingleDay", &models.Report{Range: models.SingleDate(date("2011-03-04"))}, FormatCSV, "report-2011-03-04_2011-03-04-20250601-093000.csv"},
		{"NoRange", &models.Report{}, FormatCSV, "report-all_all-20250601-093000.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.report, tt.format, at); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrite_JSONRoundTrip(t *testing.T) {
	e := newTestExporter(t)
	report, view := testReport(t)

	for _, format := range []Format{FormatJSON, FormatJSONSnappy} {
		t.Run(string(format), func(t *testing.T) {
			path, err := e.Write(context.Background(), report, view, format)
			if err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if !strings.HasSuffix(path, "."+format.Extension()) {
				t.Errorf("path %q missing extension %q", path, format.Extension())
			}

			got, err := ReadJSON(path)
			if err != nil {
				t.Fatalf("ReadJSON failed: %v", err)
			}
			if got.Total != 300 || got.DayCount != 2 {
				t.Errorf("round trip = total %d over %d days, want 300 over 2", got.Total, got.DayCount)
			}
			if got.Summary == nil || got.Summary.MaxString() != "200 (2011-01-02)" {
				t.Errorf("Summary = %+v", got.Summary)
			}
			if len(got.Monthly) != 1 || got.Monthly[0].Month != "2011-01" {
				t.Errorf("Monthly = %+v", got.Monthly)
			}
		})
	}
}

func TestWrite_SnappyIsCompressed(t *testing.T) {
	e := newTestExporter(t)
	report, view := testReport(t)

	path, err := e.Write(context.Background(), report, view, FormatJSONSnappy)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if _, err := snappy.Decode(nil, data); err != nil {
		t.Errorf("export is not snappy encoded: %v", err)
	}
}

func TestWrite_CSV(t *testing.T) {
	e := newTestExporter(t)
	report, view := testReport(t)

	path, err := e.Write(context.Background(), report, view, FormatCSV)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	values := make(map[string]string)
	for _, r := range records[1:] {
		values[r[0]+"/"+r[1]] = r[2]
	}

	want := map[string]string{
		"summary/total":             "300",
		"summary/mean":              "150",
		"summary/max":               "200 (2011-01-02)",
		"summary/min":               "100 (2011-01-01)",
		"summary/change":            "0.00%",
		"monthly/2011-01":           "300",
		"category_mean/weekday":     "100.00",
		"seasonal_mean/Spring 2011": "150.00",
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("%s = %q, want %q", k, values[k], v)
		}
	}
}

func TestWrite_SQLite(t *testing.T) {
	e := newTestExporter(t)
	report, view := testReport(t)

	path, err := e.Write(context.Background(), report, view, FormatSQLite)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	snapshot, err := db.New(path)
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}
	defer snapshot.Close()

	totals, err := snapshot.GetMonthlyTotals(context.Background())
	if err != nil {
		t.Fatalf("GetMonthlyTotals failed: %v", err)
	}
	if len(totals) != 1 || totals[0].Total != 300 {
		t.Errorf("monthly totals = %+v, want [(2011-01, 300)]", totals)
	}

	meta, err := snapshot.GetReportMeta(context.Background())
	if err != nil {
		t.Fatalf("GetReportMeta failed: %v", err)
	}
	if meta == nil || meta.DayCount != 2 {
		t.Errorf("meta = %+v, want 2 days", meta)
	}
}

func TestWrite_Errors(t *testing.T) {
	e := newTestExporter(t)
	report, view := testReport(t)

	if _, err := e.Write(context.Background(), nil, view, FormatJSON); !errors.Is(err, models.ErrDataUnavailable) {
		t.Errorf("nil report error = %v, want ErrDataUnavailable", err)
	}

	if _, err := e.Write(context.Background(), report, view, Format("xml")); err == nil {
		t.Error("unknown format should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Write(ctx, report, view, FormatJSON); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context error = %v, want context.Canceled", err)
	}
}

func TestReadJSON_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.json.sz")
	if err := os.WriteFile(bad, []byte("not snappy"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadJSON(bad); err == nil {
		t.Error("corrupt snappy file should fail")
	}

	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadJSON(garbage); err == nil {
		t.Error("invalid JSON should fail")
	}
}
