package models

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"ISO", "2011-01-01", "2011-01-01", false},
		{"Slashes", "2012/12/31", "2012-12-31", false},
		{"DateTime", "2011-03-05 00:00:00", "2011-03-05", false},
		{"Padded", "  2011-06-01 ", "2011-06-01", false},
		{"Garbage", "yesterday", "", true},
		{"Empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Format(DateLayout) != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got.Format(DateLayout), tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseDate(%q) location = %v, want UTC", tt.in, got.Location())
			}
		})
	}
}

func TestDateRange_IsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		r    DateRange
		want bool
	}{
		{"Valid", NewDateRange(date("2011-01-01"), date("2011-01-31")), false},
		{"SameDay", NewDateRange(date("2011-01-01"), date("2011-01-01")), true},
		{"Reversed", NewDateRange(date("2011-02-01"), date("2011-01-01")), true},
		{"MissingEnd", DateRange{Start: date("2011-01-01")}, true},
		{"MissingStart", DateRange{End: date("2011-01-01")}, true},
		{"Zero", DateRange{}, true},
		{"SingleDay", SingleDate(date("2011-01-01")), false},
		{"SingleDayZero", DateRange{SingleDay: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsDegenerate(); got != tt.want {
				t.Errorf("IsDegenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	r := NewDateRange(date("2011-01-10"), date("2011-01-20"))
	if got := r.Days(); got != 11 {
		t.Errorf("Days() = %d, want 11", got)
	}
	if got := SingleDate(date("2011-01-10")).Days(); got != 1 {
		t.Errorf("single day Days() = %d, want 1", got)
	}
	if got := (DateRange{}).Days(); got != 0 {
		t.Errorf("zero range Days() = %d, want 0", got)
	}
}

func TestDateRange_Previous(t *testing.T) {
	r := NewDateRange(date("2011-01-10"), date("2011-01-20"))
	prev := r.Previous()

	if got := prev.Start.Format(DateLayout); got != "2010-12-30" {
		t.Errorf("Previous().Start = %s, want 2010-12-30", got)
	}
	if got := prev.End.Format(DateLayout); got != "2011-01-09" {
		t.Errorf("Previous().End = %s, want 2011-01-09", got)
	}
	if prev.Days() != r.Days() {
		t.Errorf("Previous().Days() = %d, want %d", prev.Days(), r.Days())
	}

	day := SingleDate(date("2011-03-01")).Previous()
	if day.Start.Format(DateLayout) != "2011-02-28" || day.End.Format(DateLayout) != "2011-02-28" {
		t.Errorf("single day Previous() = %v, want 2011-02-28", day)
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := NewDateRange(date("2011-01-10"), date("2011-01-20"))
	tests := []struct {
		in   string
		want bool
	}{
		{"2011-01-09", false},
		{"2011-01-10", true},
		{"2011-01-15", true},
		{"2011-01-20", true},
		{"2011-01-21", false},
	}
	for _, tt := range tests {
		if got := r.Contains(date(tt.in)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDateRange_ShiftAndClamp(t *testing.T) {
	bounds := NewDateRange(date("2011-01-01"), date("2012-12-31"))
	r := NewDateRange(date("2011-01-05"), date("2011-01-10")).Shift(-10).Clamp(bounds)

	if got := r.Start.Format(DateLayout); got != "2011-01-01" {
		t.Errorf("Start = %s, want 2011-01-01", got)
	}
	if got := r.End.Format(DateLayout); got != "2011-01-01" {
		t.Errorf("End = %s, want 2011-01-01", got)
	}

	r = NewDateRange(date("2012-12-20"), date("2012-12-30")).Shift(5).Clamp(bounds)
	if got := r.End.Format(DateLayout); got != "2012-12-31" {
		t.Errorf("End = %s, want 2012-12-31", got)
	}
	if got := r.Start.Format(DateLayout); got != "2012-12-25" {
		t.Errorf("Start = %s, want 2012-12-25", got)
	}
}

func TestDateRange_String(t *testing.T) {
	if got := (DateRange{}).String(); got != "all dates" {
		t.Errorf("String() = %q, want %q", got, "all dates")
	}
	if got := SingleDate(date("2011-05-05")).String(); got != "2011-05-05" {
		t.Errorf("String() = %q, want %q", got, "2011-05-05")
	}
	want := "2011-01-01 → 2011-01-31"
	if got := NewDateRange(date("2011-01-01"), date("2011-01-31")).String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
