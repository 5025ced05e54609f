package dataset

import (
	"cmp"
	"slices"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// accumulator tracks sum, count and extrema of integer counts.
type accumulator struct {
	sum   int64
	count int
	min   int
	max   int
}

func (a *accumulator) add(v int) {
	if a.count == 0 || v < a.min {
		a.min = v
	}
	if a.count == 0 || v > a.max {
		a.max = v
	}
	a.sum += int64(v)
	a.count++
}

func (a accumulator) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.count)
}

// Total returns the sum of daily totals.
func Total(days []models.DayRecord) int64 {
	var sum int64
	for _, d := range days {
		sum += int64(d.Total)
	}
	return sum
}

// MonthlyTotals sums daily totals per calendar month in chronological order.
// Months without rows are absent.
func MonthlyTotals(days []models.DayRecord) []models.MonthlyTotal {
	index := make(map[time.Time]int)
	var out []models.MonthlyTotal

	for _, d := range days {
		month := time.Date(d.Date.Year(), d.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		i, ok := index[month]
		if !ok {
			i = len(out)
			index[month] = i
			out = append(out, models.MonthlyTotal{
				Month: month.Format("2006-01"),
				Start: month,
			})
		}
		out[i].Total += int64(d.Total)
	}

	slices.SortFunc(out, func(a, b models.MonthlyTotal) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

// Summarize returns the mean, maximum and minimum daily total with the dates
// the extrema occurred on. Ties resolve to the earliest row in input order.
func Summarize(days []models.DayRecord) (models.SummaryStats, error) {
	if len(days) == 0 {
		return models.SummaryStats{}, models.ErrEmptySet
	}

	var acc accumulator
	stats := models.SummaryStats{}
	for _, d := range days {
		if acc.count == 0 || d.Total > acc.max {
			stats.MaxDate = d.Date
		}
		if acc.count == 0 || d.Total < acc.min {
			stats.MinDate = d.Date
		}
		acc.add(d.Total)
	}

	stats.Count = acc.count
	stats.Mean = acc.mean()
	stats.Max = acc.max
	stats.Min = acc.min
	return stats, nil
}

// PeriodOverPeriodChange compares the filtered total with the total of the
// window of identical length ending the day before r starts, drawn from full.
// A zero previous total reports a 0% change.
func PeriodOverPeriodChange(filtered, full []models.DayRecord, r models.DateRange) models.PeriodChange {
	prevRange := r.Previous()

	var previous int64
	for _, d := range full {
		if prevRange.Contains(d.Date) {
			previous += int64(d.Total)
		}
	}

	change := models.PeriodChange{
		Current:       Total(filtered),
		Previous:      previous,
		PreviousRange: prevRange,
	}
	if previous > 0 {
		change.Percent = float64(change.Current-previous) / float64(previous) * 100
	}
	return change
}

// HourlyTrendByCategory returns one curve per day category with the mean
// hourly total for every hour present. Categories are sorted by name and
// points by hour.
func HourlyTrendByCategory(hours []models.HourRecord) []models.CategoryCurve {
	groups := make(map[string]map[int]*accumulator)
	for _, h := range hours {
		byHour, ok := groups[h.DayCategory]
		if !ok {
			byHour = make(map[int]*accumulator)
			groups[h.DayCategory] = byHour
		}
		acc, ok := byHour[h.Hour]
		if !ok {
			acc = &accumulator{}
			byHour[h.Hour] = acc
		}
		acc.add(h.Total)
	}

	curves := make([]models.CategoryCurve, 0, len(groups))
	for category, byHour := range groups {
		curve := models.CategoryCurve{Category: category}
		for hour, acc := range byHour {
			curve.Points = append(curve.Points, models.HourlyPoint{Hour: hour, Mean: acc.mean()})
		}
		slices.SortFunc(curve.Points, func(a, b models.HourlyPoint) int {
			return cmp.Compare(a.Hour, b.Hour)
		})
		curves = append(curves, curve)
	}

	slices.SortFunc(curves, func(a, b models.CategoryCurve) int {
		return cmp.Compare(a.Category, b.Category)
	})
	return curves
}

// groupByCategory buckets daily rows by day category in sorted category order.
func groupByCategory(days []models.DayRecord) ([]string, map[string][]models.DayRecord) {
	groups := make(map[string][]models.DayRecord)
	var keys []string
	for _, d := range days {
		if _, ok := groups[d.DayCategory]; !ok {
			keys = append(keys, d.DayCategory)
		}
		groups[d.DayCategory] = append(groups[d.DayCategory], d)
	}
	slices.Sort(keys)
	return keys, groups
}

// CategoryStats returns mean, min and max daily total per day category.
func CategoryStats(days []models.DayRecord) []models.CategoryStat {
	keys, groups := groupByCategory(days)

	out := make([]models.CategoryStat, 0, len(keys))
	for _, k := range keys {
		var acc accumulator
		for _, d := range groups[k] {
			acc.add(d.Total)
		}
		out = append(out, models.CategoryStat{
			Category: k,
			Days:     acc.count,
			Mean:     acc.mean(),
			Min:      acc.min,
			Max:      acc.max,
		})
	}
	return out
}

// UserTypeByCategory returns mean casual and registered counts per day category.
func UserTypeByCategory(days []models.DayRecord) []models.UserTypeMeans {
	keys, groups := groupByCategory(days)

	out := make([]models.UserTypeMeans, 0, len(keys))
	for _, k := range keys {
		var casual, registered accumulator
		for _, d := range groups[k] {
			casual.add(d.Casual)
			registered.add(d.Registered)
		}
		out = append(out, models.UserTypeMeans{
			Category:   k,
			Casual:     casual.mean(),
			Registered: registered.mean(),
		})
	}
	return out
}

type seasonKey struct {
	season   models.Season
	yearCode int
}

// SeasonalTrend returns the mean daily total per (season, year) in canonical
// season order (spring, summer, fall, winter), then by year.
func SeasonalTrend(days []models.DayRecord) []models.SeasonalPoint {
	groups := make(map[seasonKey]*accumulator)
	years := make(map[int]int)

	for _, d := range days {
		k := seasonKey{season: d.Season, yearCode: d.YearCode}
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{}
			groups[k] = acc
		}
		acc.add(d.Total)
		if _, ok := years[d.YearCode]; !ok && !d.Date.IsZero() {
			years[d.YearCode] = d.Date.Year()
		}
	}

	out := make([]models.SeasonalPoint, 0, len(groups))
	for k, acc := range groups {
		year, ok := years[k.yearCode]
		if !ok {
			year = models.YearLabel(k.yearCode)
		}
		out = append(out, models.SeasonalPoint{
			Season:   k.season,
			YearCode: k.yearCode,
			Year:     year,
			Mean:     acc.mean(),
		})
	}

	slices.SortFunc(out, func(a, b models.SeasonalPoint) int {
		if c := cmp.Compare(seasonRank(a.Season), seasonRank(b.Season)); c != 0 {
			return c
		}
		return cmp.Compare(a.YearCode, b.YearCode)
	})
	return out
}

func seasonRank(s models.Season) int {
	if i := slices.Index(models.Seasons, s); i >= 0 {
		return i
	}
	return len(models.Seasons)
}
