package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

const sqlDateLayout = "2006-01-02 15:04:05"

// ReportMeta is the single row of report_meta.
type ReportMeta struct {
	Range         models.DateRange
	FullSpan      bool
	DayCount      int
	HourCount     int
	Total         int64
	Summary       *models.SummaryStats
	PreviousTotal int64
	ChangePercent float64
	GeneratedAt   time.Time
}

// WriteSnapshot replaces the database contents with report and the filtered
// daily rows it was built from. Monthly totals are derived from daily_records
// in SQL. Everything happens in one transaction.
func (db *DB) WriteSnapshot(ctx context.Context, report *models.Report, days []models.DayRecord) error {
	if report == nil {
		return fmt.Errorf("failed to write snapshot: %w", models.ErrDataUnavailable)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"daily_records", "monthly_totals", "category_stats", "seasonal_trend", "report_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertDailyRecords(ctx, tx, days); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO monthly_totals (month, total, days)
		SELECT strftime('%Y-%m', date), SUM(cnt), COUNT(*)
		FROM daily_records
		GROUP BY 1
		ORDER BY 1
	`); err != nil {
		return fmt.Errorf("failed to derive monthly totals: %w", err)
	}

	if err := insertCategoryStats(ctx, tx, report); err != nil {
		return err
	}
	if err := insertSeasonalTrend(ctx, tx, report.Seasonal); err != nil {
		return err
	}
	if err := insertReportMeta(ctx, tx, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func insertDailyRecords(ctx context.Context, tx *sql.Tx, days []models.DayRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_records (date, season, yr, day_category, casual, registered, cnt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare daily insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, d := range days {
		_, err := stmt.ExecContext(ctx,
			d.Date.Format(models.DateLayout),
			int(d.Season),
			d.YearCode,
			nullString(d.DayCategory),
			d.Casual,
			d.Registered,
			d.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to insert daily record %s: %w", d.Date.Format(models.DateLayout), err)
		}
	}
	return nil
}

func insertCategoryStats(ctx context.Context, tx *sql.Tx, report *models.Report) error {
	userTypes := make(map[string]models.UserTypeMeans, len(report.UserTypes))
	for _, u := range report.UserTypes {
		userTypes[u.Category] = u
	}

	for _, c := range report.Categories {
		u := userTypes[c.Category]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO category_stats (category, days, mean, min, max, casual_mean, registered_mean)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.Category, c.Days, c.Mean, c.Min, c.Max, u.Casual, u.Registered)
		if err != nil {
			return fmt.Errorf("failed to insert category stats for %q: %w", c.Category, err)
		}
	}
	return nil
}

func insertSeasonalTrend(ctx context.Context, tx *sql.Tx, points []models.SeasonalPoint) error {
	for _, p := range points {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO seasonal_trend (season, season_label, yr, year, mean)
			VALUES (?, ?, ?, ?, ?)
		`, int(p.Season), p.Season.String(), p.YearCode, p.Year, p.Mean)
		if err != nil {
			return fmt.Errorf("failed to insert seasonal point %s: %w", p.Label(), err)
		}
	}
	return nil
}

func insertReportMeta(ctx context.Context, tx *sql.Tx, report *models.Report) error {
	var mean sql.NullFloat64
	var maxVal, minVal sql.NullInt64
	var maxDate, minDate sql.NullString
	if s := report.Summary; s != nil {
		mean = sql.NullFloat64{Float64: s.Mean, Valid: true}
		maxVal = sql.NullInt64{Int64: int64(s.Max), Valid: true}
		minVal = sql.NullInt64{Int64: int64(s.Min), Valid: true}
		maxDate = nullString(s.MaxDate.Format(models.DateLayout))
		minDate = nullString(s.MinDate.Format(models.DateLayout))
	}

	generatedAt := report.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO report_meta (
			id, range_start, range_end, single_day, full_span, day_count, hour_count,
			total, mean, max, max_date, min, min_date, previous_total, change_percent, generated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		formatDate(report.Range.Start),
		formatDate(report.Range.End),
		boolToInt(report.Range.SingleDay),
		boolToInt(report.FullSpan),
		report.DayCount,
		report.HourCount,
		report.Total,
		mean,
		maxVal,
		maxDate,
		minVal,
		minDate,
		report.Change.Previous,
		report.Change.Percent,
		generatedAt.UTC().Format(sqlDateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert report metadata: %w", err)
	}
	return nil
}

// GetMonthlyTotals returns the monthly totals derived by the last snapshot in
// chronological order.
func (db *DB) GetMonthlyTotals(ctx context.Context) ([]models.MonthlyTotal, error) {
	rows, err := db.QueryContext(ctx, `SELECT month, total FROM monthly_totals ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var totals []models.MonthlyTotal
	for rows.Next() {
		var m models.MonthlyTotal
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		m.Start, _ = time.Parse("2006-01", m.Month)
		totals = append(totals, m)
	}

	return totals, rows.Err()
}

// GetDailyRecordCount returns how many daily rows the snapshot holds.
func (db *DB) GetDailyRecordCount(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count daily records: %w", err)
	}
	return n, nil
}

// GetReportMeta returns the metadata row of the last snapshot.
// It returns nil without error when no snapshot has been written.
func (db *DB) GetReportMeta(ctx context.Context) (*ReportMeta, error) {
	var (
		meta             ReportMeta
		start, end       sql.NullString
		singleDay, full  int
		mean             sql.NullFloat64
		maxVal, minVal   sql.NullInt64
		maxDate, minDate sql.NullString
		generatedAt      string
	)

	err := db.QueryRowContext(ctx, `
		SELECT range_start, range_end, single_day, full_span, day_count, hour_count,
			   total, mean, max, max_date, min, min_date, previous_total, change_percent, generated_at
		FROM report_meta
		WHERE id = 1
	`).Scan(
		&start, &end, &singleDay, &full,
		&meta.DayCount, &meta.HourCount, &meta.Total,
		&mean, &maxVal, &maxDate, &minVal, &minDate,
		&meta.PreviousTotal, &meta.ChangePercent, &generatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report metadata: %w", err)
	}

	meta.Range.Start = parseDate(start)
	meta.Range.End = parseDate(end)
	meta.Range.SingleDay = singleDay == 1
	meta.FullSpan = full == 1
	meta.GeneratedAt, _ = time.Parse(sqlDateLayout, generatedAt)

	if mean.Valid {
		meta.Summary = &models.SummaryStats{
			Count:   meta.DayCount,
			Mean:    mean.Float64,
			Max:     int(maxVal.Int64),
			MaxDate: parseDate(maxDate),
			Min:     int(minVal.Int64),
			MinDate: parseDate(minDate),
		}
	}

	return &meta, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func formatDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return nullString(t.Format(models.DateLayout))
}

func parseDate(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, _ := models.ParseDate(s.String)
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
