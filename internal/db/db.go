// Package db manages the SQLite snapshot database written by report exports.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createDailyRecordsTable(); err != nil {
		return err
	}
	if err := db.createMonthlyTotalsTable(); err != nil {
		return err
	}
	if err := db.createCategoryStatsTable(); err != nil {
		return err
	}
	if err := db.createSeasonalTrendTable(); err != nil {
		return err
	}
	return db.createReportMetaTable()
}

func (db *DB) createDailyRecordsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS daily_records (
		date TEXT PRIMARY KEY,
		season INTEGER NOT NULL,
		yr INTEGER NOT NULL,
		day_category TEXT,
		casual INTEGER NOT NULL DEFAULT 0,
		registered INTEGER NOT NULL DEFAULT 0,
		cnt INTEGER NOT NULL DEFAULT 0,
		month TEXT GENERATED ALWAYS AS (strftime('%Y-%m', date)) STORED,
		CHECK (cnt = casual + registered)
	);
	CREATE INDEX IF NOT EXISTS idx_daily_records_month ON daily_records(month);
	CREATE INDEX IF NOT EXISTS idx_daily_records_category ON daily_records(day_category);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createMonthlyTotalsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS monthly_totals (
		month TEXT PRIMARY KEY,
		total INTEGER NOT NULL DEFAULT 0,
		days INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createCategoryStatsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS category_stats (
		category TEXT PRIMARY KEY,
		days INTEGER NOT NULL DEFAULT 0,
		mean REAL DEFAULT 0,
		min INTEGER DEFAULT 0,
		max INTEGER DEFAULT 0,
		casual_mean REAL DEFAULT 0,
		registered_mean REAL DEFAULT 0
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createSeasonalTrendTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS seasonal_trend (
		season INTEGER NOT NULL,
		season_label TEXT NOT NULL,
		yr INTEGER NOT NULL,
		year INTEGER NOT NULL,
		mean REAL DEFAULT 0,
		PRIMARY KEY (season, yr)
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createReportMetaTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS report_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		range_start TEXT,
		range_end TEXT,
		single_day INTEGER DEFAULT 0,
		full_span INTEGER DEFAULT 0,
		day_count INTEGER DEFAULT 0,
		hour_count INTEGER DEFAULT 0,
		total INTEGER DEFAULT 0,
		mean REAL,
		max INTEGER,
		max_date TEXT,
		min INTEGER,
		min_date TEXT,
		previous_total INTEGER DEFAULT 0,
		change_percent REAL DEFAULT 0,
		generated_at TEXT NOT NULL
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	// Checkpoint WAL before closing
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}

// Vacuum performs database maintenance to reclaim space.
func (db *DB) Vacuum() error {
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}
