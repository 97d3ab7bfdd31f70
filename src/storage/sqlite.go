package storage

import (
	"database/sql"
	"fmt"

	"sales-forecast/src/logger"
	"sales-forecast/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteReportStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
	writer reportWriter
}

// -----------------------------------------------------------------------------

func NewSQLiteReportStore(cfg *models.MConfig, log *logger.Logger) (*SQLiteReportStore, error) {
	if cfg.Storage.DBPath == "" {
		return nil, fmt.Errorf("sqlite store needs a database path")
	}
	return &SQLiteReportStore{
		Config: cfg,
		Logger: log,
		writer: reportWriter{
			table:       func(name string) string { return name },
			placeholder: func(int) string { return "?" },
		},
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteReportStore) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	// Recreate Tables
	return d.recreateTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteReportStore) recreateTables() error {
	// SQLite types: INTEGER for int, REAL for float64, TEXT for string
	tables := map[string]string{
		"product_aggregates": `
			CREATE TABLE product_aggregates (
				line TEXT,
				product TEXT,
				quantity_total INTEGER,
				revenue_total REAL,
				PRIMARY KEY (line, product)
			);`,
		"hourly_aggregates": `
			CREATE TABLE hourly_aggregates (
				line TEXT,
				hour INTEGER,
				quantity_total INTEGER,
				PRIMARY KEY (line, hour)
			);`,
		"daily_series": `
			CREATE TABLE daily_series (
				line TEXT,
				metric TEXT,
				date TEXT,
				value REAL,
				PRIMARY KEY (line, metric, date)
			);`,
		"forecast_runs": `
			CREATE TABLE forecast_runs (
				line TEXT,
				metric TEXT,
				p INTEGER,
				d INTEGER,
				q INTEGER,
				horizon INTEGER,
				observations INTEGER,
				coefficients TEXT,
				sigma2 REAL,
				error TEXT,
				generated_at TIMESTAMP,
				PRIMARY KEY (line, metric)
			);`,
		"forecasts": `
			CREATE TABLE forecasts (
				line TEXT,
				metric TEXT,
				step INTEGER,
				date TEXT,
				value REAL,
				business_day INTEGER,
				PRIMARY KEY (line, metric, step)
			);`,
	}

	for _, name := range reportTables {
		if _, err := d.DB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", name)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", name, err)
		}
		if _, err := d.DB.Exec(tables[name]); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteReportStore) SaveReport(report *models.MReport) error {
	if d.DB == nil {
		return fmt.Errorf("sqlite store is not initialized")
	}
	return d.writer.write(d.DB, report)
}

// -----------------------------------------------------------------------------

func (d *SQLiteReportStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
