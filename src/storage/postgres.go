package storage

import (
	"database/sql"
	"fmt"

	"sales-forecast/src/logger"
	"sales-forecast/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresReportStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
	writer reportWriter
}

// -----------------------------------------------------------------------------

func NewPostgresReportStore(cfg *models.MConfig, log *logger.Logger) (*PostgresReportStore, error) {
	if cfg.Storage.DBConnectionString == "" {
		return nil, fmt.Errorf("postgres store needs a connection string")
	}

	schema := cfg.Storage.Schema
	if schema == "" {
		schema = "sales_forecast"
	}

	return &PostgresReportStore{
		Config: cfg,
		Schema: schema,
		Logger: log,
		writer: reportWriter{
			table:       func(name string) string { return fmt.Sprintf(`"%s"."%s"`, schema, name) },
			placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		},
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresReportStore) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.recreateTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresReportStore initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresReportStore) recreateTables() error {
	tables := map[string]string{
		"product_aggregates": `
			CREATE TABLE %s (
				line TEXT,
				product TEXT,
				quantity_total INTEGER,
				revenue_total DOUBLE PRECISION,
				PRIMARY KEY (line, product)
			);`,
		"hourly_aggregates": `
			CREATE TABLE %s (
				line TEXT,
				hour INTEGER,
				quantity_total INTEGER,
				PRIMARY KEY (line, hour)
			);`,
		"daily_series": `
			CREATE TABLE %s (
				line TEXT,
				metric TEXT,
				date DATE,
				value DOUBLE PRECISION,
				PRIMARY KEY (line, metric, date)
			);`,
		"forecast_runs": `
			CREATE TABLE %s (
				line TEXT,
				metric TEXT,
				p INTEGER,
				d INTEGER,
				q INTEGER,
				horizon INTEGER,
				observations INTEGER,
				coefficients JSONB,
				sigma2 DOUBLE PRECISION,
				error TEXT,
				generated_at TIMESTAMPTZ,
				PRIMARY KEY (line, metric)
			);`,
		"forecasts": `
			CREATE TABLE %s (
				line TEXT,
				metric TEXT,
				step INTEGER,
				date DATE,
				value DOUBLE PRECISION,
				business_day BOOLEAN,
				PRIMARY KEY (line, metric, step)
			);`,
	}

	for _, name := range reportTables {
		table := d.writer.table(name)
		if _, err := d.DB.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
		if _, err := d.DB.Exec(fmt.Sprintf(tables[name], table)); err != nil {
			return fmt.Errorf("failed to create %s: %w", table, err)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresReportStore) SaveReport(report *models.MReport) error {
	if d.DB == nil {
		return fmt.Errorf("postgres store is not initialized")
	}
	return d.writer.write(d.DB, report)
}

// -----------------------------------------------------------------------------

func (d *PostgresReportStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
