package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"sales-forecast/src/models"
)

// Result tables, in the order they are cleared and written.
var reportTables = []string{
	"product_aggregates",
	"hourly_aggregates",
	"daily_series",
	"forecast_runs",
	"forecasts",
}

// -----------------------------------------------------------------------------

// reportWriter inserts a report inside one transaction. Backends differ only
// in how tables are qualified and how placeholders are spelled.
type reportWriter struct {
	table       func(name string) string
	placeholder func(n int) string
}

// -----------------------------------------------------------------------------

func (w reportWriter) insert(tx *sql.Tx, table string, columns ...string) (*sql.Stmt, error) {
	marks := make([]string, len(columns))
	for i := range marks {
		marks[i] = w.placeholder(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		w.table(table), strings.Join(columns, ", "), strings.Join(marks, ", "))

	stmt, err := tx.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert into %s: %w", table, err)
	}
	return stmt, nil
}

// -----------------------------------------------------------------------------

// write replaces the contents of every result table with the report.
func (w reportWriter) write(db *sql.DB, report *models.MReport) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range reportTables {
		if _, err := tx.Exec("DELETE FROM " + w.table(table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	steps := []func(*sql.Tx, *models.MReport) error{
		w.writeProducts,
		w.writeHours,
		w.writeSeries,
		w.writeForecasts,
	}
	for _, step := range steps {
		if err := step(tx, report); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (w reportWriter) writeProducts(tx *sql.Tx, report *models.MReport) error {
	stmt, err := w.insert(tx, "product_aggregates", "line", "product", "quantity_total", "revenue_total")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, line := range report.Lines {
		for _, agg := range line.ProductAggregates {
			if _, err := stmt.Exec(line.Line, agg.ProductID, agg.QuantityTotal, agg.RevenueTotal); err != nil {
				return err
			}
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (w reportWriter) writeHours(tx *sql.Tx, report *models.MReport) error {
	stmt, err := w.insert(tx, "hourly_aggregates", "line", "hour", "quantity_total")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, line := range report.Lines {
		for _, h := range line.HourlyAggregates {
			if _, err := stmt.Exec(line.Line, h.Hour, h.QuantityTotal); err != nil {
				return err
			}
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (w reportWriter) writeSeries(tx *sql.Tx, report *models.MReport) error {
	stmt, err := w.insert(tx, "daily_series", "line", "metric", "date", "value")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, line := range report.Lines {
		for _, s := range line.DailySeries {
			for _, p := range s.Points {
				if _, err := stmt.Exec(line.Line, string(s.Metric), p.Date, p.Value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (w reportWriter) writeForecasts(tx *sql.Tx, report *models.MReport) error {
	runs, err := w.insert(tx, "forecast_runs",
		"line", "metric", "p", "d", "q", "horizon", "observations", "coefficients", "sigma2", "error", "generated_at")
	if err != nil {
		return err
	}
	defer runs.Close()

	points, err := w.insert(tx, "forecasts", "line", "metric", "step", "date", "value", "business_day")
	if err != nil {
		return err
	}
	defer points.Close()

	for _, line := range report.Lines {
		for _, f := range line.Forecasts {
			coeffs, err := json.Marshal(f.Coefficients)
			if err != nil {
				return err
			}
			if _, err := runs.Exec(line.Line, string(f.Metric), f.Order.P, f.Order.D, f.Order.Q,
				f.Horizon, f.Observations, string(coeffs), f.Sigma2, f.Error, report.GeneratedAt); err != nil {
				return err
			}

			for _, p := range f.Points {
				if _, err := points.Exec(line.Line, string(f.Metric), p.Step, p.Date, p.Value, p.BusinessDay); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
