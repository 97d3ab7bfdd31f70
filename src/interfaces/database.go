package interfaces

import "sales-forecast/src/models"

// -----------------------------------------------------------------------------
// IReportStore defines the contract for writing run results to a database.
// -----------------------------------------------------------------------------

type IReportStore interface {

	// -----------------------------------------------------------------------------

	// Initialize recreates the result tables. Results never outlive a run.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveReport writes aggregates, daily series and forecasts of every line.
	SaveReport(report *models.MReport) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
