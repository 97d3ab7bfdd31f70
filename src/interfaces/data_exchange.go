package interfaces

import "sales-forecast/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defining the interface for sharing reports with external systems (Server/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast pushes a report to connected listeners and keeps it as the latest.
	Broadcast(report *models.MReport)

	// -----------------------------------------------------------------------------
	// UpdateReport replaces the latest report without broadcasting
	UpdateReport(report *models.MReport)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
