package interfaces

import (
	"context"

	"sales-forecast/src/models"
)

// -----------------------------------------------------------------------------
// IRecordSource delivers the raw transaction rows of one product line.
// -----------------------------------------------------------------------------

type IRecordSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// Load reads every row of the source. Rows are returned unparsed; the
	// normalizer owns field validation.
	Load(ctx context.Context) ([]models.MRawRow, error)
}
