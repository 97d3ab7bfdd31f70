package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"sales-forecast/src/helpers"
	"sales-forecast/src/logger"
	"sales-forecast/src/models"
)

const utf8BOM = "\ufeff"

// CSVSource reads the sales report of one product line from a
// comma-separated file with a header row.
type CSVSource struct {
	Line   models.MLineConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCSVSource(line models.MLineConfig, log *logger.Logger) *CSVSource {
	if log == nil {
		log = logger.NewLogger(nil, "CSVSource-"+line.Name)
	}
	return &CSVSource{Line: line, Logger: log}
}

// -----------------------------------------------------------------------------

func (s *CSVSource) Name() string {
	return s.Line.Name
}

// -----------------------------------------------------------------------------

// Load reads every data row. Rows are numbered from 1, header excluded.
func (s *CSVSource) Load(ctx context.Context) ([]models.MRawRow, error) {
	f, err := os.Open(s.Line.Path)
	if err != nil {
		return nil, s.sourceError("failed to open report", err)
	}
	defer f.Close()

	return s.read(ctx, f)
}

// -----------------------------------------------------------------------------

func (s *CSVSource) read(ctx context.Context, r io.Reader) ([]models.MRawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, s.sourceError("report is empty", nil)
	}
	if err != nil {
		return nil, s.sourceError("failed to read header", err)
	}

	product, amount, timestamp, err := s.columns(header)
	if err != nil {
		return nil, err
	}

	rows := []models.MRawRow{}
	for n := 1; ; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, s.sourceError(fmt.Sprintf("failed to read row %d", n), err)
		}

		rows = append(rows, models.MRawRow{
			Row:       n,
			Product:   field(record, product),
			Amount:    field(record, amount),
			Timestamp: field(record, timestamp),
		})
	}

	s.Logger.Debug("Read %d rows from %s", len(rows), s.Line.Path)
	return rows, nil
}

// -----------------------------------------------------------------------------

// columns locates the configured columns in the header, ignoring case and
// surrounding spaces.
func (s *CSVSource) columns(header []string) (int, int, int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	lookup := func(name string) (int, error) {
		i, ok := index[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, s.sourceError(fmt.Sprintf("missing column %q", name), nil)
		}
		return i, nil
	}

	product, err := lookup(s.Line.ProductColumn)
	if err != nil {
		return 0, 0, 0, err
	}
	amount, err := lookup(s.Line.AmountColumn)
	if err != nil {
		return 0, 0, 0, err
	}
	timestamp, err := lookup(s.Line.TimestampColumn)
	if err != nil {
		return 0, 0, 0, err
	}
	return product, amount, timestamp, nil
}

// -----------------------------------------------------------------------------

func (s *CSVSource) sourceError(msg string, cause error) error {
	return &helpers.DataSourceError{SalesForecastError: helpers.SalesForecastError{
		Message: fmt.Sprintf("%s: %s (%s)", s.Line.Name, msg, s.Line.Path),
		Cause:   cause,
	}}
}

// -----------------------------------------------------------------------------

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
