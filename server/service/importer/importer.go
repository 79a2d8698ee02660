// Package importer ingests restaurant CSV payloads. Two tabular formats
// are recognized by the column count of the first row: a 10-column "full"
// format with explicit open/close/day columns, and a 2-column "basic"
// format whose second column holds a free-text weekly schedule.
//
// Each row is imported inside its own transaction: the restaurant, its
// split business-hour rows and the subsequent merge pass either all commit
// or all roll back. Processing stops at the first failing row; rows
// committed before it stay persisted.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dinedex/dinedex/server/service/hours"
	"github.com/dinedex/dinedex/store"
)

var (
	// ErrEmptyPayload is returned when the CSV payload holds no rows.
	ErrEmptyPayload = errors.New("the CSV payload is empty")
	// ErrUnsupportedFormat is returned when the first row's column count
	// matches no known import format.
	ErrUnsupportedFormat = errors.New("unsupported CSV import format")
)

// RowError reports the failing row of an import, counted from the first
// line of the payload (the full format's header is row 0).
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("import failed at row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// rowImporter parses one CSV row and persists the restaurant it describes
// together with its business hours, using the transaction-scoped store.
type rowImporter interface {
	importRow(ctx context.Context, tx *store.Store, columns []string) (*store.Restaurant, error)
}

// Importer drives CSV imports against the store.
type Importer struct {
	store *store.Store
}

// New creates a new importer.
func New(store *store.Store) *Importer {
	return &Importer{store: store}
}

// forColumnCount selects the row importer for a payload whose first row
// has n columns, and the index of the first data row.
func forColumnCount(n int) (rowImporter, int, error) {
	switch n {
	case fullColumnCount:
		// The full format carries a header line.
		return &fullImporter{}, 1, nil
	case basicColumnCount:
		return &basicImporter{}, 0, nil
	default:
		return nil, 0, ErrUnsupportedFormat
	}
}

// Import reads a comma-delimited, double-quote-enclosed CSV payload and
// imports every row. It returns the number of restaurants imported; on
// failure the returned error carries the offending row index and the
// count of rows committed before it.
func (i *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV payload: %w", err)
	}
	if len(records) == 0 {
		return 0, ErrEmptyPayload
	}

	imp, start, err := forColumnCount(len(records[0]))
	if err != nil {
		return 0, err
	}

	counter := 0
	for idx := start; idx < len(records); idx++ {
		columns := records[idx]

		// A lone empty field marks the end of usable rows.
		if len(columns) == 1 && strings.TrimSpace(columns[0]) == "" {
			break
		}

		err := i.store.RunInTransaction(ctx, func(ctx context.Context, tx *store.Store) error {
			restaurant, err := imp.importRow(ctx, tx, columns)
			if err != nil {
				return err
			}
			if _, err := hours.NewService(tx).MergeAdjacent(ctx, restaurant.ID); err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			return counter, &RowError{Row: idx, Err: err}
		}
		counter++
	}

	slog.Info("restaurant import finished", slog.Int("imported", counter))
	return counter, nil
}

// column returns the i-th column or the empty string when the row is
// short; ragged rows are tolerated the same way the CSV source is.
func column(columns []string, i int) string {
	if i >= len(columns) {
		return ""
	}
	return columns[i]
}
