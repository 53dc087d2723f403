// Package ingest reads flight tables from CSV. A structurally invalid table
// (no header, ragged rows, unreadable input) is the one hard failure in the
// scoring path; everything row-level recovers with defaults.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/skyward/preflight/internal/risk"
)

// ErrEmptyTable is returned when the input has no header row.
var ErrEmptyTable = errors.New("table has no header row")

// ReadTable parses a CSV flight table with a header row into records.
// Column names are canonicalized, so both the snake_case and the legacy
// dashboard header dialects are accepted.
func ReadTable(r io.Reader) ([]risk.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []risk.Record
	for line := 2; ; line++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// encoding/csv enforces a rectangular table against the
			// header's field count.
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		records = append(records, risk.NewRecord(header, cells))
	}

	return records, nil
}
