package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads comma-separated records whose first record is the header.
// Cells that parse as numbers become numbers and empty cells become null.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewBuilder().Table(), nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := [][]string{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		records = append(records, rec)
	}
	return tableFromGrid(header, records), nil
}

// tableFromGrid turns string records under a header into a table. Records
// shorter than the header leave trailing columns null; extra cells are dropped.
func tableFromGrid(header []string, records [][]string) *Table {
	b := NewBuilder()
	for _, name := range header {
		b.AddColumn(name)
	}
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		n := min(len(rec), len(header))
		keys := make([]string, 0, n)
		values := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			keys = append(keys, header[i])
			values = append(values, parseCell(strings.TrimSpace(rec[i])))
		}
		b.AddRow(keys, values)
	}
	return b.Table()
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
