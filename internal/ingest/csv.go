// Package ingest loads the enrollment/capacity dataset from CSV, XLSX, or
// an HTTP snapshot URL. It hands raw rows to the normalizer; it never
// interprets field values itself.
package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// ParseCSV reads an entire CSV document into a header row plus data rows.
// Short and ragged rows are tolerated; the normalizer decides what is
// usable. Fields are trimmed.
func ParseCSV(ctx context.Context, data []byte) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	first := true
	for {
		if ctx.Err() != nil {
			return nil, nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}

		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, nil, eris.Wrap(readErr, "csv: read row")
		}

		for i, field := range record {
			record[i] = strings.TrimSpace(field)
		}

		if first {
			first = false
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, nil, eris.New("csv: empty document")
	}
	return header, rows, nil
}
