package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is a table snapshot ready for rendering: the header row plus data
// rows whose cells follow the same column order the table schemas define.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// CSVExporter writes datasets in the same delimited layout the data files
// themselves use, so an exported table can be diffed against the file it came
// from.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the header row followed by every data row. Short rows are
// padded with empty cells to keep the output rectangular; rows wider than the
// header are rejected.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("dataset has no columns")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	for i, row := range data.Rows {
		if len(row) > len(data.Headers) {
			return nil, fmt.Errorf("row %d has %d cells for %d columns", i+1, len(row), len(data.Headers))
		}
		record := make([]string, len(data.Headers))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
