package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Init ensures the data directory exists and every table file is present,
// writing a header-only file for each missing table.
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	for _, schema := range Schemas {
		path := filepath.Join(dir, schema.File)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat table %s: %w", schema.Name, err)
		}
		if err := Write(dir, schema, nil); err != nil {
			return err
		}
	}
	return nil
}

// Read loads all data rows of a table, validating the header against the
// schema. Field counts are enforced by the CSV reader.
func Read(dir string, schema Schema) ([][]string, error) {
	path := filepath.Join(dir, schema.File)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", schema.Name, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(schema.Columns)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", schema.Name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s: missing header row", schema.Name)
	}
	for i, col := range schema.Columns {
		if records[0][i] != col {
			return nil, fmt.Errorf("table %s: header mismatch, want %q got %q", schema.Name, col, records[0][i])
		}
	}
	return records[1:], nil
}

// Write replaces the table file wholesale: header row first, then every data
// row. There is no partial-write recovery; a crash mid-write can corrupt the
// file. Accepted single-user limitation, last writer wins.
func Write(dir string, schema Schema, rows [][]string) error {
	path := filepath.Join(dir, schema.File)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table %s: %w", schema.Name, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(schema.Columns); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("write header %s: %w", schema.Name, err)
	}
	for _, row := range rows {
		if len(row) != len(schema.Columns) {
			f.Close() //nolint:errcheck
			return fmt.Errorf("table %s: row has %d fields, want %d", schema.Name, len(row), len(schema.Columns))
		}
		if err := writer.Write(row); err != nil {
			f.Close() //nolint:errcheck
			return fmt.Errorf("write row %s: %w", schema.Name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("flush table %s: %w", schema.Name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close table %s: %w", schema.Name, err)
	}
	return nil
}
