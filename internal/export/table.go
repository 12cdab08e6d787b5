package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a raw CSV table: a header row and data rows, all strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// utf8Sig decodes/encodes UTF-8 with a byte-order mark, the "utf-8-sig"
// convention of the upstream export jobs.
var utf8Sig = unicode.UTF8BOM

// ReadTable reads a CSV file, stripping a leading byte-order mark when one
// is present.
func ReadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(transform.NewReader(file, utf8Sig.NewDecoder()))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// WriteTable writes a CSV file with a UTF-8 byte-order mark.
func WriteTable(path string, table *Table) error {
	var buf bytes.Buffer
	encoded := transform.NewWriter(&buf, utf8Sig.NewEncoder())
	writer := csv.NewWriter(encoded)
	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := encoded.Close(); err != nil {
		return fmt.Errorf("finish csv encoding: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}
