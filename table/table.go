// Package table implements the tabular data model shared by all pipeline
// steps, with CSV and Excel readers/writers. CSV reading tries several
// encodings and delimiters before giving up (legacy exports are frequently
// latin1 or cp1252 with semicolon or tab separators).
package table

import (
	"fmt"
	"strings"
)

// Table is an in-memory tabular dataset. Cells are raw strings; an empty
// string stands for a missing value. Rows are kept at the same width as
// Headers (readers pad or truncate ragged input rows).
type Table struct {
	// Headers are the column names, in order.
	Headers []string
	// Rows hold one string per column for each data row.
	Rows [][]string
}

// New creates an empty table with the given headers.
func New(headers []string) *Table {
	return &Table{Headers: headers}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no headers or no data rows.
func (t *Table) IsEmpty() bool {
	return len(t.Headers) == 0 || len(t.Rows) == 0
}

// ColumnIndex returns the index of the named column, or -1 if absent.
// The match is exact.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// ColumnIndexFold returns the index of the named column using a
// case-insensitive match on trimmed names, or -1 if absent.
func (t *Table) ColumnIndexFold(name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

// Column returns a copy of the values in column i, one per row.
func (t *Table) Column(i int) []string {
	col := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			col[r] = row[i]
		}
	}
	return col
}

// AddColumn appends a new column with the given name and values.
// values must have one entry per row.
func (t *Table) AddColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.Rows))
	}
	t.Headers = append(t.Headers, name)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], values[r])
	}
	return nil
}

// InsertColumn inserts a new column at index pos (0 <= pos <= len(Headers)).
// values must have one entry per row.
func (t *Table) InsertColumn(pos int, name string, values []string) error {
	if pos < 0 || pos > len(t.Headers) {
		return fmt.Errorf("column position %d out of range [0, %d]", pos, len(t.Headers))
	}
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.Rows))
	}
	t.Headers = append(t.Headers, "")
	copy(t.Headers[pos+1:], t.Headers[pos:])
	t.Headers[pos] = name
	for r := range t.Rows {
		row := append(t.Rows[r], "")
		copy(row[pos+1:], row[pos:])
		row[pos] = values[r]
		t.Rows[r] = row
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		c.Rows[r] = append([]string(nil), row...)
	}
	return c
}

// normalizeRow pads or truncates a row to the given width.
func normalizeRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	if len(row) > width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
