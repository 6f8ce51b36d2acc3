// Package datemeta derives calendar metadata columns (Year, Month, Day,
// Quarter) from a table's date column.
package datemeta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/datapipe-tools/tabkit/table"
)

// ErrNoDateColumn is returned when no column in the table looks like a
// date column. This is structural: the step cannot run at all.
var ErrNoDateColumn = errors.New("datemeta: date column not found")

// Names of the derived columns, inserted directly after the date column.
var MetadataColumns = []string{"Year", "Month", "Day", "Quarter"}

// candidates are preferred date column names, checked case-insensitively
// and in order before falling back to any header containing "date".
var candidates = []string{
	"date",
	"date_published",
	"published_date",
	"published",
	"datetime",
	"timestamp",
}

// dateLayouts are tried in order. Day-first layouts come first: the
// datasets this pipeline serves overwhelmingly use European-style dates.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2006-01-02",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2 Jan 2006",
	"Jan 2, 2006",
}

// FindDateColumn returns the index of the table's date column: the first
// case-insensitive match of a well-known name, then the first header
// containing "date". ErrNoDateColumn when neither exists.
func FindDateColumn(t *table.Table) (int, error) {
	lower := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, want := range candidates {
		for i, h := range lower {
			if h == want {
				return i, nil
			}
		}
	}
	for i, h := range lower {
		if strings.Contains(h, "date") {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w (available columns: %s)", ErrNoDateColumn, strings.Join(t.Headers, ", "))
}

// ParseDate parses a cell value as a date, trying day-first layouts
// before ISO ones. ok is false for blank or unparseable cells.
func ParseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Derive returns a copy of the table with Year, Month (abbreviated name),
// Day and Quarter columns inserted immediately after the date column.
// Cells that fail to parse produce blank metadata; they never abort the
// step.
func Derive(t *table.Table) (*table.Table, error) {
	dateIdx, err := FindDateColumn(t)
	if err != nil {
		return nil, err
	}

	n := t.Len()
	years := make([]string, n)
	months := make([]string, n)
	days := make([]string, n)
	quarters := make([]string, n)

	for i, row := range t.Rows {
		var cell string
		if dateIdx < len(row) {
			cell = row[dateIdx]
		}
		ts, ok := ParseDate(cell)
		if !ok {
			continue
		}
		years[i] = strconv.Itoa(ts.Year())
		months[i] = ts.Format("Jan")
		days[i] = strconv.Itoa(ts.Day())
		quarters[i] = strconv.Itoa((int(ts.Month())-1)/3 + 1)
	}

	out := t.Clone()
	values := [][]string{years, months, days, quarters}
	for i, name := range MetadataColumns {
		if err := out.InsertColumn(dateIdx+1+i, name, values[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
