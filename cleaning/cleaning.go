// Package cleaning implements the simple single-pass table cleanups:
// header normalization and exact-duplicate row removal.
package cleaning

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/datapipe-tools/tabkit/table"
)

var titleCaser = cases.Title(language.Und)

// NormalizeText lowers and trims a raw text value for comparison. Used
// wherever user-supplied names are matched against table headers.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// collapseSpaces trims s and folds runs of whitespace into single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeHeaders returns a copy of the table with every column name
// trimmed of excess whitespace and converted to title case.
func NormalizeHeaders(t *table.Table) *table.Table {
	out := t.Clone()
	for i, h := range out.Headers {
		out.Headers[i] = titleCaser.String(collapseSpaces(h))
	}
	return out
}

// MatchColumns resolves user-supplied column names against the table's
// headers, case-insensitively. It returns the matched canonical names and
// the names that matched nothing.
func MatchColumns(t *table.Table, names []string) (matched, invalid []string) {
	byKey := make(map[string]string, len(t.Headers))
	for _, h := range t.Headers {
		byKey[NormalizeText(h)] = h
	}
	for _, name := range names {
		if actual, ok := byKey[NormalizeText(name)]; ok {
			matched = append(matched, actual)
		} else {
			invalid = append(invalid, name)
		}
	}
	return matched, invalid
}

// RemoveDuplicates returns a copy of the table with exact-duplicate rows
// removed, keeping the first occurrence. columns selects which columns
// participate in the comparison (matched case-insensitively); an empty
// list compares whole rows. Unknown column names are an error.
func RemoveDuplicates(t *table.Table, columns []string) (*table.Table, int, error) {
	indices := make([]int, 0, len(t.Headers))
	if len(columns) == 0 {
		for i := range t.Headers {
			indices = append(indices, i)
		}
	} else {
		matched, invalid := MatchColumns(t, columns)
		if len(invalid) > 0 {
			return nil, 0, fmt.Errorf("invalid columns: %s", strings.Join(invalid, ", "))
		}
		for _, name := range matched {
			indices = append(indices, t.ColumnIndex(name))
		}
	}

	out := table.New(append([]string(nil), t.Headers...))
	seen := make(map[string]bool, len(t.Rows))
	removed := 0
	for _, row := range t.Rows {
		key := rowKey(row, indices)
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		out.Rows = append(out.Rows, append([]string(nil), row...))
	}
	return out, removed, nil
}

// rowKey builds a collision-safe comparison key from the selected cells.
func rowKey(row []string, indices []int) string {
	var b strings.Builder
	for _, i := range indices {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		// Length-prefix each cell so "a","bc" never collides with "ab","c".
		fmt.Fprintf(&b, "%d:%s\x00", len(cell), cell)
	}
	return b.String()
}
