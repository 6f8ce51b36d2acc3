package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ---------------------------------------------------------------------------
// Reader fallback matrix
// ---------------------------------------------------------------------------

// utf8BOM is the UTF-8 byte order mark some Excel exports prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Encodings tried in order when reading a CSV file. UTF-8 first (with or
// without BOM), then the two legacy single-byte encodings common in
// European spreadsheet exports.
var Encodings = []string{"utf-8", "utf-8-sig", "latin1", "cp1252"}

// Delimiters tried in order for each encoding.
var Delimiters = []rune{'\t', ',', ';'}

func decoderFor(name string) *encoding.Decoder {
	switch name {
	case "latin1":
		return charmap.ISO8859_1.NewDecoder()
	case "cp1252":
		return charmap.Windows1252.NewDecoder()
	case "utf-8-sig":
		return unicode.UTF8BOM.NewDecoder()
	default:
		return unicode.UTF8.NewDecoder()
	}
}

// decode converts raw file bytes to a UTF-8 string under the named
// encoding. Plain UTF-8 is rejected when the bytes are not valid UTF-8,
// so the legacy encodings get their turn.
func decode(raw []byte, name string) (string, error) {
	if name == "utf-8" || name == "utf-8-sig" {
		stripped := bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(stripped) {
			return "", fmt.Errorf("not valid UTF-8")
		}
	}
	out, _, err := transform.Bytes(decoderFor(name), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ---------------------------------------------------------------------------
// ReadCSV
// ---------------------------------------------------------------------------

// ReadCSV loads a tabular file, trying every encoding/delimiter
// combination until one parse yields more than one column. Files ending
// in .xlsx or .xls fall back to the Excel reader when no CSV parse
// succeeds. Malformed rows are skipped; short or long rows are padded or
// truncated to the header width.
func ReadCSV(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	for _, enc := range Encodings {
		text, err := decode(raw, enc)
		if err != nil {
			continue
		}
		for _, sep := range Delimiters {
			t, err := parseCSV(text, sep)
			if err != nil {
				continue
			}
			// A single-column result usually means the wrong delimiter.
			if len(t.Headers) > 1 {
				return t, nil
			}
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xls" {
		if t, err := ReadExcel(path); err == nil {
			return t, nil
		}
	}

	return nil, fmt.Errorf("unable to read %s with tried encodings and delimiters, and also as Excel", path)
}

// parseCSV parses decoded text with a single delimiter. Rows that fail to
// parse are dropped rather than aborting the whole file.
func parseCSV(text string, sep rune) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var headers []string
	var rows [][]string
	for {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				// Skip the bad line and keep going.
				continue
			}
			return nil, err
		}
		if headers == nil {
			headers = record
			continue
		}
		rows = append(rows, normalizeRow(record, len(headers)))
	}
	if headers == nil {
		return nil, fmt.Errorf("no header row")
	}
	return &Table{Headers: headers, Rows: rows}, nil
}

// ---------------------------------------------------------------------------
// WriteCSV
// ---------------------------------------------------------------------------

// WriteOptions controls CSV output.
type WriteOptions struct {
	// BOM prepends a UTF-8 byte order mark so Excel opens the file as UTF-8.
	BOM bool
	// Comma overrides the delimiter (default ',').
	Comma rune
}

// WriteCSV writes the table to path, header row first, no index column.
func WriteCSV(path string, t *Table, opts WriteOptions) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if opts.BOM {
		if _, err := f.Write(utf8BOM); err != nil {
			return fmt.Errorf("writing BOM: %w", err)
		}
	}

	w := csv.NewWriter(f)
	if opts.Comma != 0 {
		w.Comma = opts.Comma
	}
	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	for i, row := range t.Rows {
		if err := w.Write(normalizeRow(row, len(t.Headers))); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}
