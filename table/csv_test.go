package table

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCSVDelimiters(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"comma", "name,city\nana,madrid\n"},
		{"semicolon", "name;city\nana;madrid\n"},
		{"tab", "name\tcity\nana\tmadrid\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "in.csv", []byte(tt.data))
			tab, err := ReadCSV(path)
			if err != nil {
				t.Fatalf("ReadCSV: %v", err)
			}
			if !reflect.DeepEqual(tab.Headers, []string{"name", "city"}) {
				t.Fatalf("Headers = %v", tab.Headers)
			}
			if !reflect.DeepEqual(tab.Rows, [][]string{{"ana", "madrid"}}) {
				t.Fatalf("Rows = %v", tab.Rows)
			}
		})
	}
}

func TestReadCSVWithBOM(t *testing.T) {
	data := append(append([]byte{}, utf8BOM...), []byte("name,city\nana,madrid\n")...)
	path := writeTemp(t, "bom.csv", data)

	tab, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tab.Headers[0] != "name" {
		t.Fatalf("BOM leaked into header: %q", tab.Headers[0])
	}
}

func TestReadCSVLatin1(t *testing.T) {
	// "café" with é encoded as ISO 8859-1 byte 0xE9, invalid as UTF-8.
	data := []byte("name,drink\nana,caf\xe9\n")
	path := writeTemp(t, "latin1.csv", data)

	tab, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tab.Rows[0][1] != "café" {
		t.Fatalf("latin1 decode: got %q, want %q", tab.Rows[0][1], "café")
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	path := writeTemp(t, "ragged.csv", []byte("a,b,c\n1,2\n1,2,3,4\n"))

	tab, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := [][]string{{"1", "2", ""}, {"1", "2", "3"}}
	if !reflect.DeepEqual(tab.Rows, want) {
		t.Fatalf("Rows = %v, want %v", tab.Rows, want)
	}
}

func TestReadCSVUnreadable(t *testing.T) {
	// Random binary that is neither CSV nor a workbook.
	path := writeTemp(t, "junk.xlsx", []byte{0x00, 0x01, 0x02, 0xFF, 0xFE})
	if _, err := ReadCSV(path); err == nil {
		t.Fatal("expected error for unreadable file")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tab := &Table{
		Headers: []string{"name", "note"},
		Rows:    [][]string{{"ana", "says \"hi\""}, {"bo", "a,b"}},
	}
	path := filepath.Join(t.TempDir(), "out", "rt.csv")

	if err := WriteCSV(path, tab, WriteOptions{}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(got.Headers, tab.Headers) || !reflect.DeepEqual(got.Rows, tab.Rows) {
		t.Fatalf("round trip diverged: %v / %v", got.Headers, got.Rows)
	}
}

func TestWriteCSVOptions(t *testing.T) {
	tab := &Table{Headers: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}
	path := filepath.Join(t.TempDir(), "opt.csv")

	if err := WriteCSV(path, tab, WriteOptions{BOM: true, Comma: ';'}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), string(utf8BOM)) {
		t.Fatal("missing BOM")
	}
	if !strings.Contains(string(raw), "a;b") {
		t.Fatalf("semicolon delimiter not applied: %q", raw)
	}
}

func TestExcelRoundTrip(t *testing.T) {
	tab := &Table{
		Headers: []string{"name", "city"},
		Rows:    [][]string{{"ana", "madrid"}, {"bo", "porto"}},
	}
	path := filepath.Join(t.TempDir(), "rt.xlsx")

	if err := WriteExcel(path, tab); err != nil {
		t.Fatalf("WriteExcel: %v", err)
	}
	got, err := ReadExcel(path)
	if err != nil {
		t.Fatalf("ReadExcel: %v", err)
	}
	if !reflect.DeepEqual(got.Headers, tab.Headers) || !reflect.DeepEqual(got.Rows, tab.Rows) {
		t.Fatalf("round trip diverged: %v / %v", got.Headers, got.Rows)
	}
}

func TestReadCSVFallsBackToExcel(t *testing.T) {
	tab := &Table{Headers: []string{"name", "city"}, Rows: [][]string{{"ana", "madrid"}}}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := WriteExcel(path, tab); err != nil {
		t.Fatal(err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV on workbook: %v", err)
	}
	if !reflect.DeepEqual(got.Headers, tab.Headers) {
		t.Fatalf("Headers = %v", got.Headers)
	}
}
