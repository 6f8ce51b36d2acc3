package table

import (
	"reflect"
	"testing"
)

func sample() *Table {
	return &Table{
		Headers: []string{"Name", "City"},
		Rows: [][]string{
			{"ana", "madrid"},
			{"bo", "porto"},
		},
	}
}

func TestColumnLookups(t *testing.T) {
	tab := sample()

	if got := tab.ColumnIndex("City"); got != 1 {
		t.Fatalf("ColumnIndex(City) = %d, want 1", got)
	}
	if got := tab.ColumnIndex("city"); got != -1 {
		t.Fatalf("ColumnIndex is case-exact, got %d", got)
	}
	if got := tab.ColumnIndexFold(" CITY "); got != 1 {
		t.Fatalf("ColumnIndexFold( CITY ) = %d, want 1", got)
	}
	if got := tab.Column(0); !reflect.DeepEqual(got, []string{"ana", "bo"}) {
		t.Fatalf("Column(0) = %v", got)
	}
}

func TestAddColumn(t *testing.T) {
	tab := sample()

	if err := tab.AddColumn("Country", []string{"es", "pt"}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if !reflect.DeepEqual(tab.Headers, []string{"Name", "City", "Country"}) {
		t.Fatalf("Headers = %v", tab.Headers)
	}
	if tab.Rows[1][2] != "pt" {
		t.Fatalf("Rows[1] = %v", tab.Rows[1])
	}

	if err := tab.AddColumn("Bad", []string{"one"}); err == nil {
		t.Fatal("AddColumn with wrong length must fail")
	}
}

func TestInsertColumn(t *testing.T) {
	tab := sample()

	if err := tab.InsertColumn(1, "Age", []string{"30", "40"}); err != nil {
		t.Fatalf("InsertColumn: %v", err)
	}
	if !reflect.DeepEqual(tab.Headers, []string{"Name", "Age", "City"}) {
		t.Fatalf("Headers = %v", tab.Headers)
	}
	if !reflect.DeepEqual(tab.Rows[0], []string{"ana", "30", "madrid"}) {
		t.Fatalf("Rows[0] = %v", tab.Rows[0])
	}

	if err := tab.InsertColumn(5, "X", []string{"", ""}); err == nil {
		t.Fatal("InsertColumn out of range must fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	tab := sample()
	c := tab.Clone()
	c.Headers[0] = "Changed"
	c.Rows[0][0] = "changed"

	if tab.Headers[0] != "Name" || tab.Rows[0][0] != "ana" {
		t.Fatal("Clone shares memory with the original")
	}
}

func TestIsEmpty(t *testing.T) {
	if !(&Table{}).IsEmpty() {
		t.Fatal("zero table should be empty")
	}
	if !New([]string{"A"}).IsEmpty() {
		t.Fatal("headers without rows should be empty")
	}
	if sample().IsEmpty() {
		t.Fatal("populated table should not be empty")
	}
}

func TestNormalizeRow(t *testing.T) {
	if got := normalizeRow([]string{"a"}, 3); !reflect.DeepEqual(got, []string{"a", "", ""}) {
		t.Fatalf("pad: %v", got)
	}
	if got := normalizeRow([]string{"a", "b", "c"}, 2); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("truncate: %v", got)
	}
}
