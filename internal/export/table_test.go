package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets.csv")

	table := &Table{
		Header: []string{"GUID", "NAME"},
		Rows: [][]string{
			{"guid-1", "051234_SHOW_VM"},
			{"guid-2", "name, with comma"},
		},
	}
	if err := WriteTable(path, table); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 3 || raw[0] != 0xEF || raw[1] != 0xBB || raw[2] != 0xBF {
		t.Fatalf("file does not start with a UTF-8 BOM: % x", raw[:3])
	}

	got, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Header[0] != "GUID" {
		t.Fatalf("BOM leaked into first header cell: %q", got.Header[0])
	}
	if len(got.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(got.Rows))
	}
	if got.Rows[1][1] != "name, with comma" {
		t.Fatalf("quoted field mangled: %q", got.Rows[1][1])
	}
}

func TestReadTableWithoutBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.csv")
	if err := os.WriteFile(path, []byte("GUID,NAME\nguid-1,SHOW\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if table.Header[0] != "GUID" || len(table.Rows) != 1 {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestColumnIndex(t *testing.T) {
	table := &Table{Header: []string{"GUID", "NAME"}}
	if got := table.ColumnIndex("NAME"); got != 1 {
		t.Fatalf("ColumnIndex(NAME) = %d, want 1", got)
	}
	if got := table.ColumnIndex("MISSING"); got != -1 {
		t.Fatalf("ColumnIndex(MISSING) = %d, want -1", got)
	}
}
