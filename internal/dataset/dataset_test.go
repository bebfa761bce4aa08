package dataset

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRows  int
		wantCols  []string
		wantKinds []ColumnKind
		wantErr   bool
	}{
		{
			name:      "columns in first appearance order",
			input:     `[{"b": 1, "a": "x"}, {"c": null, "a": "y", "b": 2.5}]`,
			wantRows:  2,
			wantCols:  []string{"b", "a", "c"},
			wantKinds: []ColumnKind{ColumnNumeric, ColumnCategorical, ColumnEmpty},
		},
		{
			name:      "numbers stored as strings stay categorical",
			input:     `[{"v": "1"}, {"v": 2}]`,
			wantRows:  2,
			wantCols:  []string{"v"},
			wantKinds: []ColumnKind{ColumnCategorical},
		},
		{
			name:      "booleans are categorical",
			input:     `[{"flag": true}, {"flag": false}]`,
			wantRows:  2,
			wantCols:  []string{"flag"},
			wantKinds: []ColumnKind{ColumnCategorical},
		},
		{
			name:     "empty array",
			input:    `[]`,
			wantRows: 0,
		},
		{name: "not an array", input: `{"a": 1}`, wantErr: true},
		{name: "nested value", input: `[{"a": [1, 2]}]`, wantErr: true},
		{name: "truncated", input: `[{"a": 1}`, wantErr: true},
		{name: "malformed", input: `[{"a": }]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := ParseJSON(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tab.Len() != tt.wantRows {
				t.Errorf("Len() = %d, want %d", tab.Len(), tt.wantRows)
			}
			names := tab.ColumnNames()
			if len(names) != len(tt.wantCols) {
				t.Fatalf("ColumnNames() = %v, want %v", names, tt.wantCols)
			}
			for i, name := range names {
				if name != tt.wantCols[i] {
					t.Errorf("column %d = %q, want %q", i, name, tt.wantCols[i])
				}
				kind, _ := tab.Kind(name)
				if kind != tt.wantKinds[i] {
					t.Errorf("Kind(%q) = %s, want %s", name, kind, tt.wantKinds[i])
				}
			}
		})
	}
}

func TestNumeric(t *testing.T) {
	tab, err := ParseJSON(strings.NewReader(`[{"v": 1, "s": "a"}, {"s": "b"}, {"v": 3, "s": "c"}]`))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}

	vs, err := tab.Numeric("v")
	if err != nil {
		t.Fatalf("Numeric(v) error = %v", err)
	}
	if len(vs) != 3 || vs[0] != 1 || !math.IsNaN(vs[1]) || vs[2] != 3 {
		t.Errorf("Numeric(v) = %v, want [1 NaN 3]", vs)
	}

	if _, err := tab.Numeric("s"); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("Numeric(s) error = %v, want ErrNotNumeric", err)
	}

	_, err = tab.Numeric("missing")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Numeric(missing) error = %v, want ErrColumnNotFound", err)
	}
	var ce *ColumnError
	if !errors.As(err, &ce) || ce.Column != "missing" {
		t.Errorf("error %v does not carry the column name", err)
	}

	if got := tab.NumericColumns(); len(got) != 1 || got[0] != "v" {
		t.Errorf("NumericColumns() = %v, want [v]", got)
	}
}

func TestCategorical(t *testing.T) {
	tab, err := ParseJSON(strings.NewReader(`[{"k": 10}, {"k": 2}, {"k": null}, {"k": 10}, {"k": 1.5}]`))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	cat, err := tab.Categorical("k")
	if err != nil {
		t.Fatalf("Categorical() error = %v", err)
	}
	if strings.Join(cat.Levels, ",") != "10,2,1.5" {
		t.Errorf("Levels = %v, want first-seen [10 2 1.5]", cat.Levels)
	}
	wantCodes := []int{0, 1, -1, 0, 2}
	for i, c := range cat.Codes {
		if c != wantCodes[i] {
			t.Errorf("Codes[%d] = %d, want %d", i, c, wantCodes[i])
		}
	}

	sorted := cat.Sorted()
	if strings.Join(sorted.Levels, ",") != "1.5,2,10" {
		t.Errorf("Sorted().Levels = %v, want numeric order", sorted.Levels)
	}
	if sorted.Codes[0] != 2 || sorted.Codes[2] != -1 || sorted.Codes[4] != 0 {
		t.Errorf("Sorted().Codes = %v", sorted.Codes)
	}

	rows := sorted.Rows()
	if len(rows[2]) != 2 || rows[2][0] != 0 || rows[2][1] != 3 {
		t.Errorf("Rows()[2] = %v, want [0 3]", rows[2])
	}

	strs, _ := ParseJSON(strings.NewReader(`[{"k": "b"}, {"k": "a"}, {"k": "c"}]`))
	sc, _ := strs.Categorical("k")
	if got := strings.Join(sc.Sorted().Levels, ""); got != "abc" {
		t.Errorf("string Sorted() = %q, want abc", got)
	}
}

func TestParseCSV(t *testing.T) {
	input := "\ufeffname,score,note\nalice, 3.5,\nbob,x,late\n\ncarol,7\n"
	tab, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if tab.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tab.Len())
	}
	if names := tab.ColumnNames(); names[0] != "name" {
		t.Errorf("BOM not stripped from header: %q", names[0])
	}
	if kind, _ := tab.Kind("score"); kind != ColumnCategorical {
		t.Errorf("score kind = %s, want categorical (contains x)", kind)
	}
	note, _ := tab.Column("note")
	if !note.Values[0].IsNull() || !note.Values[2].IsNull() {
		t.Errorf("empty and missing cells should be null: %+v", note.Values)
	}

	nums, err := ParseCSV(strings.NewReader("a,b\n1,2\n3,NaN\n"))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	b, err := nums.Numeric("b")
	if err != nil {
		t.Fatalf("Numeric(b) error = %v", err)
	}
	if b[0] != 2 || !math.IsNaN(b[1]) {
		t.Errorf("Numeric(b) = %v", b)
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"region", "sales"},
		{"north", 10},
		{"south", 12.5},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	tab, err := ParseXLSX(&buf)
	if err != nil {
		t.Fatalf("ParseXLSX() error = %v", err)
	}
	sales, err := tab.Numeric("sales")
	if err != nil {
		t.Fatalf("Numeric(sales) error = %v", err)
	}
	if len(sales) != 2 || sales[0] != 10 || sales[1] != 12.5 {
		t.Errorf("sales = %v, want [10 12.5]", sales)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data.json", FormatJSON, false},
		{"data", FormatJSON, false},
		{"DATA.CSV", FormatCSV, false},
		{"book.xlsx", FormatXLSX, false},
		{"book.xls", "", true},
		{"https://example.com/d/rows.csv?token=1", FormatCSV, false},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatOf(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "rows.json")
	if err := os.WriteFile(path, []byte(`[{"a": 1}, {"a": 2}]`), 0644); err != nil {
		t.Fatalf("Failed to create data file: %v", err)
	}

	tab, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tab.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tab.Len())
	}

	if _, err := Load(context.Background(), filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("Load() should fail for a missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, path); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() with cancelled context error = %v", err)
	}
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rows.csv":
			w.Write([]byte("x,y\n1,2\n3,4\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := &Loader{RetryMax: 1}
	tab, err := l.Load(context.Background(), srv.URL+"/rows.csv")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ys, _ := tab.Numeric("y"); len(ys) != 2 || ys[1] != 4 {
		t.Errorf("y = %v, want [2 4]", ys)
	}

	if _, err := l.Load(context.Background(), srv.URL+"/missing.json"); err == nil {
		t.Error("Load() should fail on 404")
	}
}

func TestEncodeJSON(t *testing.T) {
	tab, err := ParseCSV(strings.NewReader("z,a\n1,x\n,y\n"))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, tab, false); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	want := `[{"z":1,"a":"x"},{"z":null,"a":"y"}]` + "\n"
	if buf.String() != want {
		t.Errorf("EncodeJSON() = %q, want %q", buf.String(), want)
	}

	round, err := ParseJSON(&buf)
	if err != nil {
		t.Fatalf("ParseJSON(EncodeJSON()) error = %v", err)
	}
	if names := round.ColumnNames(); names[0] != "z" || names[1] != "a" {
		t.Errorf("column order lost: %v", names)
	}
}
