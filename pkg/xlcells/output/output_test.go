package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func sampleCells() []models.DecodedCell {
	date := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	group := 0
	return []models.DecodedCell{
		{
			Sheet: "Sheet1", Address: "A1", Row: 1, Col: 1, DataType: models.TypeNumeric,
			Content: strPtr("1.5"), Numeric: floatPtr(1.5), Formula: strPtr("B1/2"),
			FormulaGroup: &group, Height: 15, Width: 8.38,
			RowOutlineLevel: 1, ColOutlineLevel: 1, StyleFormat: "Normal", LocalFormatID: 1,
		},
		{
			Sheet: "Sheet1", Address: "B1", Row: 1, Col: 2, DataType: models.TypeDate,
			Content: strPtr("45000"), Date: &date, Comment: strPtr("a, \"quoted\" note"),
			Height: 15, Width: 8.38, RowOutlineLevel: 1, ColOutlineLevel: 1,
			StyleFormat: "Normal", LocalFormatID: 2,
		},
		{
			Sheet: "Sheet1", Address: "C1", Row: 1, Col: 3, DataType: models.TypeCharacter,
			Character: strPtr("bold"), CharacterFormatted: []models.TextRun{{Text: "bold", Bold: true}},
			Height: 15, Width: 8.38, RowOutlineLevel: 1, ColOutlineLevel: 1,
			StyleFormat: "Normal", LocalFormatID: 1,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleCells(), CSVOptions{}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header + 3 records, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(CSVHeader, ",") {
		t.Errorf("Unexpected header: %v", records[0])
	}

	a1 := records[1]
	tests := []struct {
		column   int
		expected string
	}{
		{1, "A1"},
		{5, "numeric"},
		{7, "1.5"},
		{8, ""},
		{9, ""},
		{13, "B1/2"},
		{16, "0"},
		{18, "15"},
		{19, "8.38"},
		{23, "1"},
	}
	for _, tt := range tests {
		if a1[tt.column] != tt.expected {
			t.Errorf("A1 %s = %q, expected %q", CSVHeader[tt.column], a1[tt.column], tt.expected)
		}
	}

	if got := records[2][8]; got != "2023-03-15T00:00:00Z" {
		t.Errorf("B1 date = %q", got)
	}
	if got := records[2][17]; got != "a, \"quoted\" note" {
		t.Errorf("B1 comment = %q", got)
	}
	if got := records[3][11]; got != "true" {
		t.Errorf("C1 character_formatted = %q, expected true", got)
	}
}

func TestWriteCSVCharacterFormattedColumn(t *testing.T) {
	cells := []models.DecodedCell{
		{Address: "A1", DataType: models.TypeCharacter, Character: strPtr("hello"),
			CharacterFormatted: []models.TextRun{{Text: "hello"}}},
		{Address: "B1", DataType: models.TypeCharacter, Character: strPtr("ab"), Formula: strPtr(`"a"&"b"`)},
		{Address: "C1", DataType: models.TypeNumeric, Numeric: floatPtr(3)},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, cells, CSVOptions{}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	tests := []struct {
		address  string
		expected string
	}{
		{"A1", "true"},
		{"B1", "false"},
		{"C1", "false"},
	}
	for i, tt := range tests {
		if got := records[i+1][11]; got != tt.expected {
			t.Errorf("%s character_formatted = %q, expected %q", tt.address, got, tt.expected)
		}
	}
}

func TestWriteCSVWithBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, CSVOptions{BOM: true}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\xef\xbb\xbfsheet,address")) {
		t.Errorf("Expected BOM then header, got %q", buf.String())
	}
}

func TestToJSON(t *testing.T) {
	wb := &models.WorkbookCells{
		BookName: "book.xlsx",
		Sheets:   []models.SheetCells{{Name: "Sheet1", Dimension: "A1:C1", Cells: sampleCells()}},
	}

	data, err := ToJSON(wb, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["book_name"] != "book.xlsx" {
		t.Errorf("Expected book_name book.xlsx, got %v", decoded["book_name"])
	}
	sheets := decoded["sheets"].([]any)
	cells := sheets[0].(map[string]any)["cells"].([]any)
	a1 := cells[0].(map[string]any)
	if a1["numeric"] != 1.5 || a1["date"] != nil || a1["comment"] != nil {
		t.Errorf("Unexpected A1 JSON: %v", a1)
	}

	pretty, err := ToJSON(wb, true)
	if err != nil {
		t.Fatalf("ToJSON pretty failed: %v", err)
	}
	if !bytes.Contains(pretty, []byte("\n  \"book_name\"")) {
		t.Errorf("Expected indented output, got %s", pretty[:40])
	}
}

func TestCellsToJSONEmpty(t *testing.T) {
	data, err := CellsToJSON(nil, false)
	if err != nil {
		t.Fatalf("CellsToJSON failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("CellsToJSON(nil) = %s, expected []", data)
	}
}

func TestSheetToJSON(t *testing.T) {
	data, err := SheetToJSON(&models.SheetCells{Name: "Only"}, false)
	if err != nil {
		t.Fatalf("SheetToJSON failed: %v", err)
	}
	if !bytes.Contains(data, []byte(`"name":"Only"`)) || !bytes.Contains(data, []byte(`"cells":null`)) {
		t.Errorf("Unexpected sheet JSON: %s", data)
	}
}
