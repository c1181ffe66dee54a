package sheet

import (
	"errors"
	"testing"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
)

func parseWorksheet(t *testing.T, body string) *xmltree.Node {
	t.Helper()
	root, err := xmltree.ParseBytes(worksheet(body))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	return root.FirstChild("worksheet")
}

func TestCascadeDefaults(t *testing.T) {
	c, err := NewCascade(parseWorksheet(t, `<sheetData/>`))
	if err != nil {
		t.Fatalf("NewCascade failed: %v", err)
	}
	if h, level := c.Row(0); h != 15 || level != 1 {
		t.Errorf("Row(0) = %v, %d, expected 15, 1", h, level)
	}
	if w, level := c.Col(16383); w != 8.38 || level != 1 {
		t.Errorf("Col(16383) = %v, %d, expected 8.38, 1", w, level)
	}
}

func TestCascadeColumnsClampAndOverride(t *testing.T) {
	body := `<sheetFormatPr defaultColWidth="10"/>
	<cols>
	  <col min="3" max="20000" width="5" outlineLevel="0"/>
	  <col min="4" max="4" outlineLevel="7"/>
	</cols>`
	c, err := NewCascade(parseWorksheet(t, body))
	if err != nil {
		t.Fatalf("NewCascade failed: %v", err)
	}

	tests := []struct {
		col   int
		width float64
		level int
	}{
		{0, 10, 1},
		{2, 5, 1},
		{3, 5, 8},
		{16383, 5, 1},
	}
	for _, tt := range tests {
		w, level := c.Col(tt.col)
		if w != tt.width || level != tt.level {
			t.Errorf("Col(%d) = %v, %d, expected %v, %d", tt.col, w, level, tt.width, tt.level)
		}
	}
}

func TestCascadeSetRow(t *testing.T) {
	root, err := xmltree.ParseBytes([]byte(`<row r="5" ht="22.5" outlineLevel="1"/>`))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	c, err := NewCascade(parseWorksheet(t, ``))
	if err != nil {
		t.Fatalf("NewCascade failed: %v", err)
	}
	if err := c.SetRow(4, root.FirstChild("row")); err != nil {
		t.Fatalf("SetRow failed: %v", err)
	}
	if h, level := c.Row(4); h != 22.5 || level != 2 {
		t.Errorf("Row(4) = %v, %d, expected 22.5, 2", h, level)
	}
	if h, _ := c.Row(5); h != DefaultRowHeight {
		t.Errorf("Row(5) = %v, expected default", h)
	}
}

func TestCascadeRejects(t *testing.T) {
	tests := []string{
		`<sheetFormatPr defaultRowHeight="tall"/>`,
		`<cols><col max="2" width="3"/></cols>`,
		`<cols><col min="0" max="2" width="3"/></cols>`,
		`<cols><col min="1" max="1" width="wide"/></cols>`,
		`<cols><col min="1" max="1" outlineLevel="300"/></cols>`,
	}
	for _, body := range tests {
		if _, err := NewCascade(parseWorksheet(t, body)); !errors.Is(err, ErrMalformedSheet) {
			t.Errorf("NewCascade(%q): expected ErrMalformedSheet, got %v", body, err)
		}
	}
}

func TestCascadeRowsHeldOnlyWhileAllocated(t *testing.T) {
	c, err := NewCascade(parseWorksheet(t, `<sheetFormatPr defaultRowHeight="18"/><sheetData/>`))
	if err != nil {
		t.Fatalf("NewCascade failed: %v", err)
	}
	if c.rowHeights != nil || c.rowOutlines != nil {
		t.Fatal("NewCascade allocated row storage")
	}
	if h, level := c.Row(1000); h != 18 || level != 1 {
		t.Errorf("Row(1000) = %v, %d, expected 18, 1", h, level)
	}

	c.allocRows()
	if len(c.rowHeights) == 0 {
		t.Fatal("allocRows left row storage empty")
	}
	if h, _ := c.Row(1000); h != 18 {
		t.Errorf("Row(1000) after allocRows = %v, expected 18", h)
	}

	c.releaseRows()
	if c.rowHeights != nil || c.rowOutlines != nil {
		t.Error("releaseRows kept row storage")
	}
}
