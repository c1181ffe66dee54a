package styles

import "testing"

const styleSheet = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <numFmts count="3">
    <numFmt numFmtId="164" formatCode="yyyy\-mm\-dd"/>
    <numFmt numFmtId="165" formatCode="0.00&quot;d&quot;"/>
    <numFmt numFmtId="166" formatCode="[h]:mm:ss"/>
  </numFmts>
  <cellStyleXfs count="2">
    <xf numFmtId="0" fontId="0" fillId="0" borderId="0"/>
    <xf numFmtId="14" fontId="0" fillId="0" borderId="0"/>
  </cellStyleXfs>
  <cellXfs count="5">
    <xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>
    <xf numFmtId="14" fontId="0" fillId="0" borderId="0" xfId="0" applyNumberFormat="1"/>
    <xf numFmtId="164" fontId="0" fillId="0" borderId="0" xfId="0" applyNumberFormat="1"/>
    <xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="1"/>
    <xf numFmtId="165" fontId="0" fillId="0" borderId="0" xfId="1" applyNumberFormat="true"/>
  </cellXfs>
  <cellStyles count="2">
    <cellStyle name="Normal" xfId="0" builtinId="0"/>
    <cellStyle name="Date Style" xfId="1"/>
  </cellStyles>
</styleSheet>`

func loadTable(t *testing.T) *Table {
	t.Helper()
	table, err := Load([]byte(styleSheet))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return table
}

func TestNumberFormatFor(t *testing.T) {
	table := loadTable(t)
	tests := []struct {
		index   int
		applies bool
		id      int
	}{
		{0, false, 0},
		{1, true, 14},
		{2, true, 164},
		{3, false, 0},
		{4, true, 165},
		{99, false, 0},
	}

	for _, tt := range tests {
		applies, id := table.NumberFormatFor(tt.index)
		if applies != tt.applies || id != tt.id {
			t.Errorf("NumberFormatFor(%d) = (%v, %d), expected (%v, %d)",
				tt.index, applies, id, tt.applies, tt.id)
		}
	}
}

func TestInheritedNumberFormatFor(t *testing.T) {
	table := loadTable(t)
	tests := []struct {
		index    int
		expected int
	}{
		{0, 0},
		{3, 14},
		{4, 14},
		{99, 0},
	}

	for _, tt := range tests {
		if got := table.InheritedNumberFormatFor(tt.index); got != tt.expected {
			t.Errorf("InheritedNumberFormatFor(%d) = %d, expected %d", tt.index, got, tt.expected)
		}
	}
}

func TestStyleNameFor(t *testing.T) {
	table := loadTable(t)
	tests := []struct {
		index    int
		expected string
	}{
		{0, "Normal"},
		{3, "Date Style"},
		{4, "Date Style"},
		{99, "Normal"},
	}

	for _, tt := range tests {
		if got := table.StyleNameFor(tt.index); got != tt.expected {
			t.Errorf("StyleNameFor(%d) = %q, expected %q", tt.index, got, tt.expected)
		}
	}
}

func TestIsDateFormat(t *testing.T) {
	table := loadTable(t)
	tests := []struct {
		id       int
		expected bool
	}{
		{0, false},
		{2, false},
		{14, true},
		{22, true},
		{45, true},
		{49, false},
		{164, true},
		{165, false},
		{166, true},
		{200, false},
	}

	for _, tt := range tests {
		if got := table.IsDateFormat(tt.id); got != tt.expected {
			t.Errorf("IsDateFormat(%d) = %v, expected %v", tt.id, got, tt.expected)
		}
	}
}

func TestIsDateCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"General", false},
		{"0.00", false},
		{"#,##0", false},
		{"yyyy-mm-dd", true},
		{"d/m/yy h:mm", true},
		{"hh:mm:ss AM/PM", true},
		{`"Total "0`, false},
	}

	for _, tt := range tests {
		if got := IsDateCode(tt.code); got != tt.expected {
			t.Errorf("IsDateCode(%q) = %v, expected %v", tt.code, got, tt.expected)
		}
	}
}

func TestEmptyTable(t *testing.T) {
	table, err := Load(nil)
	if err != nil {
		t.Fatalf("Load(nil) failed: %v", err)
	}
	if applies, id := table.NumberFormatFor(0); applies || id != 0 {
		t.Errorf("NumberFormatFor(0) = (%v, %d), expected (false, 0)", applies, id)
	}
	if name := table.StyleNameFor(0); name != DefaultStyleName {
		t.Errorf("StyleNameFor(0) = %q, expected %q", name, DefaultStyleName)
	}
}
