package formula

import "testing"

func TestShift(t *testing.T) {
	tests := []struct {
		formula    string
		dRow, dCol int
		expected   string
	}{
		{"=A1+B1", 1, 1, "=B2+C2"},
		{"A1+B1", 1, 1, "B2+C2"},
		{"$A$1", 5, 5, "$A$1"},
		{"$A1+A$1", 2, 3, "$A3+D$1"},
		{"SUM(A1:B2)", 1, 0, "SUM(A2:B3)"},
		{"SUM($A$1:B2)*2", 1, 1, "SUM($A$1:C3)*2"},
		{"Sheet2!A1", 1, 1, "Sheet2!B2"},
		{"'My Sheet'!$A1", 1, 1, "'My Sheet'!$A2"},
		{`"A1"&A1`, 0, 1, `"A1"&B1`},
		{`IF(A1="x""A1",B1,"C1")`, 1, 0, `IF(A2="x""A1",B2,"C1")`},
		{"SUM(A:A)", 0, 2, "SUM(C:C)"},
		{"A1", 0, 0, "A1"},
		{"A2*Rate", 3, 0, "A5*Rate"},
		{"TRUE", 1, 1, "TRUE"},
	}

	for _, tt := range tests {
		result := Shift(tt.formula, tt.dRow, tt.dCol)
		if result != tt.expected {
			t.Errorf("Shift(%q, %d, %d) = %q, expected %q",
				tt.formula, tt.dRow, tt.dCol, result, tt.expected)
		}
	}
}

func TestShiftOffGrid(t *testing.T) {
	tests := []struct {
		formula    string
		dRow, dCol int
		expected   string
	}{
		{"A1", -1, 0, "#REF!"},
		{"B2+A1", 0, -1, "A2+#REF!"},
		{"Data!A1", -1, -1, "Data!#REF!"},
		{"XFD1", 0, 1, "#REF!"},
	}

	for _, tt := range tests {
		result := Shift(tt.formula, tt.dRow, tt.dCol)
		if result != tt.expected {
			t.Errorf("Shift(%q, %d, %d) = %q, expected %q",
				tt.formula, tt.dRow, tt.dCol, result, tt.expected)
		}
	}
}

func TestShiftReference(t *testing.T) {
	tests := []struct {
		ref        string
		dRow, dCol int
		expected   string
	}{
		{"A1", 1, 1, "B2"},
		{"$A$1:B$2", 3, 3, "$A$1:E$2"},
		{"C:C", 0, -1, "B:B"},
		{"1:3", 2, 0, "3:5"},
		{"$1:$3", 2, 0, "$1:$3"},
		{"Sales", 1, 1, "Sales"},
		{"ABCD1", 1, 1, "ABCD1"},
		{"Table1[Amount]", 1, 1, "Table1[Amount]"},
	}

	for _, tt := range tests {
		result := shiftReference(tt.ref, tt.dRow, tt.dCol)
		if result != tt.expected {
			t.Errorf("shiftReference(%q, %d, %d) = %q, expected %q",
				tt.ref, tt.dRow, tt.dCol, result, tt.expected)
		}
	}
}
