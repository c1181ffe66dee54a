package parser

import (
	"testing"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
)

func TestDetectBounds(t *testing.T) {
	tests := []struct {
		name     string
		cells    []models.DecodedCell
		expected string
	}{
		{"empty", nil, ""},
		{"only blank", []models.DecodedCell{{Row: 5, Col: 3, IsBlank: true}}, ""},
		{"single", []models.DecodedCell{{Row: 2, Col: 2}}, "B2"},
		{
			"spread",
			[]models.DecodedCell{
				{Row: 3, Col: 2},
				{Row: 10, Col: 4},
				{Row: 1, Col: 30, IsBlank: true},
				{Row: 2, Col: 3},
			},
			"B2:D10",
		},
	}

	for _, tt := range tests {
		result := DetectBounds(tt.cells)
		if result != tt.expected {
			t.Errorf("DetectBounds(%s) = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}
