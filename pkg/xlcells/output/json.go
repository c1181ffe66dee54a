// Package output serializes decoded cells as JSON or CSV.
package output

import (
	"encoding/json"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
)

// ToJSON serializes a workbook's decoded cells.
func ToJSON(wb *models.WorkbookCells, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes one sheet's decoded cells.
func SheetToJSON(sheet *models.SheetCells, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// CellsToJSON serializes a flat cell table as a JSON array.
func CellsToJSON(cells []models.DecodedCell, pretty bool) ([]byte, error) {
	if cells == nil {
		cells = []models.DecodedCell{}
	}
	return marshal(cells, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
