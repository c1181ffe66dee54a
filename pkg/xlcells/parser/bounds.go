package parser

import (
	"fmt"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"github.com/xuri/excelize/v2"
)

// DetectBounds returns the range (e.g. "B2:D10") bounding the non-blank
// cells, or "" when every cell is blank.
func DetectBounds(cells []models.DecodedCell) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(cells)
	if minRow < 0 {
		return ""
	}

	startCell, _ := excelize.CoordinatesToCellName(minCol, minRow)
	endCell, _ := excelize.CoordinatesToCellName(maxCol, maxRow)
	if startCell == endCell {
		return startCell
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the 1-based bounding box of non-blank cells.
func findDataBounds(cells []models.DecodedCell) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for _, c := range cells {
		if c.IsBlank {
			continue
		}
		if minRow < 0 || c.Row < minRow {
			minRow = c.Row
		}
		if maxRow < 0 || c.Row > maxRow {
			maxRow = c.Row
		}
		if minCol < 0 || c.Col < minCol {
			minCol = c.Col
		}
		if maxCol < 0 || c.Col > maxCol {
			maxCol = c.Col
		}
	}

	return
}
