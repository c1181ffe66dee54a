package models

// SheetCells represents the decoded cells of a single sheet.
type SheetCells struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Dimension is the range bounding the non-blank cells (e.g. "A1:D10").
	Dimension string `json:"dimension,omitempty"`
	// Cells are the decoded cells in document order, followed by cells
	// synthesized for comments on empty cells.
	Cells []DecodedCell `json:"cells"`
}
