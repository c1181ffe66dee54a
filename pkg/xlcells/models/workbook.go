package models

// WorkbookCells represents workbook-level container with per-sheet cells.
type WorkbookCells struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Date1904 reports whether the workbook uses the 1904 date system.
	Date1904 bool `json:"date_1904"`
	// Sheets holds the decoded sheets in workbook order. Their Cells slices
	// share one backing array.
	Sheets []SheetCells `json:"sheets"`
}

// Cells returns every decoded cell of the workbook as one flat table.
func (w *WorkbookCells) Cells() []DecodedCell {
	n := 0
	for _, s := range w.Sheets {
		n += len(s.Cells)
	}
	out := make([]DecodedCell, 0, n)
	for _, s := range w.Sheets {
		out = append(out, s.Cells...)
	}
	return out
}
