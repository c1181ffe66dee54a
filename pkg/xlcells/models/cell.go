// Package models defines data structures for decoded worksheet cells.
package models

import "time"

// DataType tags which value slot of a DecodedCell is populated.
type DataType string

const (
	TypeBlank     DataType = "blank"
	TypeNumeric   DataType = "numeric"
	TypeDate      DataType = "date"
	TypeCharacter DataType = "character"
	TypeLogical   DataType = "logical"
	TypeError     DataType = "error"
	TypeUnknown   DataType = "unknown"
	// TypeDateISO8601 marks t="d" cells. Their value is not parsed.
	TypeDateISO8601 DataType = "date (ISO8601)"
)

// TextRun is one run of a rich text string with its character formatting.
// Nil pointers and empty strings mean the property was not set on the run.
type TextRun struct {
	Text         string   `json:"text"`
	Bold         bool     `json:"bold,omitempty"`
	Italic       bool     `json:"italic,omitempty"`
	Underline    string   `json:"underline,omitempty"`
	Strike       bool     `json:"strike,omitempty"`
	VertAlign    string   `json:"vert_align,omitempty"`
	Size         *float64 `json:"size,omitempty"`
	ColorRGB     string   `json:"color_rgb,omitempty"`
	ColorTheme   *int     `json:"color_theme,omitempty"`
	ColorIndexed *int     `json:"color_indexed,omitempty"`
	ColorTint    *float64 `json:"color_tint,omitempty"`
	Font         string   `json:"font,omitempty"`
	Family       *int     `json:"family,omitempty"`
	Scheme       string   `json:"scheme,omitempty"`
}

// DecodedCell is one row of the output table.
type DecodedCell struct {
	// Sheet is the worksheet name.
	Sheet string `json:"sheet"`
	// Address is the A1-style reference, as written in the file when present.
	Address string `json:"address"`
	// Row is the 1-based row number.
	Row int `json:"row"`
	// Col is the 1-based column number.
	Col int `json:"col"`
	// IsBlank is set for cells without a value.
	IsBlank bool `json:"is_blank"`
	// DataType selects the populated value slot.
	DataType DataType `json:"data_type"`
	// Content is the unparsed text of the value element.
	Content *string `json:"content"`
	// Numeric is set for TypeNumeric.
	Numeric *float64 `json:"numeric"`
	// Date is set for TypeDate.
	Date *time.Time `json:"date"`
	// Logical is set for TypeLogical.
	Logical *bool `json:"logical"`
	// Character is set for TypeCharacter.
	Character *string `json:"character"`
	// CharacterFormatted holds the runs of inline and shared strings. A plain
	// string is one run without formatting; "str" formula results have none.
	CharacterFormatted []TextRun `json:"character_formatted"`
	// Error is the error code (e.g. "#DIV/0!") for TypeError.
	Error *string `json:"error"`
	// Formula is the formula text, translated for shared formula members.
	Formula *string `json:"formula"`
	// IsArray is set for array formulas.
	IsArray bool `json:"is_array"`
	// FormulaRef is the range the formula applies to, if given.
	FormulaRef *string `json:"formula_ref"`
	// FormulaGroup is the shared formula group id, if any.
	FormulaGroup *int `json:"formula_group"`
	// Comment is the text of the comment attached to the cell.
	Comment *string `json:"comment"`
	// Height is the row height in points.
	Height float64 `json:"height"`
	// Width is the column width in characters.
	Width float64 `json:"width"`
	// RowOutlineLevel is the row outline level plus one.
	RowOutlineLevel int `json:"row_outline_level"`
	// ColOutlineLevel is the column outline level plus one.
	ColOutlineLevel int `json:"col_outline_level"`
	// StyleFormat is the name of the cell style the cell inherits from.
	StyleFormat string `json:"style_format"`
	// LocalFormatID is the 1-based index of the cell's own format record.
	LocalFormatID int `json:"local_format_id"`
}

// IsFormatted reports whether the cell carries any text runs. It is true for
// every inline or shared string, plain ones included, and false for "str"
// formula results and non-string cells.
func (c *DecodedCell) IsFormatted() bool {
	return len(c.CharacterFormatted) > 0
}
