// Package address converts between 1-based (row, column) pairs and A1-style
// cell references.
package address

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// MaxRows is the number of rows a worksheet can hold.
	MaxRows = 1048576
	// MaxColumns is the number of columns a worksheet can hold (XFD).
	MaxColumns = 16384
)

// ErrInvalidAddress indicates a character that cannot appear in a cell reference.
var ErrInvalidAddress = errors.New("invalid cell address")

// ColumnLetters converts a 1-based column number to its letter code.
// Column 1 is "A", 26 is "Z" and 27 is "AA". n must be at least 1.
func ColumnLetters(n int) string {
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// Of returns the A1-style reference for a 1-based row and column.
func Of(row, col int) string {
	return ColumnLetters(col) + strconv.Itoa(row)
}

// Parse reads an A1-style reference and returns the zero-based row and column.
//
// Digits accumulate into the row and uppercase letters into the column, in
// whatever order they appear, so "1A" parses the same as "A1". Any other
// character, including '$', is an error, as is a row or column past the
// edge of the sheet.
func Parse(text string) (row, col int, err error) {
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= '0' && ch <= '9':
			row = row*10 + int(ch-'0')
			if row > MaxRows {
				return 0, 0, fmt.Errorf("%w: row beyond %d in cell ref %q", ErrInvalidAddress, MaxRows, text)
			}
		case ch >= 'A' && ch <= 'Z':
			col = col*26 + int(ch-'A'+1)
			if col > MaxColumns {
				return 0, 0, fmt.Errorf("%w: column beyond XFD in cell ref %q", ErrInvalidAddress, text)
			}
		default:
			return 0, 0, fmt.Errorf("%w: character %q in cell ref %q", ErrInvalidAddress, ch, text)
		}
	}
	return row - 1, col - 1, nil
}

// InBounds reports whether a zero-based position lies on the worksheet grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < MaxRows && col >= 0 && col < MaxColumns
}
