package sheet

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/address"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
)

// cursor tracks the zero-based position of the row and cell being read.
// Count and Decode both walk the sheet with it, so they always agree on
// where each <c> lands.
//
// A <row r> or <c r> moves the cursor; otherwise each <c> sits one column to
// the right of the previous one and each <row> one below the previous one.
type cursor struct {
	row int
	col int
}

// beginRow positions the cursor at the start of a <row>.
func (c *cursor) beginRow(row *xmltree.Node) error {
	if v, ok := row.Attr("r"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > address.MaxRows {
			return fmt.Errorf("%w: row number %q", ErrMalformedSheet, v)
		}
		c.row = n - 1
	}
	c.col = 0
	if c.row >= address.MaxRows {
		return fmt.Errorf("%w: more than %d rows", ErrMalformedSheet, address.MaxRows)
	}
	return nil
}

// locate positions the cursor at a <c> and returns its address: the r
// attribute as written, or one built from the cursor.
func (c *cursor) locate(cell *xmltree.Node) (string, error) {
	if ref, ok := cell.Attr("r"); ok {
		row, col, err := address.Parse(ref)
		if err != nil {
			return ref, fmt.Errorf("%w: %w", ErrMalformedSheet, err)
		}
		if !address.InBounds(row, col) {
			return ref, fmt.Errorf("%w: cell %q outside the sheet", ErrMalformedSheet, ref)
		}
		c.row, c.col = row, col
		return ref, nil
	}
	if !address.InBounds(c.row, c.col) {
		return "", fmt.Errorf("%w: implicit cell past row %d column %d", ErrMalformedSheet, c.row+1, c.col+1)
	}
	return address.Of(c.row+1, c.col+1), nil
}

// nextCell moves one column right. It runs for every <c>, emitted or not.
func (c *cursor) nextCell() {
	c.col++
}

// endRow moves one row down.
func (c *cursor) endRow() {
	c.row++
}

// hasContent reports whether a <c> carries a value, formula or inline string.
func hasContent(cell *xmltree.Node) bool {
	for _, child := range cell.Children {
		switch child.Name {
		case "v", "f", "is":
			return true
		}
	}
	return false
}
