package sheet

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/address"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
)

const (
	// DefaultColWidth applies when <sheetFormatPr> gives no defaultColWidth.
	DefaultColWidth = 8.38
	// DefaultRowHeight applies when <sheetFormatPr> gives no defaultRowHeight.
	DefaultRowHeight = 15.0
	// DefaultOutlineLevel is outline level 0, stored plus one.
	DefaultOutlineLevel = 1
)

// Cascade holds the width and outline level of every column and the height
// and outline level of every row of a sheet. Outline levels are stored plus
// one.
//
// The row arrays cover the whole grid and are only held while a sheet is
// being decoded: they are allocated by the first SetRow or allocRows and
// dropped by releaseRows. Without them every row reports the defaults.
type Cascade struct {
	DefaultColWidth  float64
	DefaultRowHeight float64

	colWidths   []float64
	colOutlines []uint8
	rowHeights  []float64
	rowOutlines []uint8
}

// NewCascade reads <sheetFormatPr> and <cols> from a worksheet element. Row
// attributes are applied later, row by row, with SetRow; no row storage is
// allocated here.
func NewCascade(worksheet *xmltree.Node) (*Cascade, error) {
	c := &Cascade{
		DefaultColWidth:  DefaultColWidth,
		DefaultRowHeight: DefaultRowHeight,
	}

	if pr := worksheet.FirstChild("sheetFormatPr"); pr != nil {
		if v, ok := pr.Attr("defaultRowHeight"); ok {
			h, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: defaultRowHeight %q", ErrMalformedSheet, v)
			}
			c.DefaultRowHeight = h
		}
		if v, ok := pr.Attr("defaultColWidth"); ok {
			w, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: defaultColWidth %q", ErrMalformedSheet, v)
			}
			c.DefaultColWidth = w
		}
	}

	c.colWidths = filled(address.MaxColumns, c.DefaultColWidth)
	c.colOutlines = filledLevels(address.MaxColumns)

	for col := worksheet.Path("cols", "col"); col != nil; col = col.NextSibling("col") {
		if err := c.setCols(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// setCols applies one <col min max> range. Later ranges overwrite earlier ones.
func (c *Cascade) setCols(col *xmltree.Node) error {
	lo, err := intAttr(col, "min")
	if err != nil {
		return err
	}
	hi, err := intAttr(col, "max")
	if err != nil {
		return err
	}
	if hi > address.MaxColumns {
		hi = address.MaxColumns
	}
	if lo < 1 || lo > hi {
		return fmt.Errorf("%w: col range %d..%d", ErrMalformedSheet, lo, hi)
	}

	if v, ok := col.Attr("width"); ok {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: col width %q", ErrMalformedSheet, v)
		}
		for i := lo; i <= hi; i++ {
			c.colWidths[i-1] = w
		}
	}
	if v, ok := col.Attr("outlineLevel"); ok {
		level, err := parseOutlineLevel(v)
		if err != nil {
			return err
		}
		for i := lo; i <= hi; i++ {
			c.colOutlines[i-1] = level
		}
	}
	return nil
}

// SetRow applies the ht and outlineLevel attributes of a <row> element to
// zero-based row.
func (c *Cascade) SetRow(row int, node *xmltree.Node) error {
	if row < 0 || row >= address.MaxRows {
		return fmt.Errorf("%w: row %d out of range", ErrMalformedSheet, row+1)
	}
	c.allocRows()
	if v, ok := node.Attr("ht"); ok {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: row height %q", ErrMalformedSheet, v)
		}
		c.rowHeights[row] = h
	}
	if v, ok := node.Attr("outlineLevel"); ok {
		level, err := parseOutlineLevel(v)
		if err != nil {
			return err
		}
		c.rowOutlines[row] = level
	}
	return nil
}

// Row returns the height and stored outline level of zero-based row.
func (c *Cascade) Row(row int) (float64, int) {
	if c.rowHeights == nil {
		return c.DefaultRowHeight, DefaultOutlineLevel
	}
	return c.rowHeights[row], int(c.rowOutlines[row])
}

// allocRows sets up the row arrays if they are not held already.
func (c *Cascade) allocRows() {
	if c.rowHeights != nil {
		return
	}
	c.rowHeights = filled(address.MaxRows, c.DefaultRowHeight)
	c.rowOutlines = filledLevels(address.MaxRows)
}

// releaseRows drops the row arrays. Row reports the defaults afterwards.
func (c *Cascade) releaseRows() {
	c.rowHeights = nil
	c.rowOutlines = nil
}

// Col returns the width and stored outline level of zero-based column.
func (c *Cascade) Col(col int) (float64, int) {
	return c.colWidths[col], int(c.colOutlines[col])
}

func parseOutlineLevel(v string) (uint8, error) {
	level, err := strconv.ParseUint(v, 10, 8)
	if err != nil || level >= 255 {
		return 0, fmt.Errorf("%w: outlineLevel %q", ErrMalformedSheet, v)
	}
	return uint8(level) + 1, nil
}

func intAttr(n *xmltree.Node, name string) (int, error) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%w: <%s> missing %s", ErrMalformedSheet, n.Name, name)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: <%s %s=%q>", ErrMalformedSheet, n.Name, name, v)
	}
	return i, nil
}

func filled(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func filledLevels(n int) []uint8 {
	s := make([]uint8, n)
	for i := range s {
		s[i] = DefaultOutlineLevel
	}
	return s
}
