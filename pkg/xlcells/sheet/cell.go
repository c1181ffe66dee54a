package sheet

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/richtext"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
)

// decodeCell fills dst from one <c> at zero-based (row, col).
func (s *Sheet) decodeCell(dst *models.DecodedCell, c *xmltree.Node, ref string, row, col int, book Book) error {
	*dst = models.DecodedCell{
		Sheet:   s.name,
		Address: ref,
		Row:     row + 1,
		Col:     col + 1,
	}
	dst.Height, dst.RowOutlineLevel = s.cascade.Row(row)
	dst.Width, dst.ColOutlineLevel = s.cascade.Col(col)

	styleIndex := 0
	if v, ok := c.Attr("s"); ok {
		i, err := strconv.Atoi(v)
		if err != nil || i < 0 {
			return fmt.Errorf("%w: style index %q", ErrMalformedSheet, v)
		}
		styleIndex = i
	}
	dst.LocalFormatID = styleIndex + 1
	dst.StyleFormat = book.Styles.StyleNameFor(styleIndex)

	if text, ok := s.comments.Take(ref); ok {
		dst.Comment = &text
	}

	if err := s.decodeValue(dst, c, styleIndex, book); err != nil {
		return err
	}
	return s.decodeFormula(dst, c.FirstChild("f"), row, col)
}

// decodeValue classifies the cell by its t attribute and fills the matching
// value slot.
func (s *Sheet) decodeValue(dst *models.DecodedCell, c *xmltree.Node, styleIndex int, book Book) error {
	t, _ := c.Attr("t")
	v := c.FirstChild("v")
	if v != nil {
		raw := v.Text()
		dst.Content = &raw
	}

	if t == "inlineStr" {
		dst.DataType = models.TypeCharacter
		if is := c.FirstChild("is"); is != nil {
			text := richtext.Plain(is)
			dst.Character = &text
			dst.CharacterFormatted = richtext.Runs(is)
		}
		return nil
	}
	if v == nil {
		dst.IsBlank = true
		dst.DataType = models.TypeBlank
		return nil
	}

	raw := *dst.Content
	switch t {
	case "", "n":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: numeric value %q", ErrMalformedSheet, raw)
		}
		if !s.isDate(styleIndex, book) {
			dst.DataType = models.TypeNumeric
			dst.Numeric = &f
			return nil
		}
		tm, err := book.ConvertDate(f, book.DateSystem, s.label(dst.Address))
		if err != nil {
			return err
		}
		dst.DataType = models.TypeDate
		dst.Date = &tm
	case "s":
		i, err := strconv.Atoi(raw)
		if err != nil || i < 0 {
			return fmt.Errorf("%w: shared string index %q", ErrMalformedSheet, raw)
		}
		text, runs, err := book.Strings.StringAt(i)
		if err != nil {
			return err
		}
		dst.DataType = models.TypeCharacter
		dst.Character = &text
		dst.CharacterFormatted = runs
	case "str":
		text := raw
		dst.DataType = models.TypeCharacter
		dst.Character = &text
	case "b":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: boolean value %q", ErrMalformedSheet, raw)
		}
		b := f != 0
		dst.DataType = models.TypeLogical
		dst.Logical = &b
	case "e":
		code := raw
		dst.DataType = models.TypeError
		dst.Error = &code
	case "d":
		dst.DataType = models.TypeDateISO8601
	default:
		dst.DataType = models.TypeUnknown
	}
	return nil
}

// isDate applies the cell format's own number format when it says to,
// otherwise the number format of its parent cell style.
func (s *Sheet) isDate(styleIndex int, book Book) bool {
	applies, id := book.Styles.NumberFormatFor(styleIndex)
	if applies {
		return book.Styles.IsDateFormat(id)
	}
	return book.Styles.IsDateFormat(book.Styles.InheritedNumberFormatFor(styleIndex))
}

// decodeFormula records the <f> element. A shared formula with text defines
// its group; one without text inherits the group's formula, moved to this cell.
func (s *Sheet) decodeFormula(dst *models.DecodedCell, f *xmltree.Node, row, col int) error {
	if f == nil {
		return nil
	}
	text := f.Text()
	dst.Formula = &text

	if t, _ := f.Attr("t"); t == "array" {
		dst.IsArray = true
	}
	if ref, ok := f.Attr("ref"); ok {
		dst.FormulaRef = &ref
	}

	si, ok := f.Attr("si")
	if !ok {
		return nil
	}
	id, err := strconv.Atoi(si)
	if err != nil {
		return fmt.Errorf("%w: shared formula index %q", ErrMalformedSheet, si)
	}
	dst.FormulaGroup = &id

	if text != "" {
		s.formulas.Define(id, text, row+1, col+1)
		return nil
	}
	translated, err := s.formulas.Translate(id, row+1, col+1)
	if err != nil {
		return err
	}
	dst.Formula = &translated
	return nil
}

// label names a cell for error messages, e.g. 'Sheet1'!A1.
func (s *Sheet) label(ref string) string {
	return "'" + s.name + "'!" + ref
}
