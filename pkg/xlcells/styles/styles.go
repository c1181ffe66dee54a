// Package styles reads the parts of styles.xml that decide number formats and
// style names, and classifies number formats as dates.
package styles

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
	"github.com/xuri/nfp"
)

// DefaultStyleName is reported for cells whose style has no named cell style.
const DefaultStyleName = "Normal"

// xf is one record of cellXfs or cellStyleXfs.
type xf struct {
	numFmtID          int
	applyNumberFormat bool
	xfID              int
}

// Table is a parsed style sheet.
type Table struct {
	cellXfs      []xf
	cellStyleXfs []xf
	styleNames   map[int]string
	dateFormats  map[int]bool
}

// Load parses styles.xml. A nil or empty part yields an empty table, under
// which every cell is "Normal" with the General number format.
func Load(data []byte) (*Table, error) {
	t := &Table{
		styleNames:  make(map[int]string),
		dateFormats: make(map[int]bool),
	}
	if len(data) == 0 {
		return t, nil
	}

	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("styles: %w", err)
	}
	styleSheet := root.FirstChild("styleSheet")

	for n := styleSheet.Path("numFmts", "numFmt"); n != nil; n = n.NextSibling("numFmt") {
		id, ok := intAttr(n, "numFmtId")
		if !ok {
			continue
		}
		code, _ := n.Attr("formatCode")
		t.dateFormats[id] = IsDateCode(code)
	}

	t.cellStyleXfs = readXfs(styleSheet.FirstChild("cellStyleXfs"))
	t.cellXfs = readXfs(styleSheet.FirstChild("cellXfs"))

	for n := styleSheet.Path("cellStyles", "cellStyle"); n != nil; n = n.NextSibling("cellStyle") {
		id, ok := intAttr(n, "xfId")
		if !ok {
			continue
		}
		name, _ := n.Attr("name")
		t.styleNames[id] = name
	}

	return t, nil
}

func readXfs(parent *xmltree.Node) []xf {
	var out []xf
	for n := parent.FirstChild("xf"); n != nil; n = n.NextSibling("xf") {
		rec := xf{}
		rec.numFmtID, _ = intAttr(n, "numFmtId")
		rec.xfID, _ = intAttr(n, "xfId")
		if v, ok := n.Attr("applyNumberFormat"); ok {
			rec.applyNumberFormat = v == "1" || v == "true"
		}
		out = append(out, rec)
	}
	return out
}

func intAttr(n *xmltree.Node, name string) (int, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// NumberFormatFor returns the number format of cell format i and whether the
// format record says to apply it.
func (t *Table) NumberFormatFor(i int) (bool, int) {
	if i < 0 || i >= len(t.cellXfs) {
		return false, 0
	}
	return t.cellXfs[i].applyNumberFormat, t.cellXfs[i].numFmtID
}

// InheritedNumberFormatFor returns the number format of the cell style that
// cell format i inherits from.
func (t *Table) InheritedNumberFormatFor(i int) int {
	if i < 0 || i >= len(t.cellXfs) {
		return 0
	}
	parent := t.cellXfs[i].xfID
	if parent < 0 || parent >= len(t.cellStyleXfs) {
		return 0
	}
	return t.cellStyleXfs[parent].numFmtID
}

// StyleNameFor returns the name of the cell style that cell format i inherits from.
func (t *Table) StyleNameFor(i int) string {
	parent := 0
	if i >= 0 && i < len(t.cellXfs) {
		parent = t.cellXfs[i].xfID
	}
	if name, ok := t.styleNames[parent]; ok && name != "" {
		return name
	}
	return DefaultStyleName
}

// IsDateFormat reports whether number format id renders a date or time.
// Custom formats are classified once when the table is loaded.
func (t *Table) IsDateFormat(id int) bool {
	if isDate, ok := t.dateFormats[id]; ok {
		return isDate
	}
	return IsBuiltInDate(id)
}

// IsBuiltInDate reports whether a built-in number format id is a date or time format.
func IsBuiltInDate(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// IsDateCode reports whether a number format code contains date or time
// placeholders outside of literals.
func IsDateCode(code string) bool {
	p := nfp.NumberFormatParser()
	for _, section := range p.Parse(code) {
		for _, token := range section.Items {
			switch token.TType {
			case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
				return true
			}
		}
	}
	return false
}
