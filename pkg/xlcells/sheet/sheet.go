// Package sheet decodes the cells of one worksheet into a flat table.
//
// Decoding runs in two passes over the same parsed XML. Count reports how
// many rows Decode will produce so that callers can size the output up
// front, then Decode fills exactly that many slots. Comments whose cells do
// not appear in the sheet data are emitted as blank cells after the rest.
package sheet

import (
	"fmt"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/comments"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/formula"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
)

// pollInterval is how many <c> elements are visited between cancellation checks.
const pollInterval = 1000

// Sheet is one parsed worksheet ready to be counted and decoded. A Sheet is
// not safe for concurrent use; distinct Sheets may be decoded in parallel.
type Sheet struct {
	name         string
	worksheet    *xmltree.Node
	sheetData    *xmltree.Node
	cascade      *Cascade
	comments     *comments.Table
	formulas     *formula.Registry
	includeBlank bool

	counted bool
	count   int
	decoded bool
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithComments attaches the sheet's comments. Without it the sheet has none.
func WithComments(t *comments.Table) Option {
	return func(s *Sheet) {
		if t != nil {
			s.comments = t
		}
	}
}

// WithBlankCells makes every <c> produce a row, including those without a
// value, formula or inline string.
func WithBlankCells(include bool) Option {
	return func(s *Sheet) {
		s.includeBlank = include
	}
}

// New parses worksheet XML and reads its column and default dimensions.
func New(name string, worksheetXML []byte, opts ...Option) (*Sheet, error) {
	root, err := xmltree.ParseBytes(worksheetXML)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	worksheet := root.FirstChild("worksheet")
	if worksheet == nil {
		return nil, fmt.Errorf("sheet %q: %w: no <worksheet> element", name, ErrMalformedSheet)
	}
	cascade, err := NewCascade(worksheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}

	s := &Sheet{
		name:      name,
		worksheet: worksheet,
		sheetData: worksheet.FirstChild("sheetData"),
		cascade:   cascade,
		comments:  comments.New(nil),
		formulas:  formula.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name returns the worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Dimension returns the ref of the <dimension> element, if any.
func (s *Sheet) Dimension() string {
	ref, _ := s.worksheet.FirstChild("dimension").Attr("ref")
	return ref
}

// emits reports whether a <c> produces an output row.
func (s *Sheet) emits(cell *xmltree.Node) bool {
	return s.includeBlank || hasContent(cell)
}

// wrap ties err to a cell, or to the sheet when ref is empty.
func (s *Sheet) wrap(ref string, err error) error {
	if ref == "" {
		return fmt.Errorf("sheet %q: %w", s.name, err)
	}
	return &CellError{Sheet: s.name, Address: ref, Err: err}
}
