package sheet

import (
	"context"
	"fmt"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/address"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/styles"
)

// Decode writes the sheet's rows into out and returns how many it wrote.
// out must hold at least Count slots; Count runs first if it has not yet.
//
// Cells appear in document order, followed by one blank row per comment
// whose cell was not emitted, in ascending address string order.
//
// Decode checks ctx every pollInterval cells and returns ctx.Err() when it
// is done. A Sheet can be decoded once. Row storage for the sheet is held
// only for the duration of the call.
func (s *Sheet) Decode(ctx context.Context, book Book, out []models.DecodedCell) (int, error) {
	if s.decoded {
		return 0, ErrAlreadyDecoded
	}
	if !s.counted {
		if _, err := s.Count(ctx); err != nil {
			return 0, err
		}
	}
	if len(out) < s.count {
		return 0, fmt.Errorf("sheet %q: %w: %d slots for %d cells", s.name, ErrOutputTooSmall, len(out), s.count)
	}
	s.decoded = true
	book = book.withDefaults()
	s.cascade.allocRows()
	defer s.cascade.releaseRows()

	var (
		cur     cursor
		visited int
		n       int
	)
	for row := s.sheetData.FirstChild("row"); row != nil; row = row.NextSibling("row") {
		if err := cur.beginRow(row); err != nil {
			return n, s.wrap("", err)
		}
		if err := s.cascade.SetRow(cur.row, row); err != nil {
			return n, s.wrap("", err)
		}
		for c := row.FirstChild("c"); c != nil; c = c.NextSibling("c") {
			visited++
			if visited%pollInterval == 0 {
				if err := ctx.Err(); err != nil {
					return n, err
				}
			}
			ref, err := cur.locate(c)
			if err != nil {
				return n, s.wrap(ref, err)
			}
			if s.emits(c) {
				if err := s.decodeCell(&out[n], c, ref, cur.row, cur.col, book); err != nil {
					return n, s.wrap(ref, err)
				}
				n++
			}
			cur.nextCell()
		}
		cur.endRow()
	}

	for _, e := range s.comments.Remaining() {
		if err := s.orphan(&out[n], e.Address, e.Text); err != nil {
			return n, s.wrap(e.Address, err)
		}
		s.comments.Take(e.Address)
		n++
	}
	return n, nil
}

// orphan fills dst with a blank cell carrying a comment whose cell has no
// entry in the sheet data.
func (s *Sheet) orphan(dst *models.DecodedCell, ref, text string) error {
	row, col, err := address.Parse(ref)
	if err != nil {
		return err
	}
	if !address.InBounds(row, col) {
		return fmt.Errorf("%w: comment on %q outside the sheet", ErrMalformedSheet, ref)
	}
	*dst = models.DecodedCell{
		Sheet:         s.name,
		Address:       ref,
		Row:           row + 1,
		Col:           col + 1,
		IsBlank:       true,
		DataType:      models.TypeBlank,
		Comment:       &text,
		StyleFormat:   styles.DefaultStyleName,
		LocalFormatID: 1,
	}
	dst.Height, dst.RowOutlineLevel = s.cascade.Row(row)
	dst.Width, dst.ColOutlineLevel = s.cascade.Col(col)
	return nil
}
