package sheet

import "context"

// Count returns the number of rows Decode will produce: one per emitted cell
// plus one per comment on a cell that is not emitted.
func (s *Sheet) Count(ctx context.Context) (int, error) {
	var (
		cur     cursor
		visited int
		cells   int
		matched = make(map[string]struct{})
	)

	for row := s.sheetData.FirstChild("row"); row != nil; row = row.NextSibling("row") {
		if err := cur.beginRow(row); err != nil {
			return 0, s.wrap("", err)
		}
		for c := row.FirstChild("c"); c != nil; c = c.NextSibling("c") {
			visited++
			if visited%pollInterval == 0 {
				if err := ctx.Err(); err != nil {
					return 0, err
				}
			}
			ref, err := cur.locate(c)
			if err != nil {
				return 0, s.wrap(ref, err)
			}
			if s.emits(c) {
				cells++
				if s.comments.Has(ref) {
					matched[ref] = struct{}{}
				}
			}
			cur.nextCell()
		}
		cur.endRow()
	}

	s.counted = true
	s.count = cells + s.comments.Len() - len(matched)
	return s.count, nil
}
