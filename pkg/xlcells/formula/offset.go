package formula

import (
	"strconv"
	"strings"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/address"
	"github.com/xuri/efp"
)

const refError = "#REF!"

// Shift moves every relative cell reference in formula by (dRow, dCol), the
// way Excel adjusts a formula that is filled or copied. Components fixed
// with '$' stay put, and everything that is not a reference is copied as is.
// A reference pushed off the grid becomes #REF!.
func Shift(formula string, dRow, dCol int) string {
	if dRow == 0 && dCol == 0 {
		return formula
	}

	src := formula
	prefixed := !strings.HasPrefix(formula, "=")
	if prefixed {
		src = "=" + formula
	}

	ps := efp.ExcelParser()
	tokens := ps.Parse(src)

	var sb strings.Builder
	written, search := 0, 0
	for _, token := range tokens {
		if token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeText {
			if end := skipStringLiteral(src, search); end > 0 {
				search = end
			}
			continue
		}
		if token.TValue == "" {
			continue
		}

		idx, n := locate(src[search:], token.TValue)
		if idx < 0 {
			continue
		}
		idx += search
		search = idx + n

		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		sb.WriteString(src[written:idx])
		sb.WriteString(shiftReference(src[idx:search], dRow, dCol))
		written = search
	}
	sb.WriteString(src[written:])

	out := sb.String()
	if prefixed {
		out = out[1:]
	}
	return out
}

// locate finds a token in s and returns its offset and length in s. The
// tokenizer drops the quotes around sheet names such as 'My Sheet'!A1, so a
// sheet-qualified value is also tried in its quoted form.
func locate(s, value string) (int, int) {
	if idx := strings.Index(s, value); idx >= 0 {
		return idx, len(value)
	}
	i := strings.LastIndex(value, "!")
	if i <= 0 {
		return -1, 0
	}
	quoted := "'" + strings.ReplaceAll(value[:i], "'", "''") + "'" + value[i:]
	if idx := strings.Index(s, quoted); idx >= 0 {
		return idx, len(quoted)
	}
	return -1, 0
}

// skipStringLiteral returns the offset just past the first double-quoted
// literal at or after from, or -1 if there is none.
func skipStringLiteral(s string, from int) int {
	start := strings.IndexByte(s[from:], '"')
	if start < 0 {
		return -1
	}
	for i := from + start + 1; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '"' {
			i++
			continue
		}
		return i + 1
	}
	return -1
}

// shiftReference shifts a possibly sheet-qualified reference or range.
func shiftReference(ref string, dRow, dCol int) string {
	var sheet string
	body := ref
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		sheet, body = ref[:i+1], ref[i+1:]
	}

	parts := strings.Split(body, ":")
	shifted := make([]string, len(parts))
	for i, part := range parts {
		p, ok := parsePart(part)
		if !ok || (len(parts) == 1 && (!p.hasCol || !p.hasRow)) {
			// Defined names, structured references and the like.
			return ref
		}
		if !p.shift(dRow, dCol) {
			return sheet + refError
		}
		shifted[i] = p.String()
	}
	return sheet + strings.Join(shifted, ":")
}

// refPart is one end of a reference: a cell, a whole column or a whole row.
type refPart struct {
	col, row       int
	colAbs, rowAbs bool
	hasCol, hasRow bool
}

func parsePart(s string) (refPart, bool) {
	var p refPart
	i := 0
	if i < len(s) && s[i] == '$' {
		p.colAbs = true
		i++
	}
	start := i
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		p.col = p.col*26 + int(s[i]-'A'+1)
		i++
	}
	p.hasCol = i > start
	if !p.hasCol {
		// A row-only part carries its '$' in front of the digits.
		p.rowAbs, p.colAbs = p.colAbs, false
	} else if i-start > 3 {
		return p, false
	}

	if p.hasCol && i < len(s) && s[i] == '$' {
		p.rowAbs = true
		i++
	}
	start = i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		p.row = p.row*10 + int(s[i]-'0')
		i++
		if p.row > address.MaxRows {
			return p, false
		}
	}
	p.hasRow = i > start

	if i != len(s) || (!p.hasCol && !p.hasRow) {
		return p, false
	}
	if p.hasCol && p.col > address.MaxColumns {
		return p, false
	}
	if p.hasRow && p.row < 1 {
		return p, false
	}
	return p, true
}

// shift moves the relative components and reports whether the result is
// still on the grid.
func (p *refPart) shift(dRow, dCol int) bool {
	if p.hasCol && !p.colAbs {
		p.col += dCol
		if p.col < 1 || p.col > address.MaxColumns {
			return false
		}
	}
	if p.hasRow && !p.rowAbs {
		p.row += dRow
		if p.row < 1 || p.row > address.MaxRows {
			return false
		}
	}
	return true
}

func (p refPart) String() string {
	var sb strings.Builder
	if p.hasCol {
		if p.colAbs {
			sb.WriteByte('$')
		}
		sb.WriteString(address.ColumnLetters(p.col))
	}
	if p.hasRow {
		if p.rowAbs {
			sb.WriteByte('$')
		}
		sb.WriteString(strconv.Itoa(p.row))
	}
	return sb.String()
}
