// Package sharedstrings loads the workbook's shared string table.
package sharedstrings

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/richtext"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
)

// ErrIndexOutOfRange indicates a cell referring past the end of the table.
var ErrIndexOutOfRange = errors.New("shared string index out of range")

// Table holds the plain text and formatted runs of every <si> entry.
type Table struct {
	plain []string
	runs  [][]models.TextRun
}

// Load parses sharedStrings.xml. A nil or empty part yields an empty table.
func Load(data []byte) (*Table, error) {
	t := &Table{}
	if len(data) == 0 {
		return t, nil
	}

	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("shared strings: %w", err)
	}

	for si := root.Path("sst", "si"); si != nil; si = si.NextSibling("si") {
		t.plain = append(t.plain, richtext.Plain(si))
		t.runs = append(t.runs, richtext.Runs(si))
	}
	return t, nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.plain)
}

// StringAt returns the plain text and formatted runs of entry i.
func (t *Table) StringAt(i int) (string, []models.TextRun, error) {
	if i < 0 || i >= len(t.plain) {
		return "", nil, fmt.Errorf("%w: %d (table has %d entries)", ErrIndexOutOfRange, i, len(t.plain))
	}
	return t.plain[i], t.runs[i], nil
}
