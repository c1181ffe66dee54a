// Package comments holds the comments of one sheet keyed by cell address.
package comments

import (
	"fmt"
	"sort"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/richtext"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
)

// Entry is a comment and the address it is anchored to.
type Entry struct {
	Address string
	Text    string
}

// Table maps addresses to comment text. Entries are taken out as cells claim
// them; whatever is left afterwards belongs to cells that do not exist in the
// sheet data. A Table is owned by a single sheet decode.
type Table struct {
	entries map[string]string
}

// New returns a table holding a copy of entries.
func New(entries map[string]string) *Table {
	t := &Table{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// Load parses a comments part. A nil or empty part yields an empty table.
// When an address is commented twice the later comment wins.
func Load(data []byte) (*Table, error) {
	t := &Table{entries: make(map[string]string)}
	if len(data) == 0 {
		return t, nil
	}

	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}

	for c := root.Path("comments", "commentList", "comment"); c != nil; c = c.NextSibling("comment") {
		ref, ok := c.Attr("ref")
		if !ok {
			continue
		}
		t.entries[ref] = richtext.Plain(c.FirstChild("text"))
	}
	return t, nil
}

// Len returns the number of comments not yet taken.
func (t *Table) Len() int {
	return len(t.entries)
}

// Has reports whether a comment is anchored at address.
func (t *Table) Has(address string) bool {
	_, ok := t.entries[address]
	return ok
}

// Take removes and returns the comment at address.
func (t *Table) Take(address string) (string, bool) {
	text, ok := t.entries[address]
	if ok {
		delete(t.entries, address)
	}
	return text, ok
}

// Remaining returns the comments not yet taken, ordered by address string.
// The order is lexicographic, so "A10" comes before "A2".
func (t *Table) Remaining() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for address, text := range t.entries {
		out = append(out, Entry{Address: address, Text: text})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Address < out[j].Address
	})
	return out
}
