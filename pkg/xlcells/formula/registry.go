// Package formula keeps a sheet's shared formula definitions and translates
// them to the cells that reuse them.
package formula

import (
	"errors"
	"fmt"
)

// ErrUndefinedGroup indicates a cell inheriting from a shared formula group
// that no earlier cell defined.
var ErrUndefinedGroup = errors.New("shared formula group not defined")

// Entry is a shared formula as written at its anchor cell.
type Entry struct {
	// Row and Col are the 1-based anchor position.
	Row int
	Col int
	// Template is the formula text at the anchor.
	Template string
}

// Offset returns the template as it reads at (row, col), with relative
// references moved by the distance from the anchor.
func (e Entry) Offset(row, col int) string {
	return Shift(e.Template, row-e.Row, col-e.Col)
}

// Registry maps shared formula group ids to their definitions. A Registry
// belongs to one sheet decode and is not safe for concurrent use.
type Registry struct {
	entries map[int]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]Entry)}
}

// Define registers the formula for group id anchored at (row, col). A later
// definition of the same id replaces the earlier one.
func (r *Registry) Define(id int, template string, row, col int) {
	r.entries[id] = Entry{Row: row, Col: col, Template: template}
}

// Lookup returns the definition of group id.
func (r *Registry) Lookup(id int) (Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: si=%d", ErrUndefinedGroup, id)
	}
	return e, nil
}

// Translate returns group id's formula as it reads at (row, col).
func (r *Registry) Translate(id, row, col int) (string, error) {
	e, err := r.Lookup(id)
	if err != nil {
		return "", err
	}
	return e.Offset(row, col), nil
}

// Len returns the number of defined groups.
func (r *Registry) Len() int {
	return len(r.entries)
}
