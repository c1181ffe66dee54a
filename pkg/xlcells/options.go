// Package xlcells decodes the worksheets of an .xlsx workbook into a flat
// table of typed cells.
package xlcells

import (
	"io"
	"log"
	"runtime"
)

// Options configures extraction behavior.
type Options struct {
	// IncludeBlankCells emits a row for every <c> element, including cells
	// that have no value, formula or inline string.
	IncludeBlankCells bool
	// Sheets restricts extraction to the named sheets. If empty, every
	// worksheet is extracted.
	Sheets []string
	// Workers caps how many sheets decode at once.
	// If zero, defaults to GOMAXPROCS.
	Workers int
	// Logger receives notes about recoverable conditions.
	// If nil, nothing is logged.
	Logger *log.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeSheet returns whether the named sheet is selected.
func (o Options) ShouldIncludeSheet(name string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == name {
			return true
		}
	}
	return false
}

// WorkerLimit returns how many sheets may decode at once.
func (o Options) WorkerLimit() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard, "", 0)
}
