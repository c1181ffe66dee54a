package sheet

import (
	"time"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/sharedstrings"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/styles"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xldate"
)

// StyleCascade answers the style questions the cell decoder asks, by cell
// format index (the cell's s attribute).
type StyleCascade interface {
	// NumberFormatFor returns the cell format's own number format and whether
	// the format says to apply it.
	NumberFormatFor(styleIndex int) (applies bool, formatID int)
	// InheritedNumberFormatFor returns the number format of the parent cell style.
	InheritedNumberFormatFor(styleIndex int) int
	// IsDateFormat reports whether a number format renders dates or times.
	IsDateFormat(formatID int) bool
	// StyleNameFor returns the name of the parent cell style.
	StyleNameFor(styleIndex int) string
}

// StringTable looks up shared strings.
type StringTable interface {
	StringAt(index int) (string, []models.TextRun, error)
}

// DateConverter turns a serial date into calendar time. label names the cell
// for error messages.
type DateConverter func(serial float64, system xldate.System, label string) (time.Time, error)

// Book carries the workbook-wide tables a sheet decode reads. Book is read
// only during decoding and may be shared by sheets decoding in parallel.
type Book struct {
	Styles      StyleCascade
	Strings     StringTable
	DateSystem  xldate.System
	ConvertDate DateConverter
}

// withDefaults fills unset collaborators with empty tables and the standard
// date conversion.
func (b Book) withDefaults() Book {
	if b.Styles == nil {
		b.Styles, _ = styles.Load(nil)
	}
	if b.Strings == nil {
		b.Strings, _ = sharedstrings.Load(nil)
	}
	if b.DateSystem == 0 {
		b.DateSystem = xldate.System1900
	}
	if b.ConvertDate == nil {
		b.ConvertDate = xldate.Convert
	}
	return b
}
