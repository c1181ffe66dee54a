// Package xldate converts spreadsheet serial dates to calendar time.
package xldate

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// System selects the epoch serial dates count from.
type System int

const (
	// System1900 counts from 1899-12-30, with the 1900 leap-year bug.
	System1900 System = 1900
	// System1904 counts from 1904-01-01.
	System1904 System = 1904
)

const (
	// daysTooLarge1900 is the first serial in year 10000 under the 1900 system.
	daysTooLarge1900 = 2958466
	daysTooLarge1904 = daysTooLarge1900 - 1462
)

// ErrDateOutOfRange indicates a serial that cannot be represented as a date.
var ErrDateOutOfRange = errors.New("date serial out of range")

// Convert returns the calendar time for serial. label names the cell being
// converted (e.g. 'Sheet1'!A1) and prefixes any error.
func Convert(serial float64, system System, label string) (time.Time, error) {
	limit := float64(daysTooLarge1900)
	if system == System1904 {
		limit = daysTooLarge1904
	}
	if serial < 0 || serial >= limit {
		return time.Time{}, fmt.Errorf("%s: %w: %v", label, ErrDateOutOfRange, serial)
	}

	t, err := excelize.ExcelDateToTime(serial, system == System1904)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w: %v", label, ErrDateOutOfRange, err)
	}
	return t, nil
}
