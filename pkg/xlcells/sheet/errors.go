package sheet

import (
	"errors"
	"fmt"
)

// ErrMalformedSheet indicates worksheet XML that cannot be decoded.
var ErrMalformedSheet = errors.New("malformed worksheet")

// ErrOutputTooSmall indicates Decode was handed fewer slots than Count reported.
var ErrOutputTooSmall = errors.New("output smaller than cell count")

// ErrAlreadyDecoded indicates a second Decode of the same Sheet. Decoding
// consumes the sheet's comments and shared formula state.
var ErrAlreadyDecoded = errors.New("sheet already decoded")

// CellError is a fatal error tied to one cell of a sheet.
type CellError struct {
	Sheet   string
	Address string
	Err     error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("sheet %q cell %s: %v", e.Sheet, e.Address, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
