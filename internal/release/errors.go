package release

import (
	"errors"
	"fmt"
)

// ErrDataFormat is matched by every *DataFormatError.
var ErrDataFormat = errors.New("data format error")

// DataFormatError reports a source file that can't be turned into releases.
// Row is 1-based and counts the header; it is 0 when the problem isn't tied
// to a row.
type DataFormatError struct {
	Path   string
	Column string
	Row    int
	Err    error
}

func (e *DataFormatError) Error() string {
	msg := "reading releases"
	if e.Path != "" {
		msg += " from " + e.Path
	}
	switch {
	case e.Row > 0 && e.Column != "":
		msg += fmt.Sprintf(": row %d, column %q", e.Row, e.Column)
	case e.Column != "":
		msg += fmt.Sprintf(": column %q", e.Column)
	case e.Row > 0:
		msg += fmt.Sprintf(": row %d", e.Row)
	}
	return msg + ": " + e.Err.Error()
}

func (e *DataFormatError) Unwrap() error { return e.Err }

func (e *DataFormatError) Is(target error) bool {
	return target == ErrDataFormat
}
