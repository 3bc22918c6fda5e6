package dem

import (
	"errors"
	"fmt"
)

// ErrFormat is wrapped by every header parsing failure.
var ErrFormat = errors.New("dem: malformed grid header")

// FormatError reports the header line that could not be parsed.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dem: line %d: %s", e.Line, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
