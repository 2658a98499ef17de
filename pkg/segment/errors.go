package segment

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyParam      = errors.New("segment: empty param")
	ErrUnfinishedParam = errors.New("segment: unfinished param")
)

// ParseError reports a malformed bracket token in a path segment.
type ParseError struct {
	Err     error
	Segment string
	Param   string // buffered param name, if any
	Offset  int    // byte offset where parsing stopped
}

func (e *ParseError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s %q in %q at offset %d", e.Err, e.Param, e.Segment, e.Offset)
	}
	return fmt.Sprintf("%s in %q at offset %d", e.Err, e.Segment, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
