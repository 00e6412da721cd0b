// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package cursor

import (
	"fmt"
	"io"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// SyntaxError reports input that does not conform to the JSON grammar, or
// that ends inside an unclosed value. An error for truncated input wraps
// io.ErrUnexpectedEOF.
type SyntaxError struct {
	Offset   int64   // stream offset of the offending input
	Location LineCol // line and column of the offending input
	Message  string

	Err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", s.Location, s.Offset, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.Err }

func (c *Cursor) fail(err error, msg string, args ...any) error {
	return &SyntaxError{
		Offset:   c.Offset(),
		Location: c.Location(),
		Message:  fmt.Sprintf(msg, args...),
		Err:      err,
	}
}

func (c *Cursor) failf(msg string, args ...any) error { return c.fail(nil, msg, args...) }

// eofError reports input that ended before the current value was complete.
func (c *Cursor) eofError(msg string, args ...any) error {
	return c.fail(io.ErrUnexpectedEOF, msg, args...)
}
