// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/spdxstream/internal/cursor"
	"github.com/creachadair/spdxstream/internal/escape"
	"github.com/creachadair/spdxstream/internal/window"
)

// ErrorKind classifies the errors reported by a Parser. An ErrorKind is
// itself an error, and every *Error matches its kind under errors.Is:
//
//	if errors.Is(err, spdxstream.ErrStreamClosed) {
//	   // the source was closed while parsing
//	}
type ErrorKind int

// Constants defining the valid ErrorKind values.
const (
	ErrInvalidConfiguration  ErrorKind = iota + 1 // bad arguments to NewParser
	ErrStreamClosed                               // the source was closed
	ErrUnexpectedEndOfStream                      // input ended too soon
	ErrMalformedJSON                              // input is not valid JSON
	ErrValidation                                 // a required field is missing
	ErrParserMisuse                               // methods called out of order
	ErrRead                                       // other errors from the source
)

var kindStr = [...]string{
	ErrInvalidConfiguration:  "invalid configuration",
	ErrStreamClosed:          "stream closed",
	ErrUnexpectedEndOfStream: "unexpected end of stream",
	ErrMalformedJSON:         "malformed JSON",
	ErrValidation:            "validation failed",
	ErrParserMisuse:          "parser misuse",
	ErrRead:                  "read failed",
}

func (k ErrorKind) String() string {
	if k <= 0 || int(k) >= len(kindStr) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// Error is the concrete type of errors reported by a Parser.
type Error struct {
	Kind  ErrorKind
	State State // the section being read, or None

	// For ErrValidation, the JSON name of the missing field and the 0-based
	// position of the offending element within its section.
	Field string
	Index int

	// For errors detected in the input, the location of the problem.
	Offset       int64
	Line, Column int

	Message string
	Err     error // the underlying cause, if any
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("spdx: ")
	sb.WriteString(e.Kind.String())
	if e.State != None && e.State != Finished {
		fmt.Fprintf(&sb, " in %v", e.State)
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at %d:%d", e.Line, e.Column)
	}
	if e.Kind == ErrValidation {
		if e.State != Document {
			fmt.Fprintf(&sb, ": element %d", e.Index)
		}
		if e.Message == "" {
			fmt.Fprintf(&sb, ": missing required field %s", escape.Quote(e.Field))
		} else {
			fmt.Fprintf(&sb, ": field %s", escape.Quote(e.Field))
		}
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap supports error wrapping. The result includes e.Kind, so that
// errors.Is matches an *Error against its kind.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsParseError reports whether err is a parse-time failure, meaning either
// malformed JSON or a validation failure, as opposed to a stream or
// configuration problem.
func IsParseError(err error) bool {
	return errors.Is(err, ErrMalformedJSON) || errors.Is(err, ErrValidation)
}

// wrapError classifies err, reported while reading st, as an *Error.
func wrapError(err error, st State) *Error {
	var e *Error
	if errors.As(err, &e) {
		if e.State == None {
			e.State = st
		}
		return e
	}
	out := &Error{State: st}

	var serr *cursor.SyntaxError
	if errors.As(err, &serr) {
		out.Offset = serr.Offset
		out.Line, out.Column = serr.Location.Line, serr.Location.Column
		out.Message = serr.Message
		out.Err = serr.Err
	} else {
		out.Err = err
	}

	switch {
	case errors.Is(err, window.ErrClosed):
		out.Kind = ErrStreamClosed
	case errors.Is(err, io.ErrUnexpectedEOF):
		out.Kind = ErrUnexpectedEndOfStream
	case serr != nil:
		out.Kind = ErrMalformedJSON
	default:
		out.Kind = ErrRead
	}
	return out
}

// malformed reports a structural error at the current location of c.
func malformed(c *cursor.Cursor, msg string, args ...any) *Error {
	loc := c.Location()
	return &Error{
		Kind:    ErrMalformedJSON,
		Offset:  c.Offset(),
		Line:    loc.Line,
		Column:  loc.Column,
		Message: fmt.Sprintf(msg, args...),
	}
}

func configError(err error) *Error {
	return &Error{Kind: ErrInvalidConfiguration, Err: err}
}

func misuse(st State, msg string, args ...any) *Error {
	return &Error{Kind: ErrParserMisuse, State: st, Message: fmt.Sprintf(msg, args...)}
}
