// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream

import (
	"fmt"
	"log/slog"
)

// DefaultBufferSize is the capacity of the read window used by a Parser
// when no WithBufferSize option is given.
const DefaultBufferSize = 4096

// An Option configures a Parser constructed by NewParser.
type Option func(*options)

type options struct {
	bufSize          int
	bufSizeSet       bool
	ignoreValidation bool
	logger           *slog.Logger
}

func (o *options) check() error {
	if o.bufSizeSet && o.bufSize <= 0 {
		return fmt.Errorf("buffer size %d must be positive", o.bufSize)
	}
	return nil
}

func (o *options) windowSize() int {
	if o.bufSizeSet {
		return o.bufSize
	}
	return DefaultBufferSize
}

// WithBufferSize sets the capacity in bytes of the parser's read window.
// The window never grows, but tokens longer than the window are still read
// correctly. If n <= 0, NewParser reports ErrInvalidConfiguration.
func WithBufferSize(n int) Option {
	return func(o *options) { o.bufSize = n; o.bufSizeSet = true }
}

// IgnoreValidation disables (if ok) or enables required-field checks on
// the records reported by the parser. Syntax and stream errors are still
// reported.
func IgnoreValidation(ok bool) Option {
	return func(o *options) { o.ignoreValidation = ok }
}

// WithLogger sets the logger to which the parser writes debug logs about
// the sections and keys it visits. By default, logs are discarded.
func WithLogger(lg *slog.Logger) Option {
	return func(o *options) { o.logger = lg }
}
