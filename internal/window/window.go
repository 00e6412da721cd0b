// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package window implements a fixed-capacity read window over a byte
// stream. The window never grows: consumed bytes are compacted out before
// each refill, so a value larger than the window is delivered in several
// pieces and it is the caller's job to stitch them together.
package window

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
)

var (
	// ErrNilSource is reported by New when the source reader is nil.
	ErrNilSource = errors.New("nil source reader")

	// ErrBufferSize is reported by New when the capacity is not positive.
	ErrBufferSize = errors.New("buffer capacity must be positive")

	// ErrClosed is reported when the source signals that it has been closed.
	ErrClosed = errors.New("source is closed")
)

// maxEmptyReads is the number of consecutive (0, nil) reads tolerated from
// the source before reporting io.ErrNoProgress, matching bufio.
const maxEmptyReads = 100

// A Reader moves bytes from a source into a fixed-capacity window.
// The invariant pos <= n <= len(buf) holds at all times.
type Reader struct {
	src  io.Reader
	buf  []byte
	pos  int   // offset of the next unconsumed byte
	n    int   // number of valid bytes in buf
	base int64 // stream offset of buf[0]

	total int64 // bytes read from src so far
	eof   bool
	err   error // sticky read error, other than io.EOF
}

// New constructs a Reader that consumes src through a window of the given
// capacity in bytes.
func New(src io.Reader, size int) (*Reader, error) {
	if src == nil {
		return nil, ErrNilSource
	} else if size <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrBufferSize, size)
	}
	return &Reader{src: src, buf: make([]byte, size)}, nil
}

// Cap reports the fixed capacity of the window.
func (r *Reader) Cap() int { return len(r.buf) }

// Bytes returns a view of the unconsumed bytes in the window. The view is
// only valid until the next call to Fill.
func (r *Reader) Bytes() []byte { return r.buf[r.pos:r.n] }

// Remaining reports the number of unconsumed bytes in the window.
func (r *Reader) Remaining() int { return r.n - r.pos }

// Consume marks the first k unconsumed bytes as read.
// It panics if k exceeds the remaining bytes.
func (r *Reader) Consume(k int) {
	if k < 0 || k > r.n-r.pos {
		panic(fmt.Sprintf("window: consume %d of %d bytes", k, r.n-r.pos))
	}
	r.pos += k
}

// Offset reports the stream offset of the next unconsumed byte.
func (r *Reader) Offset() int64 { return r.base + int64(r.pos) }

// Total reports the number of bytes read from the source so far.
func (r *Reader) Total() int64 { return r.total }

// EOF reports whether the source has reported end of stream.
func (r *Reader) EOF() bool { return r.eof }

// Err reports the sticky error from the source, if any.
func (r *Reader) Err() error { return r.err }

// Fill reads more bytes from the source into the free tail of the window,
// compacting consumed bytes out first. It returns the number of bytes read;
// zero with a nil error means the source is at end of stream or the window
// is already full.
func (r *Reader) Fill() (int, error) {
	if r.err != nil {
		return 0, r.err
	} else if r.eof {
		return 0, nil
	}
	if r.pos > 0 {
		copy(r.buf, r.buf[r.pos:r.n])
		r.base += int64(r.pos)
		r.n -= r.pos
		r.pos = 0
	}
	if r.n == len(r.buf) {
		return 0, nil
	}

	for range maxEmptyReads {
		nr, err := r.src.Read(r.buf[r.n:])
		if nr < 0 || nr > len(r.buf)-r.n {
			return 0, r.setErr(errors.New("window: invalid read count"))
		}
		r.n += nr
		r.total += int64(nr)
		if err == io.EOF {
			r.eof = true
			return nr, nil
		} else if err != nil {
			// Report any bytes that arrived along with the error; the error
			// itself is delivered by the next call.
			r.setErr(err)
			if nr > 0 {
				return nr, nil
			}
			return 0, r.err
		} else if nr > 0 {
			return nr, nil
		}
	}
	return 0, r.setErr(io.ErrNoProgress)
}

// Probe checks whether the source has been closed, without consuming any
// input. It issues a zero-length read, which a closed file or connection
// reports as an error and an open source reports as (0, nil) or io.EOF.
func (r *Reader) Probe() error {
	if r.err != nil {
		return r.err
	}
	if _, err := r.src.Read(r.buf[:0]); err != nil && err != io.EOF {
		return r.setErr(err)
	}
	return nil
}

func (r *Reader) setErr(err error) error {
	if isClosed(err) {
		err = fmt.Errorf("%w: %w", ErrClosed, err)
	}
	r.err = err
	return err
}

func isClosed(err error) bool {
	return errors.Is(err, os.ErrClosed) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, ErrClosed)
}
