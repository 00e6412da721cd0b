// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package window_test

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/spdxstream/internal/window"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		src  io.Reader
		size int
		want error
	}{
		{"NilSource", nil, 16, window.ErrNilSource},
		{"ZeroSize", strings.NewReader("x"), 0, window.ErrBufferSize},
		{"NegativeSize", strings.NewReader("x"), -4, window.ErrBufferSize},
		{"OK", strings.NewReader("x"), 1, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := window.New(tc.src, tc.size)
			if !errors.Is(err, tc.want) {
				t.Fatalf("New: got error %v, want %v", err, tc.want)
			}
			if err == nil && r.Cap() != tc.size {
				t.Errorf("Cap: got %d, want %d", r.Cap(), tc.size)
			}
		})
	}
}

// drain reads all of r through the window, consuming a few bytes at a time.
func drain(t *testing.T, r *window.Reader, step int) string {
	t.Helper()
	var sb strings.Builder
	for {
		if r.Remaining() == 0 {
			n, err := r.Fill()
			if err != nil {
				t.Fatalf("Fill: unexpected error: %v", err)
			} else if n == 0 && r.EOF() {
				return sb.String()
			}
		}
		k := min(step, r.Remaining())
		sb.Write(r.Bytes()[:k])
		r.Consume(k)
	}
}

func TestFill(t *testing.T) {
	const input = `{"externalDocumentRefs":[{"externalDocumentId":"DocumentRef-1"}]}`
	for _, size := range []int{1, 2, 3, 7, 64, 4096} {
		for _, step := range []int{1, 3, 100} {
			r, err := window.New(strings.NewReader(input), size)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := drain(t, r, step); got != input {
				t.Errorf("size=%d step=%d: got %q, want %q", size, step, got, input)
			}
			if got := r.Offset(); got != int64(len(input)) {
				t.Errorf("size=%d step=%d: offset %d, want %d", size, step, got, len(input))
			}
			if got := r.Total(); got != int64(len(input)) {
				t.Errorf("size=%d step=%d: total %d, want %d", size, step, got, len(input))
			}
		}
	}
}

func TestFillOneByteReader(t *testing.T) {
	const input = "abcdefghij"
	r, err := window.New(iotest.OneByteReader(strings.NewReader(input)), 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := drain(t, r, 2); got != input {
		t.Errorf("got %q, want %q", got, input)
	}
}

func TestFillFull(t *testing.T) {
	r, err := window.New(strings.NewReader("abcdef"), 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n, err := r.Fill(); err != nil || n != 3 {
		t.Fatalf("Fill: got (%d, %v), want (3, nil)", n, err)
	}
	// Nothing consumed, so the window is full and no read happens.
	if n, err := r.Fill(); err != nil || n != 0 {
		t.Errorf("Fill on full window: got (%d, %v), want (0, nil)", n, err)
	}
	if got := string(r.Bytes()); got != "abc" {
		t.Errorf("Bytes: got %q, want %q", got, "abc")
	}
}

func TestEmpty(t *testing.T) {
	r, err := window.New(strings.NewReader(""), 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n, err := r.Fill(); err != nil || n != 0 {
		t.Fatalf("Fill: got (%d, %v), want (0, nil)", n, err)
	}
	if !r.EOF() {
		t.Error("EOF: got false, want true")
	}
	if r.Total() != 0 {
		t.Errorf("Total: got %d, want 0", r.Total())
	}
}

type closeReader struct {
	io.Reader
	closed bool
}

func (c *closeReader) Read(p []byte) (int, error) {
	if c.closed {
		return 0, os.ErrClosed
	}
	return c.Reader.Read(p)
}

func TestClosed(t *testing.T) {
	src := &closeReader{Reader: strings.NewReader("abcdef")}
	r, err := window.New(src, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Probe(); err != nil {
		t.Fatalf("Probe on open source: %v", err)
	}
	if _, err := r.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	src.closed = true

	if err := r.Probe(); !errors.Is(err, window.ErrClosed) {
		t.Errorf("Probe: got %v, want %v", err, window.ErrClosed)
	}
	r.Consume(r.Remaining())
	if _, err := r.Fill(); !errors.Is(err, window.ErrClosed) {
		t.Errorf("Fill: got %v, want %v", err, window.ErrClosed)
	} else if !errors.Is(err, os.ErrClosed) {
		t.Errorf("Fill: error %v does not wrap %v", err, os.ErrClosed)
	}
}

func TestReadError(t *testing.T) {
	bad := errors.New("bad things")
	r, err := window.New(iotest.ErrReader(bad), 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Fill(); !errors.Is(err, bad) {
		t.Errorf("Fill: got %v, want %v", err, bad)
	} else if errors.Is(err, window.ErrClosed) {
		t.Errorf("Fill: error %v should not be reported as closed", err)
	}
	if _, err := r.Fill(); !errors.Is(err, bad) {
		t.Errorf("Fill again: got %v, want sticky %v", err, bad)
	}
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, nil }

func TestNoProgress(t *testing.T) {
	r, err := window.New(emptyReader{}, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Fill(); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("Fill: got %v, want %v", err, io.ErrNoProgress)
	}
}
