// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements a pull-style JSON tokenizer over a bounded read
// window. A Cursor reads one token at a time, tracks the stack of open
// objects and arrays, and can discard a value of any shape without decoding
// it. Tokens may span any number of window refills, and strings must be
// valid UTF-8.
//
// Errors in the input are reported as *SyntaxError. Errors from the
// underlying reader are returned unmodified.
package cursor

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/spdxstream/internal/escape"
	"github.com/creachadair/spdxstream/internal/window"

	"go4.org/mem"
)

// frame records an open object or array.
type frame struct {
	close Token // RBrace or RSquare
	n     int   // members or elements begun so far
}

// A Cursor reads JSON tokens from a window.Reader.
type Cursor struct {
	r   *window.Reader
	stk []frame
	buf []byte // raw text of the current token
	dec []byte // decoded text of the current string, if escaped

	line, col int // 0-based position of the next unconsumed byte
}

// New constructs a Cursor that reads from r.
func New(r *window.Reader) *Cursor { return &Cursor{r: r} }

// Depth reports the number of objects and arrays currently open.
func (c *Cursor) Depth() int { return len(c.stk) }

// Offset reports the stream offset of the next unconsumed byte.
func (c *Cursor) Offset() int64 { return c.r.Offset() }

// Location reports the line and column of the next unconsumed byte.
func (c *Cursor) Location() LineCol { return LineCol{Line: c.line + 1, Column: c.col} }

// InObject reports whether the innermost open container is an object.
func (c *Cursor) InObject() bool {
	return len(c.stk) != 0 && c.stk[len(c.stk)-1].close == RBrace
}

// Peek reports the type of the next token without consuming it.  At the end
// of the input outside any container, Peek returns EOF. If the input ends
// inside a container, or if the input was entirely empty, Peek reports a
// *SyntaxError wrapping io.ErrUnexpectedEOF.
func (c *Cursor) Peek() (Token, error) {
	ch, err := c.peekSignificant()
	if err == io.EOF {
		if c.r.Total() == 0 {
			return Invalid, c.eofError("empty input")
		} else if len(c.stk) != 0 {
			return Invalid, c.eofError("input ends inside %s", c.openLabel())
		}
		return EOF, nil
	} else if err != nil {
		return Invalid, err
	}
	if tok := classify(ch); tok != Invalid {
		return tok, nil
	}
	return Invalid, c.failf("unexpected %q", ch)
}

// Begin consumes the opening token of an object (LBrace) or array (LSquare).
// It reports an error if the next token is not open.
func (c *Cursor) Begin(open Token) error {
	if err := c.expect(open); err != nil {
		return err
	}
	if open == LBrace {
		c.stk = append(c.stk, frame{close: RBrace})
	} else {
		c.stk = append(c.stk, frame{close: RSquare})
	}
	return nil
}

// More reports whether the innermost open object or array has another
// member or element. If so, it consumes the separating comma, if any, and
// the caller must consume the member (with ReadKey and a value) or the
// element before calling More again.  Otherwise, More consumes the closing
// token and pops the container.
func (c *Cursor) More() (bool, error) {
	if len(c.stk) == 0 {
		return false, errors.New("cursor: More called outside any container")
	}
	top := &c.stk[len(c.stk)-1]
	tok, err := c.Peek()
	if err != nil {
		return false, err
	}
	if tok == top.close {
		c.consume(1)
		c.stk = c.stk[:len(c.stk)-1]
		return false, nil
	}
	if top.n != 0 {
		if tok != Comma {
			return false, c.failf("%s", tokLabel([]Token{Comma, top.close}, tok))
		}
		c.consume(1)
		next, err := c.Peek()
		if err != nil {
			return false, err
		} else if next == top.close {
			return false, c.failf("unexpected %v after comma", next)
		}
	}
	top.n++
	return true, nil
}

// ReadKey reads an object member name and the colon following it.  The
// returned slice is only valid until the next read from c.
func (c *Cursor) ReadKey() ([]byte, error) {
	if !c.InObject() {
		return nil, errors.New("cursor: ReadKey called outside an object")
	}
	tok, err := c.Peek()
	if err != nil {
		return nil, err
	} else if tok != String {
		return nil, c.failf("%s", tokLabel([]Token{String}, tok))
	}
	key, err := c.readString()
	if err != nil {
		return nil, err
	}
	if err := c.expect(Colon); err != nil {
		return nil, err
	}
	return key, nil
}

// ReadString reads and decodes a string value.
func (c *Cursor) ReadString() (string, error) {
	if err := c.want(String); err != nil {
		return "", err
	}
	text, err := c.readString()
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// ReadNumber reads a number value and returns its text as written.
func (c *Cursor) ReadNumber() (string, error) {
	if err := c.want(Number); err != nil {
		return "", err
	}
	if err := c.scanNumber(); err != nil {
		return "", err
	}
	return string(c.buf), nil
}

// ReadInt reads a number value that must be an integer in range for int64.
func (c *Cursor) ReadInt() (int64, error) {
	text, err := c.ReadNumber()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, c.fail(err, "invalid integer %s", text)
	}
	return v, nil
}

// ReadBool reads a Boolean constant.
func (c *Cursor) ReadBool() (bool, error) {
	tok, err := c.Peek()
	if err != nil {
		return false, err
	} else if tok != True && tok != False {
		return false, c.failf("%s", tokLabel([]Token{True, False}, tok))
	}
	if err := c.scanName(); err != nil {
		return false, err
	}
	return tok == True, nil
}

// ReadNull reads the null constant.
func (c *Cursor) ReadNull() error {
	if err := c.want(Null); err != nil {
		return err
	}
	return c.scanName()
}

// Skip consumes and discards one complete value of any type.
func (c *Cursor) Skip() error {
	tok, err := c.Peek()
	if err != nil {
		return err
	}
	if tok != LBrace && tok != LSquare {
		return c.skipScalar(tok)
	}

	base := len(c.stk)
	if err := c.Begin(tok); err != nil {
		return err
	}
	for len(c.stk) > base {
		more, err := c.More()
		if err != nil {
			return err
		} else if !more {
			continue // container closed
		}
		if c.InObject() {
			if _, err := c.ReadKey(); err != nil {
				return err
			}
		}
		next, err := c.Peek()
		if err != nil {
			return err
		}
		if next == LBrace || next == LSquare {
			if err := c.Begin(next); err != nil {
				return err
			}
		} else if err := c.skipScalar(next); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cursor) skipScalar(tok Token) error {
	switch tok {
	case String:
		return c.skipString()
	case Number:
		return c.scanNumber()
	case True, False, Null:
		return c.scanName()
	default:
		return c.failf("unexpected %v", tok)
	}
}

// want reports an error if the next token is not tok.
func (c *Cursor) want(tok Token) error {
	got, err := c.Peek()
	if err != nil {
		return err
	} else if got != tok {
		return c.failf("%s", tokLabel([]Token{tok}, got))
	}
	return nil
}

// expect consumes the next token, which must be the single-byte token tok.
func (c *Cursor) expect(tok Token) error {
	if err := c.want(tok); err != nil {
		return err
	}
	c.consume(1)
	return nil
}

// readString consumes a quoted string and returns its decoded contents.
// The result is only valid until the next read from c.
// Precondition: the next token is String.
func (c *Cursor) readString() ([]byte, error) {
	c.resetBuf()
	hasEsc, err := c.scanString(true)
	if err != nil {
		return nil, err
	} else if !hasEsc {
		return c.buf, nil
	}
	dec, err := escape.Unquote(c.dec[:0], mem.B(c.buf))
	if err != nil {
		return nil, c.fail(err, "invalid string")
	}
	c.dec = dec
	return c.dec, nil
}

// skipString consumes a quoted string without retaining its contents.
// Precondition: the next token is String.
func (c *Cursor) skipString() error {
	_, err := c.scanString(false)
	return err
}

// scanString consumes a quoted string, checking its escapes and encoding.
// If keep is true, the raw text between the quotes is appended to c.buf.
// It reports whether the string contains any escape sequences.
func (c *Cursor) scanString(keep bool) (bool, error) {
	c.consume(1) // open quote
	var hasEsc bool
	for {
		data, err := c.window()
		if err == io.EOF {
			return false, c.eofError("unterminated string")
		} else if err != nil {
			return false, err
		}

		// Scan plain ASCII text in bulk, up to the next quote, escape,
		// control, or multi-byte rune.
		i := 0
		for i < len(data) && data[i] != '"' && data[i] != '\\' && data[i] >= ' ' && data[i] < utf8.RuneSelf {
			i++
		}
		if keep {
			c.buf = append(c.buf, data[:i]...)
		}
		c.consume(i)
		if i == len(data) {
			continue
		}

		switch ch := data[i]; {
		case ch == '"':
			c.consume(1)
			return hasEsc, nil
		case ch == '\\':
			hasEsc = true
			if err := c.scanEscape(keep); err != nil {
				return false, err
			}
		case ch >= utf8.RuneSelf:
			if err := c.scanRune(keep); err != nil {
				return false, err
			}
		default:
			return false, c.failf("unescaped control %q in string", ch)
		}
	}
}

// scanRune consumes one multi-byte UTF-8 rune of a string, appending it to
// c.buf if keep is true. An invalid encoding is reported at its first byte.
func (c *Cursor) scanRune(keep bool) error {
	off, loc := c.Offset(), c.Location()
	var enc [utf8.UTFMax]byte
	n := 0
	for !utf8.FullRune(enc[:n]) {
		ch, err := c.need("string")
		if err != nil {
			return err
		}
		enc[n] = ch
		n++
		c.consume(1)
	}
	if r, size := utf8.DecodeRune(enc[:n]); r == utf8.RuneError && size == 1 {
		return &SyntaxError{Offset: off, Location: loc, Message: "invalid UTF-8 in string"}
	}
	if keep {
		c.buf = append(c.buf, enc[:n]...)
	}
	return nil
}

// scanEscape consumes a backslash escape sequence, appending it to c.buf if
// keep is true.
func (c *Cursor) scanEscape(keep bool) error {
	next := c.skip
	if keep {
		next = c.take
	}
	next()
	ch, err := c.need("escape sequence")
	if err != nil {
		return err
	}
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		next()
		return nil
	case 'u':
		next()
		for range 4 {
			d, err := c.need("Unicode escape")
			if err != nil {
				return err
			} else if !isHexDigit(d) {
				return c.failf("invalid Unicode escape: not a hex digit: %q", d)
			}
			next()
		}
		return nil
	default:
		return c.failf("invalid %q after escape", ch)
	}
}

// scanNumber consumes a number into c.buf.
// Precondition: the next token is Number.
func (c *Cursor) scanNumber() error {
	c.resetBuf()
	if ch, _ := c.peekByte(); ch == '-' {
		c.take()
	}

	// If there is a leading zero, it must be the only digit of the integer
	// part. That is: 0.12 is OK, 01.2 is not.
	ch, err := c.need("digit")
	if err != nil {
		return err
	} else if ch == '0' {
		c.take()
		if next, err := c.peekByte(); err == nil && isDigit(next) {
			return c.failf("extra leading zeroes")
		}
	} else if !isDigit(ch) {
		return c.failf("got %q, want digit", ch)
	} else if _, err := c.digits(); err != nil {
		return err
	}

	// If a decimal point follows, consume a fractional part.
	if ok, err := c.takeIf('.'); err != nil {
		return err
	} else if ok {
		if _, err := c.need("number"); err != nil {
			return err
		}
		if nd, err := c.digits(); err != nil {
			return err
		} else if nd == 0 {
			return c.failf("no digits after decimal point")
		}
	}

	// If an exponent follows, consume it.
	ok, err := c.takeIf('e')
	if err != nil {
		return err
	} else if !ok {
		if ok, err = c.takeIf('E'); err != nil {
			return err
		}
	}
	if ok {
		ch, err := c.need("number")
		if err != nil {
			return err
		} else if isExpSign(ch) {
			c.take()
			if _, err := c.need("number"); err != nil {
				return err
			}
		}
		if nd, err := c.digits(); err != nil {
			return err
		} else if nd == 0 {
			return c.failf("missing exponent digits")
		}
	}
	return c.checkDelim()
}

// scanName consumes a constant (true, false, null) into c.buf.
// Precondition: the next token is True, False, or Null.
func (c *Cursor) scanName() error {
	c.resetBuf()
	for {
		ch, err := c.peekByte()
		if err == io.EOF {
			if isNamePrefix(string(c.buf)) {
				return c.eofError("input ends inside constant")
			}
			break
		} else if err != nil {
			return err
		} else if !isNameByte(ch) {
			break
		}
		c.take()
	}
	got := mem.B(c.buf)
	if !got.EqualString("true") && !got.EqualString("false") && !got.EqualString("null") {
		return c.failf("unknown constant %q", got.StringCopy())
	}
	return c.checkDelim()
}

// checkDelim reports an error if the byte after a number or constant cannot
// legally follow it.
func (c *Cursor) checkDelim() error {
	ch, err := c.peekByte()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	} else if !isDelim(ch) {
		return c.failf("unexpected %q after %s", ch, string(c.buf))
	}
	return nil
}

// digits consumes a run of decimal digits into c.buf and reports how many.
func (c *Cursor) digits() (int, error) {
	var nd int
	for {
		ch, err := c.peekByte()
		if err == io.EOF {
			return nd, nil
		} else if err != nil {
			return nd, err
		} else if !isDigit(ch) {
			return nd, nil
		}
		c.take()
		nd++
	}
}

// takeIf consumes the next byte into c.buf if it equals want.
func (c *Cursor) takeIf(want byte) (bool, error) {
	ch, err := c.peekByte()
	if err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, err
	} else if ch != want {
		return false, nil
	}
	c.take()
	return true, nil
}

// need returns the next byte without consuming it, treating the end of
// input as truncation of the current token.
func (c *Cursor) need(label string) (byte, error) {
	ch, err := c.peekByte()
	if err == io.EOF {
		return 0, c.eofError("input ends inside %s", label)
	}
	return ch, err
}

// maxRetain is the largest token buffer kept for reuse between tokens.
const maxRetain = 1 << 12

// resetBuf empties c.buf for a new token, and releases the token buffers if
// a previous token grew them past maxRetain.
func (c *Cursor) resetBuf() {
	if cap(c.buf) > maxRetain {
		c.buf = nil
	}
	if cap(c.dec) > maxRetain {
		c.dec = nil
	}
	c.buf = c.buf[:0]
}

// skip consumes the next byte without retaining it.
// Precondition: a byte is available in the window.
func (c *Cursor) skip() { c.consume(1) }

// take consumes the next byte into c.buf.
// Precondition: a byte is available in the window.
func (c *Cursor) take() {
	c.buf = append(c.buf, c.r.Bytes()[0])
	c.consume(1)
}

// peekSignificant discards whitespace and returns the next byte.
func (c *Cursor) peekSignificant() (byte, error) {
	for {
		data, err := c.window()
		if err != nil {
			return 0, err
		}
		i := 0
		for i < len(data) && isSpace(data[i]) {
			i++
		}
		c.consume(i)
		if i < len(data) {
			return data[i], nil
		}
	}
}

// peekByte returns the next byte without consuming it.
func (c *Cursor) peekByte() (byte, error) {
	data, err := c.window()
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// window returns the unconsumed bytes of the window, refilling it if it is
// empty. It returns io.EOF at the end of the input.
func (c *Cursor) window() ([]byte, error) {
	for c.r.Remaining() == 0 {
		n, err := c.r.Fill()
		if err != nil {
			return nil, err
		} else if n == 0 && c.r.EOF() {
			return nil, io.EOF
		}
	}
	return c.r.Bytes(), nil
}

// consume advances past k bytes of the window, updating the position.
func (c *Cursor) consume(k int) {
	for _, b := range c.r.Bytes()[:k] {
		if b == '\n' {
			c.line++
			c.col = 0
		} else {
			c.col++
		}
	}
	c.r.Consume(k)
}

func (c *Cursor) openLabel() string {
	if c.InObject() {
		return "object"
	}
	return "array"
}

// isNamePrefix reports whether s is a proper prefix of a JSON constant.
func isNamePrefix(s string) bool {
	for _, name := range []string{"true", "false", "null"} {
		if len(s) < len(name) && strings.HasPrefix(name, s) {
			return true
		}
	}
	return false
}

