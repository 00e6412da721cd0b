// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/creachadair/spdxstream/internal/cursor"
	"github.com/creachadair/spdxstream/internal/window"
)

// A Parser reads an SPDX 2.2 JSON document from a stream one section at a
// time. Call Advance to find the next section, then drain the sequence for
// the state it reports before calling Advance again:
//
//	p, err := spdxstream.NewParser(r, nil)
//	...
//	for {
//	   st, err := p.Advance()
//	   if err != nil {
//	      return err
//	   }
//	   switch st {
//	   case spdxstream.Packages:
//	      for pkg, err := range p.Packages() {
//	         ...
//	      }
//	   case spdxstream.Finished:
//	      return nil
//	   default:
//	      for _, err := range p.Records() {
//	         ...
//	      }
//	   }
//	}
//
// A Parser is not safe for concurrent use.
type Parser struct {
	rd  *window.Reader
	cur *cursor.Cursor
	log *slog.Logger

	skip             [numStates]bool
	visited          [numStates]bool
	ignoreValidation bool

	state  State
	status status
	began  bool // the root object has been opened
	doc    DocumentInfo
	err    error // sticky failure
}

// status records the progress of the caller through the current section.
type status byte

const (
	idle    status = iota // no section is open, or it has been drained
	pending               // positioned at a section, not yet requested
	active                // the section sequence is being read
)

// NewParser constructs a Parser that reads an SPDX document from r. Sections
// whose states appear in skip are discarded without decoding; including
// Document in skip suppresses the collection of document metadata.
func NewParser(r io.Reader, skip []State, opts ...Option) (*Parser, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.check(); err != nil {
		return nil, configError(err)
	}
	rd, err := window.New(r, o.windowSize())
	if err != nil {
		return nil, configError(err)
	}
	p := &Parser{
		rd:               rd,
		cur:              cursor.New(rd),
		log:              o.logger,
		ignoreValidation: o.ignoreValidation,
	}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	for _, st := range skip {
		if int(st) < numStates {
			p.skip[st] = true
		}
	}
	return p, nil
}

// State reports the state most recently returned by Advance.
func (p *Parser) State() State { return p.state }

// Advance moves the parser to the next section of the document that is not
// skipped, and reports its state. Document metadata encountered along the
// way is collected, and the Document state is reported once the root
// object is complete. Once the document is finished, Advance returns
// Finished.
//
// Before calling Advance again, the caller must read all of the records of
// the current section; otherwise Advance reports ErrParserMisuse.
func (p *Parser) Advance() (State, error) {
	if p.err != nil {
		return p.state, p.err
	} else if p.status != idle {
		return p.state, misuse(p.state, "section was not fully read")
	} else if p.state == Finished {
		return Finished, nil
	} else if p.state == Document {
		p.enter(Finished, idle) // the root object is already closed
		return Finished, nil
	}

	if !p.began {
		if tok, err := p.cur.Peek(); err != nil {
			return p.state, p.fail(err)
		} else if tok == cursor.EOF {
			return p.state, p.fail(&Error{Kind: ErrUnexpectedEndOfStream, Message: "no document in input"})
		}
		if err := p.cur.Begin(cursor.LBrace); err != nil {
			return p.state, p.fail(err)
		}
		p.began = true
		p.log.Debug("begin document")
	}
	for {
		more, err := p.cur.More()
		if err != nil {
			return p.state, p.fail(err)
		} else if !more {
			return p.finish()
		}
		key, err := p.cur.ReadKey()
		if err != nil {
			return p.state, p.fail(err)
		}

		if sec, ok := lookupSection(key); ok && !p.skip[sec.state] && !p.visited[sec.state] {
			tok, err := p.cur.Peek()
			if err != nil {
				return p.state, p.fail(err)
			}
			switch tok {
			case cursor.LSquare:
				p.enter(sec.state, pending)
				return sec.state, nil
			case cursor.Null:
				p.log.Debug("empty section", "key", sec.key)
				p.visited[sec.state] = true
				if err := p.cur.ReadNull(); err != nil {
					return p.state, p.fail(err)
				}
				continue
			default:
				return p.state, p.failf("section %q must be an array, not %v", sec.key, tok)
			}
		}
		if !p.skip[Document] {
			if ok, err := p.readMetadata(key); err != nil {
				return p.state, p.fail(err)
			} else if ok {
				continue
			}
		}
		p.log.Debug("skip member", "key", string(key))
		if err := p.cur.Skip(); err != nil {
			return p.state, p.fail(err)
		}
	}
}

// finish handles the close of the root object.
func (p *Parser) finish() (State, error) {
	if tok, err := p.cur.Peek(); err != nil {
		return p.state, p.fail(err)
	} else if tok != cursor.EOF {
		return p.state, p.failf("unexpected %v after document", tok)
	}
	if !p.skip[Document] && !p.visited[Document] {
		p.enter(Document, pending)
		return Document, nil
	}
	p.enter(Finished, idle)
	return Finished, nil
}

func (p *Parser) enter(st State, s status) {
	p.log.Debug("enter section", "state", st, "offset", p.cur.Offset())
	p.state, p.status = st, s
	p.visited[st] = true
}

// fail records err as the sticky failure of p and returns it.
func (p *Parser) fail(err error) error {
	e := wrapError(err, p.state)
	p.err = e
	p.status = idle
	p.log.Debug("parse failed", "state", p.state, "error", e)
	return e
}

func (p *Parser) failf(msg string, args ...any) error {
	return p.fail(malformed(p.cur, msg, args...))
}

// Document returns the document metadata collected while parsing. It may
// only be called once, when the parser is in the Document state. Unless
// validation is ignored, Document reports an error if required metadata
// are missing.
func (p *Parser) Document() (*DocumentInfo, error) {
	p.checkState(Document)
	if p.err != nil {
		return nil, p.err
	} else if p.status != pending {
		return nil, misuse(Document, "document was already read")
	}
	p.status = idle
	doc := p.doc
	if !p.ignoreValidation {
		if err := validateDocument(&doc); err != nil {
			return nil, p.fail(err)
		}
	}
	return &doc, nil
}

// References returns a sequence of the external document references in the
// current section. It panics if p is not in the References state.
func (p *Parser) References() iter.Seq2[*ExternalDocumentRef, error] {
	p.checkState(References)
	return readSection(p, References, decodeReference, validateReference)
}

// Files returns a sequence of the files in the current section.
// It panics if p is not in the Files state.
func (p *Parser) Files() iter.Seq2[*File, error] {
	p.checkState(Files)
	return readSection(p, Files, decodeFile, validateFile)
}

// Packages returns a sequence of the packages in the current section.
// It panics if p is not in the Packages state.
func (p *Parser) Packages() iter.Seq2[*Package, error] {
	p.checkState(Packages)
	return readSection(p, Packages, decodePackage, validatePackage)
}

// Relationships returns a sequence of the relationships in the current
// section. It panics if p is not in the Relationships state.
func (p *Parser) Relationships() iter.Seq2[*Relationship, error] {
	p.checkState(Relationships)
	return readSection(p, Relationships, decodeRelationship, validateRelationship)
}

// Snippets returns a sequence of the snippets in the current section.
// It panics if p is not in the Snippets state.
func (p *Parser) Snippets() iter.Seq2[*Snippet, error] {
	p.checkState(Snippets)
	return readSection(p, Snippets, decodeSnippet, validateSnippet)
}

// Reviews returns a sequence of the reviews in the current section.
// It panics if p is not in the Reviews state.
func (p *Parser) Reviews() iter.Seq2[*Review, error] {
	p.checkState(Reviews)
	return readSection(p, Reviews, decodeReview, validateReview)
}

// Annotations returns a sequence of the annotations in the current section.
// It panics if p is not in the Annotations state.
func (p *Parser) Annotations() iter.Seq2[*Annotation, error] {
	p.checkState(Annotations)
	return readSection(p, Annotations, decodeAnnotation, validateAnnotation)
}

// LicensingInfos returns a sequence of the extracted licenses in the
// current section. It panics if p is not in the LicensingInfos state.
func (p *Parser) LicensingInfos() iter.Seq2[*ExtractedLicense, error] {
	p.checkState(LicensingInfos)
	return readSection(p, LicensingInfos, decodeLicense, validateLicense)
}

// Records returns a sequence of the records of the current section as
// values of type any, with the same concrete types reported by the
// section-specific methods. In the Document state, the sequence reports
// the *DocumentInfo. Records panics if p is not positioned at a section.
func (p *Parser) Records() iter.Seq2[any, error] {
	if p.state == Document {
		return func(yield func(any, error) bool) {
			doc, err := p.Document()
			if err != nil {
				yield(nil, err)
				return
			}
			yield(doc, nil)
		}
	}
	sec, ok := sectionFor(p.state)
	if !ok {
		panic(fmt.Sprintf("spdxstream: Records called in state %v", p.state))
	}
	return readSection(p, sec.state, sec.decode, sec.validate)
}

func (p *Parser) checkState(want State) {
	if p.state != want {
		panic(fmt.Sprintf("spdxstream: %v requested in state %v", want, p.state))
	}
}

// readSection returns a sequence that decodes the elements of the array
// for section st, which the cursor is positioned at.
func readSection[T any](p *Parser, st State, decode func(*cursor.Cursor) (T, error), check func(T) error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if p.err != nil {
			yield(zero, p.err)
			return
		} else if p.state != st || p.status != pending {
			yield(zero, misuse(st, "section sequence is not reusable"))
			return
		}
		p.status = active

		// Probe the source before each element so that a closed stream is
		// reported even when the window holds the rest of the section.
		if err := p.rd.Probe(); err != nil {
			yield(zero, p.fail(err))
			return
		}
		if err := p.cur.Begin(cursor.LSquare); err != nil {
			yield(zero, p.fail(err))
			return
		}
		for i := 0; ; i++ {
			if i > 0 {
				if err := p.rd.Probe(); err != nil {
					yield(zero, p.fail(err))
					return
				}
			}
			more, err := p.cur.More()
			if err != nil {
				yield(zero, p.fail(err))
				return
			} else if !more {
				p.status = idle
				p.log.Debug("section complete", "state", st, "records", i)
				return
			}
			if tok, err := p.cur.Peek(); err != nil {
				yield(zero, p.fail(err))
				return
			} else if tok != cursor.LBrace {
				p.log.Debug("skip non-object element", "state", st, "index", i, "token", tok)
				if err := p.cur.Skip(); err != nil {
					yield(zero, p.fail(err))
					return
				}
				continue
			}
			v, err := decode(p.cur)
			if err != nil {
				yield(zero, p.fail(err))
				return
			}
			if !p.ignoreValidation {
				if err := check(v); err != nil {
					var e *Error
					if errors.As(err, &e) {
						e.State, e.Index = st, i
					}
					yield(zero, p.fail(err))
					return
				}
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
