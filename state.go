// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream

import (
	"fmt"
	"strings"

	"github.com/creachadair/spdxstream/internal/cursor"
)

// State identifies the section of an SPDX document a Parser is positioned
// at. States are reported by Advance in the order their sections occur in
// the input, and each state is reported at most once.
type State byte

// Constants defining the valid State values.
const (
	None           State = iota // no section has been read yet
	Document                    // document metadata (reported last)
	Files                       // "files"
	Packages                    // "packages"
	Relationships               // "relationships"
	References                  // "externalDocumentRefs"
	Snippets                    // "snippets"
	Reviews                     // "revieweds"
	Annotations                 // "annotations"
	LicensingInfos              // "hasExtractedLicensingInfos"
	Finished                    // the document is complete

	numStates = int(Finished) + 1
)

var stateStr = [...]string{
	None:           "NONE",
	Document:       "DOCUMENT",
	Files:          "FILES",
	Packages:       "PACKAGES",
	Relationships:  "RELATIONSHIPS",
	References:     "REFERENCES",
	Snippets:       "SNIPPETS",
	Reviews:        "REVIEWS",
	Annotations:    "ANNOTATIONS",
	LicensingInfos: "LICENSING_INFOS",
	Finished:       "FINISHED",
}

func (s State) String() string {
	if int(s) >= len(stateStr) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateStr[s]
}

// ParseState returns the State whose name matches s, ignoring case. Either
// the state name ("REFERENCES") or the JSON key of its section
// ("externalDocumentRefs") is accepted.
func ParseState(s string) (State, error) {
	for i, name := range stateStr {
		if strings.EqualFold(name, s) {
			return State(i), nil
		}
	}
	for _, sec := range sections {
		if strings.EqualFold(sec.key, s) {
			return sec.state, nil
		}
	}
	return None, fmt.Errorf("unknown section %q", s)
}

// A section describes a top-level array of an SPDX document that the
// parser reports as a State.
type section struct {
	key   string
	state State

	// Decode and validate one element of the section, for Records.
	decode   func(*cursor.Cursor) (any, error)
	validate func(any) error
}

// sections lists the top-level keys of an SPDX 2.2 document that begin
// sections, in the order of the JSON schema.
var sections = []section{
	newSection("files", Files, decodeFile, validateFile),
	newSection("packages", Packages, decodePackage, validatePackage),
	newSection("relationships", Relationships, decodeRelationship, validateRelationship),
	newSection("externalDocumentRefs", References, decodeReference, validateReference),
	newSection("snippets", Snippets, decodeSnippet, validateSnippet),
	newSection("revieweds", Reviews, decodeReview, validateReview),
	newSection("annotations", Annotations, decodeAnnotation, validateAnnotation),
	newSection("hasExtractedLicensingInfos", LicensingInfos, decodeLicense, validateLicense),
}

func newSection[T any](key string, st State, dec func(*cursor.Cursor) (*T, error), check func(*T) error) section {
	return section{
		key:   key,
		state: st,
		decode: func(c *cursor.Cursor) (any, error) {
			v, err := dec(c)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		validate: func(v any) error { return check(v.(*T)) },
	}
}

// lookupSection returns the section whose key matches key, if any.
func lookupSection(key []byte) (section, bool) {
	for _, sec := range sections {
		if string(key) == sec.key {
			return sec, true
		}
	}
	return section{}, false
}

// sectionFor returns the section reported as st, if any.
func sectionFor(st State) (section, bool) {
	for _, sec := range sections {
		if sec.state == st {
			return sec, true
		}
	}
	return section{}, false
}
