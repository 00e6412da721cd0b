// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package spdxstream implements a streaming parser for SPDX 2.2 software
// bills of materials encoded as JSON.
//
// An SBOM may be very large, so the parser does not load the document into
// memory. It reads the input through a fixed-size window, and reports the
// top-level sections of the document one at a time as they occur.
//
// # Sections
//
// Construct a Parser from an io.Reader and call its Advance method to move
// to the next section. Advance reports a State naming the section:
//
//	JSON key                   | State          | Records
//	-------------------------- | -------------- | ---------------------
//	files                      | Files          | *File
//	packages                   | Packages       | *Package
//	relationships              | Relationships  | *Relationship
//	externalDocumentRefs       | References     | *ExternalDocumentRef
//	snippets                   | Snippets       | *Snippet
//	revieweds                  | Reviews        | *Review
//	annotations                | Annotations    | *Annotation
//	hasExtractedLicensingInfos | LicensingInfos | *ExtractedLicense
//
// Each section has a method returning an iter.Seq2 over its records, which
// are decoded and validated lazily as the caller ranges over them. The
// caller must drain each section before calling Advance again:
//
//	st, err := p.Advance()
//	if err != nil {
//	   log.Fatalf("Advance: %v", err)
//	}
//	if st == spdxstream.References {
//	   for ref, err := range p.References() {
//	      if err != nil {
//	         log.Fatalf("Reading references: %v", err)
//	      }
//	      log.Printf("Reference %s to %s", ref.DocumentRefID, ref.URI)
//	   }
//	}
//
// The document-level fields (spdxVersion, name, creationInfo, and so on)
// may appear anywhere in the root object. The parser collects them while
// scanning for sections, and reports the Document state after the root
// object is complete. Call Document to retrieve them. After that, Advance
// reports Finished.
//
// Sections listed in the skip argument of NewParser, and members of the
// root object the parser does not recognize, are discarded without
// decoding.
//
// # Errors
//
// Errors reported by the parser have concrete type *Error. The Kind field
// classifies the error, and each ErrorKind value is itself an error that
// matches with errors.Is:
//
//	if errors.Is(err, spdxstream.ErrValidation) {
//	   log.Printf("Invalid SBOM: %v", err)
//	}
//
// Once a parse error occurs, the parser is stopped and reports the same
// error from every subsequent call.
package spdxstream
