// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream

import (
	"slices"

	"github.com/spdx/tools-golang/spdx/v2/common"
)

// SPDXVersion is the only document version accepted by validation.
const SPDXVersion = "SPDX-2.2"

// A rule asserts that a required field is present.
type rule struct {
	field string // JSON name of the field
	ok    bool
}

// require reports a validation error for the first rule that fails.
// An empty string or list counts as missing.
func require(rules ...rule) error {
	for _, r := range rules {
		if !r.ok {
			return &Error{Kind: ErrValidation, Field: r.field}
		}
	}
	return nil
}

// hasSHA1 reports whether cs has a SHA1 entry with a non-empty value.
func hasSHA1(cs []Checksum) bool {
	return slices.ContainsFunc(cs, func(c Checksum) bool {
		return c.Algorithm == common.SHA1 && c.Value != ""
	})
}

func validateReference(r *ExternalDocumentRef) error {
	return require(
		rule{"externalDocumentId", r.DocumentRefID != ""},
		rule{"spdxDocument", r.URI != ""},
		rule{"checksum", len(r.Checksums) != 0},
		rule{"checksum.SHA1", hasSHA1(r.Checksums)},
	)
}

func validateFile(f *File) error {
	return require(
		rule{"SPDXID", f.SPDXID != ""},
		rule{"fileName", f.FileName != ""},
		rule{"checksums", len(f.Checksums) != 0},
		rule{"checksums.SHA1", hasSHA1(f.Checksums)},
		rule{"licenseConcluded", f.LicenseConcluded != ""},
		rule{"licenseInfoInFiles", len(f.LicenseInfoInFiles) != 0},
		rule{"copyrightText", f.CopyrightText != ""},
	)
}

func validatePackage(p *Package) error {
	return require(
		rule{"SPDXID", p.SPDXID != ""},
		rule{"name", p.Name != ""},
		rule{"downloadLocation", p.DownloadLocation != ""},
		rule{"licenseConcluded", p.LicenseConcluded != ""},
		rule{"licenseDeclared", p.LicenseDeclared != ""},
		rule{"copyrightText", p.CopyrightText != ""},
	)
}

func validateRelationship(r *Relationship) error {
	return require(
		rule{"spdxElementId", r.Element != ""},
		rule{"relationshipType", r.Type != ""},
		rule{"relatedSpdxElement", r.Related != ""},
	)
}

func validateSnippet(s *Snippet) error {
	return require(
		rule{"SPDXID", s.SPDXID != ""},
		rule{"snippetFromFile", s.FromFile != ""},
		rule{"ranges", len(s.Ranges) != 0},
		rule{"licenseConcluded", s.LicenseConcluded != ""},
		rule{"copyrightText", s.CopyrightText != ""},
	)
}

func validateReview(r *Review) error {
	return require(
		rule{"reviewer", r.Reviewer != ""},
		rule{"reviewDate", r.Date != ""},
	)
}

func validateAnnotation(a *Annotation) error {
	return require(
		rule{"annotator", a.Annotator != ""},
		rule{"annotationDate", a.Date != ""},
		rule{"annotationType", a.Type != ""},
		rule{"comment", a.Comment != ""},
	)
}

func validateLicense(l *ExtractedLicense) error {
	return require(
		rule{"licenseId", l.LicenseID != ""},
		rule{"extractedText", l.ExtractedText != ""},
	)
}

func validateDocument(d *DocumentInfo) error {
	if err := require(
		rule{"spdxVersion", d.SPDXVersion != ""},
		rule{"dataLicense", d.DataLicense != ""},
		rule{"SPDXID", d.SPDXID != ""},
		rule{"name", d.Name != ""},
		rule{"documentNamespace", d.DocumentNamespace != ""},
		rule{"creationInfo.created", d.CreationInfo.Created != ""},
		rule{"creationInfo.creators", len(d.CreationInfo.Creators) != 0},
	); err != nil {
		err.(*Error).State = Document
		return err
	}
	if d.SPDXVersion != SPDXVersion {
		return &Error{
			Kind:    ErrValidation,
			State:   Document,
			Field:   "spdxVersion",
			Message: "unsupported version " + d.SPDXVersion,
		}
	}
	return nil
}
