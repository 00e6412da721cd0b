// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream

import "github.com/spdx/tools-golang/spdx/v2/common"

// A Checksum is an algorithm name and the hex-encoded digest it produced.
type Checksum = common.Checksum

// A ChecksumAlgorithm names the algorithm of a Checksum, e.g., "SHA1".
type ChecksumAlgorithm = common.ChecksumAlgorithm

// DocumentInfo is the document-level metadata of an SPDX document.
type DocumentInfo struct {
	SPDXVersion       string       `json:"spdxVersion,omitempty"`
	DataLicense       string       `json:"dataLicense,omitempty"`
	SPDXID            string       `json:"SPDXID,omitempty"`
	Name              string       `json:"name,omitempty"`
	DocumentNamespace string       `json:"documentNamespace,omitempty"`
	Comment           string       `json:"comment,omitempty"`
	CreationInfo      CreationInfo `json:"creationInfo"`
	DocumentDescribes []string     `json:"documentDescribes,omitempty"`
}

// CreationInfo records who created a document, and when.
type CreationInfo struct {
	Created            string   `json:"created,omitempty"`
	Creators           []string `json:"creators,omitempty"`
	LicenseListVersion string   `json:"licenseListVersion,omitempty"`
	Comment            string   `json:"comment,omitempty"`
}

// An ExternalDocumentRef refers to another SPDX document.
type ExternalDocumentRef struct {
	DocumentRefID string     `json:"externalDocumentId,omitempty"`
	URI           string     `json:"spdxDocument,omitempty"`
	Checksums     []Checksum `json:"checksum,omitempty"`
}

// Checksum returns the value of the first checksum of r with the given
// algorithm, and reports whether one was found.
func (r *ExternalDocumentRef) Checksum(alg ChecksumAlgorithm) (string, bool) {
	return findChecksum(r.Checksums, alg)
}

// A File describes one file of the software described by a document.
type File struct {
	SPDXID             string     `json:"SPDXID,omitempty"`
	FileName           string     `json:"fileName,omitempty"`
	FileTypes          []string   `json:"fileTypes,omitempty"`
	Checksums          []Checksum `json:"checksums,omitempty"`
	LicenseConcluded   string     `json:"licenseConcluded,omitempty"`
	LicenseInfoInFiles []string   `json:"licenseInfoInFiles,omitempty"`
	LicenseComments    string     `json:"licenseComments,omitempty"`
	CopyrightText      string     `json:"copyrightText,omitempty"`
	Comment            string     `json:"comment,omitempty"`
	NoticeText         string     `json:"noticeText,omitempty"`
	FileContributors   []string   `json:"fileContributors,omitempty"`
	AttributionTexts   []string   `json:"attributionTexts,omitempty"`
}

// A Package describes one package of the software described by a document.
type Package struct {
	SPDXID               string            `json:"SPDXID,omitempty"`
	Name                 string            `json:"name,omitempty"`
	VersionInfo          string            `json:"versionInfo,omitempty"`
	PackageFileName      string            `json:"packageFileName,omitempty"`
	Supplier             string            `json:"supplier,omitempty"`
	Originator           string            `json:"originator,omitempty"`
	DownloadLocation     string            `json:"downloadLocation,omitempty"`
	FilesAnalyzed        *bool             `json:"filesAnalyzed,omitempty"`
	VerificationCode     *VerificationCode `json:"packageVerificationCode,omitempty"`
	Checksums            []Checksum        `json:"checksums,omitempty"`
	Homepage             string            `json:"homepage,omitempty"`
	SourceInfo           string            `json:"sourceInfo,omitempty"`
	LicenseConcluded     string            `json:"licenseConcluded,omitempty"`
	LicenseInfoFromFiles []string          `json:"licenseInfoFromFiles,omitempty"`
	LicenseDeclared      string            `json:"licenseDeclared,omitempty"`
	LicenseComments      string            `json:"licenseComments,omitempty"`
	CopyrightText        string            `json:"copyrightText,omitempty"`
	Summary              string            `json:"summary,omitempty"`
	Description          string            `json:"description,omitempty"`
	Comment              string            `json:"comment,omitempty"`
	ExternalRefs         []ExternalRef     `json:"externalRefs,omitempty"`
	HasFiles             []string          `json:"hasFiles,omitempty"`
	AttributionTexts     []string          `json:"attributionTexts,omitempty"`
}

// VerificationCode is the package verification code of a Package.
type VerificationCode struct {
	Value         string   `json:"packageVerificationCodeValue,omitempty"`
	ExcludedFiles []string `json:"packageVerificationCodeExcludedFiles,omitempty"`
}

// An ExternalRef is a reference from a Package to an external resource,
// such as a package URL.
type ExternalRef struct {
	Category string `json:"referenceCategory,omitempty"`
	Type     string `json:"referenceType,omitempty"`
	Locator  string `json:"referenceLocator,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// A Relationship connects two SPDX elements.
type Relationship struct {
	Element string `json:"spdxElementId,omitempty"`
	Type    string `json:"relationshipType,omitempty"`
	Related string `json:"relatedSpdxElement,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// A Snippet describes a portion of a file.
type Snippet struct {
	SPDXID                string         `json:"SPDXID,omitempty"`
	Name                  string         `json:"name,omitempty"`
	FromFile              string         `json:"snippetFromFile,omitempty"`
	Ranges                []SnippetRange `json:"ranges,omitempty"`
	LicenseConcluded      string         `json:"licenseConcluded,omitempty"`
	LicenseInfoInSnippets []string       `json:"licenseInfoInSnippets,omitempty"`
	LicenseComments       string         `json:"licenseComments,omitempty"`
	CopyrightText         string         `json:"copyrightText,omitempty"`
	Comment               string         `json:"comment,omitempty"`
	AttributionTexts      []string       `json:"attributionTexts,omitempty"`
}

// A SnippetRange is the extent of a Snippet within its file.
type SnippetRange struct {
	Start Pointer `json:"startPointer"`
	End   Pointer `json:"endPointer"`
}

// A Pointer is a position in a file, given as a byte offset or a line
// number or both.
type Pointer struct {
	Reference  string `json:"reference,omitempty"`
	Offset     *int64 `json:"offset,omitempty"`
	LineNumber *int64 `json:"lineNumber,omitempty"`
}

// A Review records a review of the document.
type Review struct {
	Reviewer string `json:"reviewer,omitempty"`
	Date     string `json:"reviewDate,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// An Annotation is a comment on an SPDX element by a person or tool.
type Annotation struct {
	SPDXID    string `json:"SPDXID,omitempty"`
	Annotator string `json:"annotator,omitempty"`
	Date      string `json:"annotationDate,omitempty"`
	Type      string `json:"annotationType,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

// An ExtractedLicense is the text of a license not on the SPDX license list.
type ExtractedLicense struct {
	LicenseID     string   `json:"licenseId,omitempty"`
	ExtractedText string   `json:"extractedText,omitempty"`
	Name          string   `json:"name,omitempty"`
	Comment       string   `json:"comment,omitempty"`
	SeeAlsos      []string `json:"seeAlsos,omitempty"`
}

func findChecksum(cs []Checksum, alg ChecksumAlgorithm) (string, bool) {
	for _, c := range cs {
		if c.Algorithm == alg {
			return c.Value, true
		}
	}
	return "", false
}
