// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream

import "github.com/creachadair/spdxstream/internal/cursor"

// decodeObject reads a JSON object from c, calling member with the name of
// each member after its colon is consumed. If member reports false, the
// value of that member is skipped. The key is only valid until member reads
// from c.
func decodeObject(c *cursor.Cursor, member func(key []byte) (bool, error)) error {
	if err := c.Begin(cursor.LBrace); err != nil {
		return err
	}
	for {
		more, err := c.More()
		if err != nil {
			return err
		} else if !more {
			return nil
		}
		key, err := c.ReadKey()
		if err != nil {
			return err
		}
		if ok, err := member(key); err != nil {
			return err
		} else if !ok {
			if err := c.Skip(); err != nil {
				return err
			}
		}
	}
}

// decodeArray reads a JSON array from c, calling elem for each element.
// A null value is treated as an empty array.
func decodeArray(c *cursor.Cursor, elem func() error) error {
	if ok, err := isNull(c); err != nil || ok {
		return err
	}
	if err := c.Begin(cursor.LSquare); err != nil {
		return err
	}
	for {
		more, err := c.More()
		if err != nil {
			return err
		} else if !more {
			return nil
		}
		if err := elem(); err != nil {
			return err
		}
	}
}

// isNull consumes a null value from c, if the next value is null.
func isNull(c *cursor.Cursor) (bool, error) {
	tok, err := c.Peek()
	if err != nil || tok != cursor.Null {
		return false, err
	}
	return true, c.ReadNull()
}

// optString reads a string into *dst. A null value leaves *dst empty.
func optString(c *cursor.Cursor, dst *string) error {
	if ok, err := isNull(c); err != nil || ok {
		return err
	}
	s, err := c.ReadString()
	*dst = s
	return err
}

// stringList reads an array of strings into *dst.
func stringList(c *cursor.Cursor, dst *[]string) error {
	return decodeArray(c, func() error {
		s, err := c.ReadString()
		if err != nil {
			return err
		}
		*dst = append(*dst, s)
		return nil
	})
}

func optBool(c *cursor.Cursor, dst **bool) error {
	if ok, err := isNull(c); err != nil || ok {
		return err
	}
	v, err := c.ReadBool()
	if err != nil {
		return err
	}
	*dst = &v
	return nil
}

func optInt(c *cursor.Cursor, dst **int64) error {
	if ok, err := isNull(c); err != nil || ok {
		return err
	}
	v, err := c.ReadInt()
	if err != nil {
		return err
	}
	*dst = &v
	return nil
}

func decodeChecksum(c *cursor.Cursor) (Checksum, error) {
	var cs Checksum
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "algorithm":
			var alg string
			err := optString(c, &alg)
			cs.Algorithm = ChecksumAlgorithm(alg)
			return true, err
		case "checksumValue":
			return true, optString(c, &cs.Value)
		}
		return false, nil
	})
	return cs, err
}

// checksumList reads an array of checksum objects into *dst.
func checksumList(c *cursor.Cursor, dst *[]Checksum) error {
	return decodeArray(c, func() error {
		cs, err := decodeChecksum(c)
		if err != nil {
			return err
		}
		*dst = append(*dst, cs)
		return nil
	})
}

// checksumSet reads either a single checksum object or an array of them
// into *dst.
func checksumSet(c *cursor.Cursor, dst *[]Checksum) error {
	tok, err := c.Peek()
	if err != nil {
		return err
	}
	switch tok {
	case cursor.LBrace:
		cs, err := decodeChecksum(c)
		if err != nil {
			return err
		}
		*dst = append(*dst, cs)
		return nil
	case cursor.LSquare, cursor.Null:
		return checksumList(c, dst)
	default:
		return malformed(c, "checksum must be an object or array, not %v", tok)
	}
}

func decodeReference(c *cursor.Cursor) (*ExternalDocumentRef, error) {
	var ref ExternalDocumentRef
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "externalDocumentId":
			return true, optString(c, &ref.DocumentRefID)
		case "spdxDocument":
			return true, optString(c, &ref.URI)
		case "checksum":
			return true, checksumSet(c, &ref.Checksums)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func decodeFile(c *cursor.Cursor) (*File, error) {
	var f File
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "SPDXID":
			return true, optString(c, &f.SPDXID)
		case "fileName":
			return true, optString(c, &f.FileName)
		case "fileTypes":
			return true, stringList(c, &f.FileTypes)
		case "checksums":
			return true, checksumList(c, &f.Checksums)
		case "licenseConcluded":
			return true, optString(c, &f.LicenseConcluded)
		case "licenseInfoInFiles":
			return true, stringList(c, &f.LicenseInfoInFiles)
		case "licenseComments":
			return true, optString(c, &f.LicenseComments)
		case "copyrightText":
			return true, optString(c, &f.CopyrightText)
		case "comment":
			return true, optString(c, &f.Comment)
		case "noticeText":
			return true, optString(c, &f.NoticeText)
		case "fileContributors":
			return true, stringList(c, &f.FileContributors)
		case "attributionTexts":
			return true, stringList(c, &f.AttributionTexts)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func decodePackage(c *cursor.Cursor) (*Package, error) {
	var pkg Package
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "SPDXID":
			return true, optString(c, &pkg.SPDXID)
		case "name":
			return true, optString(c, &pkg.Name)
		case "versionInfo":
			return true, optString(c, &pkg.VersionInfo)
		case "packageFileName":
			return true, optString(c, &pkg.PackageFileName)
		case "supplier":
			return true, optString(c, &pkg.Supplier)
		case "originator":
			return true, optString(c, &pkg.Originator)
		case "downloadLocation":
			return true, optString(c, &pkg.DownloadLocation)
		case "filesAnalyzed":
			return true, optBool(c, &pkg.FilesAnalyzed)
		case "packageVerificationCode":
			return true, decodeVerificationCode(c, &pkg.VerificationCode)
		case "checksums":
			return true, checksumList(c, &pkg.Checksums)
		case "homepage":
			return true, optString(c, &pkg.Homepage)
		case "sourceInfo":
			return true, optString(c, &pkg.SourceInfo)
		case "licenseConcluded":
			return true, optString(c, &pkg.LicenseConcluded)
		case "licenseInfoFromFiles":
			return true, stringList(c, &pkg.LicenseInfoFromFiles)
		case "licenseDeclared":
			return true, optString(c, &pkg.LicenseDeclared)
		case "licenseComments":
			return true, optString(c, &pkg.LicenseComments)
		case "copyrightText":
			return true, optString(c, &pkg.CopyrightText)
		case "summary":
			return true, optString(c, &pkg.Summary)
		case "description":
			return true, optString(c, &pkg.Description)
		case "comment":
			return true, optString(c, &pkg.Comment)
		case "externalRefs":
			return true, decodeArray(c, func() error {
				ref, err := decodeExternalRef(c)
				if err != nil {
					return err
				}
				pkg.ExternalRefs = append(pkg.ExternalRefs, ref)
				return nil
			})
		case "hasFiles":
			return true, stringList(c, &pkg.HasFiles)
		case "attributionTexts":
			return true, stringList(c, &pkg.AttributionTexts)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func decodeVerificationCode(c *cursor.Cursor, dst **VerificationCode) error {
	if ok, err := isNull(c); err != nil || ok {
		return err
	}
	var vc VerificationCode
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "packageVerificationCodeValue":
			return true, optString(c, &vc.Value)
		case "packageVerificationCodeExcludedFiles":
			return true, stringList(c, &vc.ExcludedFiles)
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	*dst = &vc
	return nil
}

func decodeExternalRef(c *cursor.Cursor) (ExternalRef, error) {
	var ref ExternalRef
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "referenceCategory":
			return true, optString(c, &ref.Category)
		case "referenceType":
			return true, optString(c, &ref.Type)
		case "referenceLocator":
			return true, optString(c, &ref.Locator)
		case "comment":
			return true, optString(c, &ref.Comment)
		}
		return false, nil
	})
	return ref, err
}

func decodeRelationship(c *cursor.Cursor) (*Relationship, error) {
	var rel Relationship
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "spdxElementId":
			return true, optString(c, &rel.Element)
		case "relationshipType":
			return true, optString(c, &rel.Type)
		case "relatedSpdxElement":
			return true, optString(c, &rel.Related)
		case "comment":
			return true, optString(c, &rel.Comment)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func decodeSnippet(c *cursor.Cursor) (*Snippet, error) {
	var snip Snippet
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "SPDXID":
			return true, optString(c, &snip.SPDXID)
		case "name":
			return true, optString(c, &snip.Name)
		case "snippetFromFile":
			return true, optString(c, &snip.FromFile)
		case "ranges":
			return true, decodeArray(c, func() error {
				rng, err := decodeRange(c)
				if err != nil {
					return err
				}
				snip.Ranges = append(snip.Ranges, rng)
				return nil
			})
		case "licenseConcluded":
			return true, optString(c, &snip.LicenseConcluded)
		case "licenseInfoInSnippets":
			return true, stringList(c, &snip.LicenseInfoInSnippets)
		case "licenseComments":
			return true, optString(c, &snip.LicenseComments)
		case "copyrightText":
			return true, optString(c, &snip.CopyrightText)
		case "comment":
			return true, optString(c, &snip.Comment)
		case "attributionTexts":
			return true, stringList(c, &snip.AttributionTexts)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &snip, nil
}

func decodeRange(c *cursor.Cursor) (SnippetRange, error) {
	var rng SnippetRange
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "startPointer":
			return true, decodePointer(c, &rng.Start)
		case "endPointer":
			return true, decodePointer(c, &rng.End)
		}
		return false, nil
	})
	return rng, err
}

func decodePointer(c *cursor.Cursor, ptr *Pointer) error {
	return decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "reference":
			return true, optString(c, &ptr.Reference)
		case "offset":
			return true, optInt(c, &ptr.Offset)
		case "lineNumber":
			return true, optInt(c, &ptr.LineNumber)
		}
		return false, nil
	})
}

func decodeReview(c *cursor.Cursor) (*Review, error) {
	var rev Review
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "reviewer":
			return true, optString(c, &rev.Reviewer)
		case "reviewDate":
			return true, optString(c, &rev.Date)
		case "comment":
			return true, optString(c, &rev.Comment)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func decodeAnnotation(c *cursor.Cursor) (*Annotation, error) {
	var ann Annotation
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "SPDXID":
			return true, optString(c, &ann.SPDXID)
		case "annotator":
			return true, optString(c, &ann.Annotator)
		case "annotationDate":
			return true, optString(c, &ann.Date)
		case "annotationType":
			return true, optString(c, &ann.Type)
		case "comment":
			return true, optString(c, &ann.Comment)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &ann, nil
}

func decodeLicense(c *cursor.Cursor) (*ExtractedLicense, error) {
	var lic ExtractedLicense
	err := decodeObject(c, func(key []byte) (bool, error) {
		switch string(key) {
		case "licenseId":
			return true, optString(c, &lic.LicenseID)
		case "extractedText":
			return true, optString(c, &lic.ExtractedText)
		case "name":
			return true, optString(c, &lic.Name)
		case "comment":
			return true, optString(c, &lic.Comment)
		case "seeAlsos":
			return true, stringList(c, &lic.SeeAlsos)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &lic, nil
}

// readMetadata decodes the value of the top-level member key into the
// document metadata of p, and reports whether key is a metadata key.
func (p *Parser) readMetadata(key []byte) (bool, error) {
	c, doc := p.cur, &p.doc
	switch string(key) {
	case "spdxVersion":
		return true, optString(c, &doc.SPDXVersion)
	case "dataLicense":
		return true, optString(c, &doc.DataLicense)
	case "SPDXID":
		return true, optString(c, &doc.SPDXID)
	case "name":
		return true, optString(c, &doc.Name)
	case "documentNamespace":
		return true, optString(c, &doc.DocumentNamespace)
	case "comment":
		return true, optString(c, &doc.Comment)
	case "documentDescribes":
		return true, stringList(c, &doc.DocumentDescribes)
	case "creationInfo":
		ci := &doc.CreationInfo
		return true, decodeObject(c, func(key []byte) (bool, error) {
			switch string(key) {
			case "created":
				return true, optString(c, &ci.Created)
			case "creators":
				return true, stringList(c, &ci.Creators)
			case "licenseListVersion":
				return true, optString(c, &ci.LicenseListVersion)
			case "comment":
				return true, optString(c, &ci.Comment)
			}
			return false, nil
		})
	}
	return false, nil
}
