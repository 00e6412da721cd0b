// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/spdxstream"
)

// benchInput returns a synthetic SPDX document with n packages, n files,
// and n relationships.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"spdxVersion": "SPDX-2.2", "dataLicense": "CC0-1.0", "SPDXID": "SPDXRef-DOCUMENT",
"name": "bench", "documentNamespace": "https://example.com/bench",
"creationInfo": {"created": "2026-01-01T00:00:00Z", "creators": ["Tool: bench"]},
"packages": [`)
	for i := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"SPDXID": "SPDXRef-Package-%[1]d", "name": "pkg-%[1]d", "versionInfo": "1.%[1]d.0",
"downloadLocation": "NOASSERTION", "licenseConcluded": "MIT", "licenseDeclared": "MIT",
"copyrightText": "NOASSERTION", "externalRefs": [{"referenceCategory": "PACKAGE-MANAGER",
"referenceType": "purl", "referenceLocator": "pkg:golang/example.com/pkg-%[1]d@v1.%[1]d.0"}]}`, i)
	}
	buf.WriteString(`], "files": [`)
	for i := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"SPDXID": "SPDXRef-File-%[1]d", "fileName": "./f%[1]d.go",
"checksums": [{"algorithm": "SHA1", "checksumValue": "%040[1]x"}],
"licenseConcluded": "MIT", "licenseInfoInFiles": ["MIT"], "copyrightText": "NOASSERTION"}`, i)
	}
	buf.WriteString(`], "relationships": [`)
	for i := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"spdxElementId": "SPDXRef-Package-%[1]d", "relationshipType": "CONTAINS",
"relatedSpdxElement": "SPDXRef-File-%[1]d"}`, i)
	}
	buf.WriteString("]}")
	return buf.Bytes()
}

func TestBenchInput(t *testing.T) {
	input := benchInput(25)
	p, err := spdxstream.NewParser(bytes.NewReader(input), nil)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	secs, err := readAll(p)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, sec := range secs {
		if sec.State != spdxstream.Document && len(sec.Records) != 25 {
			t.Errorf("Section %v: got %d records, want 25", sec.State, len(sec.Records))
		}
	}
}

func BenchmarkParser(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	for _, size := range []int{512, spdxstream.DefaultBufferSize, 1 << 16} {
		b.Run(fmt.Sprintf("Parser-%d", size), func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			for b.Loop() {
				p, err := spdxstream.NewParser(bytes.NewReader(input), nil, spdxstream.WithBufferSize(size))
				if err != nil {
					b.Fatalf("NewParser: %v", err)
				}
				if _, err := readAll(p); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})
	}
}
