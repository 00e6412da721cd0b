// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream

import (
	_ "crypto/sha256" // register SHA256 for go-digest
	_ "crypto/sha512" // register SHA384 and SHA512 for go-digest
	"fmt"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/spdx/tools-golang/spdx/v2/common"
)

var digestAlgorithm = map[ChecksumAlgorithm]digest.Algorithm{
	common.SHA256: digest.SHA256,
	common.SHA384: digest.SHA384,
	common.SHA512: digest.SHA512,
}

// DigestOf converts a SHA-2 checksum into the equivalent content digest,
// e.g., "sha256:e3b0c4...". It reports an error if the algorithm has no
// digest form, or if the value is not a valid encoding for the algorithm.
func DigestOf(cs Checksum) (digest.Digest, error) {
	alg, ok := digestAlgorithm[cs.Algorithm]
	if !ok {
		return "", fmt.Errorf("no digest form for %s checksum", cs.Algorithm)
	}
	d := digest.NewDigestFromEncoded(alg, strings.ToLower(cs.Value))
	if err := d.Validate(); err != nil {
		return "", fmt.Errorf("invalid %s checksum: %w", cs.Algorithm, err)
	}
	return d, nil
}

// Digests returns the content digests of all the SHA-2 checksums in cs,
// in order. Checksums of other algorithms are ignored.
func Digests(cs []Checksum) ([]digest.Digest, error) {
	var out []digest.Digest
	for _, c := range cs {
		if _, ok := digestAlgorithm[c.Algorithm]; !ok {
			continue
		}
		d, err := DigestOf(c)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
