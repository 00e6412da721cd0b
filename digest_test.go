// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package spdxstream_test

import (
	"testing"

	"github.com/creachadair/spdxstream"
	"github.com/google/go-cmp/cmp"
	"github.com/opencontainers/go-digest"
)

const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestDigestOf(t *testing.T) {
	tests := []struct {
		alg, value string
		want       digest.Digest
		ok         bool
	}{
		{"SHA256", emptySHA256, "sha256:" + emptySHA256, true},
		{"SHA256", "E3B0C44298FC1C149AFBF4C8996FB92427AE41E4649B934CA495991B7852B855", "sha256:" + emptySHA256, true},
		{"SHA512", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce" +
			"47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
			"sha512:cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce" +
				"47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e", true},
		{"SHA256", "e3b0c442", "", false},
		{"SHA256", "not hex at all", "", false},
		{"SHA1", "da39a3ee5e6b4b0d3255bfef95601890afd80709", "", false},
		{"MD5", "d41d8cd98f00b204e9800998ecf8427e", "", false},
	}
	for _, tc := range tests {
		cs := spdxstream.Checksum{Algorithm: spdxstream.ChecksumAlgorithm(tc.alg), Value: tc.value}
		got, err := spdxstream.DigestOf(cs)
		if tc.ok {
			if err != nil {
				t.Errorf("DigestOf(%v): unexpected error: %v", cs, err)
			} else if got != tc.want {
				t.Errorf("DigestOf(%v): got %q, want %q", cs, got, tc.want)
			}
		} else if err == nil {
			t.Errorf("DigestOf(%v): got %q, want error", cs, got)
		}
	}
}

func TestDigests(t *testing.T) {
	got, err := spdxstream.Digests([]spdxstream.Checksum{
		{Algorithm: "SHA1", Value: "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{Algorithm: "SHA256", Value: emptySHA256},
		{Algorithm: "MD5", Value: "d41d8cd98f00b204e9800998ecf8427e"},
	})
	if err != nil {
		t.Fatalf("Digests: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]digest.Digest{"sha256:" + emptySHA256}, got); diff != "" {
		t.Errorf("Digests (-want, +got):\n%s", diff)
	}

	if got, err := spdxstream.Digests([]spdxstream.Checksum{{Algorithm: "SHA384", Value: "00"}}); err == nil {
		t.Errorf("Digests: got %v, want error", got)
	}
}
