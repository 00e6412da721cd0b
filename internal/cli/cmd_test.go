// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/spdxstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

const sbomPath = "../../testdata/sbom.spdx.json"

const emptyDigest = "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func decodeNDJSON(t *testing.T, out string) []*Summary {
	t.Helper()
	var sums []*Summary
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var sum Summary
		require.NoError(t, dec.Decode(&sum))
		sums = append(sums, &sum)
	}
	return sums
}

func TestScanJSON(t *testing.T) {
	out, _, err := runCommand(t, "--output", "json", sbomPath)
	require.NoError(t, err)

	sums := decodeNDJSON(t, out)
	require.Len(t, sums, 1)
	assert.Equal(t, &Summary{
		File:     sbomPath,
		Document: "sample-sbom",
		Version:  "SPDX-2.2",
		Sections: map[string]int{
			"REFERENCES":      2,
			"FILES":           1,
			"PACKAGES":        1,
			"RELATIONSHIPS":   2,
			"SNIPPETS":        1,
			"REVIEWS":         1,
			"ANNOTATIONS":     1,
			"LICENSING_INFOS": 1,
		},
		Digests: []string{emptyDigest},
	}, sums[0])
}

func TestScanBufferSizes(t *testing.T) {
	want, _, err := runCommand(t, "-o", "json", sbomPath)
	require.NoError(t, err)
	for _, size := range []string{"1", "7", "64"} {
		got, _, err := runCommand(t, "-o", "json", "--buffer-size", size, sbomPath)
		require.NoError(t, err, "buffer size %s", size)
		assert.Equal(t, want, got, "buffer size %s", size)
	}
}

func TestScanYAML(t *testing.T) {
	out, _, err := runCommand(t, "-o", "yaml", sbomPath)
	require.NoError(t, err)

	var sum Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "sample-sbom", sum.Document)
	assert.Equal(t, 2, sum.Sections["RELATIONSHIPS"])
	assert.Equal(t, []string{emptyDigest}, sum.Digests)
}

func TestScanTable(t *testing.T) {
	out, _, err := runCommand(t, sbomPath)
	require.NoError(t, err)
	for _, want := range []string{"FILE", "sample-sbom", "REFERENCES", "LICENSING_INFOS", emptyDigest} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "REFERENCES"), strings.Index(out, "LICENSING_INFOS"))
}

func TestScanMultipleFiles(t *testing.T) {
	other := writeFile(t, "other.spdx.json", `{"packages": [{"name": "p"}], "name": "other"}`)
	out, _, err := runCommand(t, "-o", "json", "-j", "2", "--ignore-validation", sbomPath, other)
	require.NoError(t, err)

	sums := decodeNDJSON(t, out)
	require.Len(t, sums, 2)
	assert.Equal(t, sbomPath, sums[0].File)
	assert.Equal(t, other, sums[1].File)
	assert.Equal(t, "other", sums[1].Document)
	assert.Equal(t, map[string]int{"PACKAGES": 1}, sums[1].Sections)
}

func TestScanSkip(t *testing.T) {
	out, _, err := runCommand(t, "-o", "json", "--skip", "packages,RELATIONSHIPS,document", sbomPath)
	require.NoError(t, err)

	sums := decodeNDJSON(t, out)
	require.Len(t, sums, 1)
	assert.NotContains(t, sums[0].Sections, "PACKAGES")
	assert.NotContains(t, sums[0].Sections, "RELATIONSHIPS")
	assert.Contains(t, sums[0].Sections, "FILES")
	assert.Empty(t, sums[0].Document)
}

func TestScanConfig(t *testing.T) {
	cfg := writeFile(t, "scan.hujson", `{
  // Skip the big sections.
  "skip": ["packages", "relationships"],
  "output": "yaml",
  "bufferSize": 16,
}`)

	t.Run("FromFile", func(t *testing.T) {
		out, _, err := runCommand(t, "--config", cfg, sbomPath)
		require.NoError(t, err)

		var sum Summary
		require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
		assert.NotContains(t, sum.Sections, "PACKAGES")
		assert.Contains(t, sum.Sections, "SNIPPETS")
	})

	t.Run("FlagsOverride", func(t *testing.T) {
		out, _, err := runCommand(t, "--config", cfg, "-o", "json", "--skip", "snippets", sbomPath)
		require.NoError(t, err)

		sums := decodeNDJSON(t, out)
		require.Len(t, sums, 1)
		assert.Contains(t, sums[0].Sections, "PACKAGES")
		assert.NotContains(t, sums[0].Sections, "SNIPPETS")
	})

	t.Run("Missing", func(t *testing.T) {
		_, _, err := runCommand(t, "--config", filepath.Join(t.TempDir(), "nonesuch.hujson"), sbomPath)
		require.Error(t, err)
	})
}

func TestScanErrors(t *testing.T) {
	malformed := writeFile(t, "bad.spdx.json", `{"files": [{]}`)
	invalid := writeFile(t, "invalid.spdx.json", `{"files": [{"SPDXID": "SPDXRef-F"}]}`)

	tests := []struct {
		name string
		args []string
		kind error
	}{
		{"Malformed", []string{malformed}, spdxstream.ErrMalformedJSON},
		{"Invalid", []string{invalid}, spdxstream.ErrValidation},
		{"NoSuchFile", []string{filepath.Join(t.TempDir(), "nonesuch.json")}, os.ErrNotExist},
		{"BadOutput", []string{"-o", "xml", sbomPath}, nil},
		{"BadSkip", []string{"--skip", "bogus", sbomPath}, nil},
		{"BadBufferSize", []string{"--buffer-size", "0", sbomPath}, nil},
		{"BadLogLevel", []string{"--loglevel", "loud", sbomPath}, nil},
		{"BadLogFormat", []string{"--logformat", "xml", sbomPath}, nil},
		{"NoArgs", nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runCommand(t, tc.args...)
			require.Error(t, err)
			if tc.kind != nil {
				assert.ErrorIs(t, err, tc.kind)
			}
		})
	}

	t.Run("IgnoreValidation", func(t *testing.T) {
		out, _, err := runCommand(t, "-o", "json", "--ignore-validation", invalid)
		require.NoError(t, err)
		sums := decodeNDJSON(t, out)
		require.Len(t, sums, 1)
		assert.Equal(t, map[string]int{"FILES": 1}, sums[0].Sections)
	})
}

func TestScanLogging(t *testing.T) {
	_, stderr, err := runCommand(t, "-o", "json", "--loglevel", "debug", "--logformat", "json", sbomPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"enter section"`)
	assert.Contains(t, stderr, `"file":"`+sbomPath+`"`)
	assert.Contains(t, stderr, `"msg":"scan complete"`)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
  /* Settings for CI. */
  "ignoreValidation": true,
  "jobs": 2,
  "logLevel": "debug", // noisy
}`))
	require.NoError(t, err)
	assert.Equal(t, &Config{IgnoreValidation: true, Jobs: 2, LogLevel: "debug"}, cfg)

	_, err = ParseConfig([]byte(`{"jobs": }`))
	require.Error(t, err)

	_, err = ParseConfig([]byte(`{"jobs": "many"}`))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatText} {
		for _, level := range []string{LevelDebug, LevelInfo, LevelWarn, LevelError} {
			lg, err := newLogger(&bytes.Buffer{}, format, level)
			require.NoError(t, err)
			assert.NotNil(t, lg)
		}
	}
	_, err := newLogger(&bytes.Buffer{}, "xml", LevelInfo)
	require.Error(t, err)
	_, err = newLogger(&bytes.Buffer{}, FormatText, "verbose")
	require.Error(t, err)
}
