// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creachadair/spdxstream"
	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"
)

// A Summary describes the contents of one SPDX document.
type Summary struct {
	File     string         `json:"file"`
	Document string         `json:"document,omitempty"`
	Version  string         `json:"spdxVersion,omitempty"`
	Sections map[string]int `json:"sections"`

	// Content digests of the SHA-2 checksums of external document references.
	Digests []string `json:"digests,omitempty"`
}

// scanOptions are the parser settings shared by all scanned files.
type scanOptions struct {
	bufSize          int
	ignoreValidation bool
	skip             []spdxstream.State
}

func (o scanOptions) parserOptions(lg *slog.Logger) []spdxstream.Option {
	opts := []spdxstream.Option{
		spdxstream.IgnoreValidation(o.ignoreValidation),
		spdxstream.WithLogger(lg),
	}
	if o.bufSize != 0 {
		opts = append(opts, spdxstream.WithBufferSize(o.bufSize))
	}
	return opts
}

// scanFiles summarizes the SPDX documents at paths, scanning up to jobs of
// them concurrently. The summaries are returned in the order of paths. If
// any file fails, the remaining scans are cancelled.
func scanFiles(ctx context.Context, paths []string, jobs int, opts scanOptions) ([]*Summary, error) {
	out := make([]*Summary, len(paths))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(jobs, 1))
	for i, path := range paths {
		eg.Go(func() error {
			sum, err := scanFile(slogcontext.With(egctx, "file", path), path, opts)
			if err != nil {
				return fmt.Errorf("scanning %q failed: %w", path, err)
			}
			out[i] = sum
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanFile reads the SPDX document at path and summarizes its sections.
func scanFile(ctx context.Context, path string, opts scanOptions) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scan(ctx, f, path, opts)
}

func scan(ctx context.Context, r io.Reader, name string, opts scanOptions) (*Summary, error) {
	logger := slogcontext.FromCtx(ctx)
	p, err := spdxstream.NewParser(r, opts.skip, opts.parserOptions(logger)...)
	if err != nil {
		return nil, err
	}

	sum := &Summary{File: name, Sections: make(map[string]int)}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := p.Advance()
		if err != nil {
			return nil, err
		}
		switch st {
		case spdxstream.Finished:
			slogcontext.Log(ctx, slog.LevelInfo, "scan complete", "sections", len(sum.Sections))
			return sum, nil

		case spdxstream.Document:
			doc, err := p.Document()
			if err != nil {
				return nil, err
			}
			sum.Document, sum.Version = doc.Name, doc.SPDXVersion

		case spdxstream.References:
			var n int
			for ref, err := range p.References() {
				if err != nil {
					return nil, err
				}
				n++
				ds, err := spdxstream.Digests(ref.Checksums)
				if err != nil {
					slogcontext.Log(ctx, slog.LevelWarn, "invalid checksum",
						"ref", ref.DocumentRefID, "error", err.Error())
					continue
				}
				for _, d := range ds {
					sum.Digests = append(sum.Digests, d.String())
				}
			}
			sum.Sections[st.String()] = n

		default:
			var n int
			for _, err := range p.Records() {
				if err != nil {
					return nil, err
				}
				n++
			}
			sum.Sections[st.String()] = n
		}
		slogcontext.Log(ctx, slog.LevelDebug, "read section", "state", st)
	}
}
