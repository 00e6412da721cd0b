// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cli implements the spdxscan command, which summarizes the
// sections of SPDX 2.2 JSON documents.
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/creachadair/spdxstream"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	slogcontext "github.com/veqryn/slog-context"
)

// Flag names.
const (
	FlagBufferSize       = "buffer-size"
	FlagIgnoreValidation = "ignore-validation"
	FlagSkip             = "skip"
	FlagOutput           = "output"
	FlagJobs             = "jobs"
	FlagConfig           = "config"
	FlagLogLevel         = "loglevel"
	FlagLogFormat        = "logformat"
)

// defaults are the settings used when neither a flag nor the config file
// provides a value.
var defaults = Config{
	BufferSize: spdxstream.DefaultBufferSize,
	Output:     OutputTable,
	Jobs:       4,
	LogLevel:   LevelWarn,
	LogFormat:  FormatText,
}

// New constructs the spdxscan command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spdxscan [flags] FILE...",
		Short: "Summarize SPDX 2.2 JSON documents",
		Long: `Read one or more SPDX 2.2 JSON documents and report the number of records
in each section, the document name, and the content digests of the SHA-2
checksums of external document references.

Documents are read incrementally, so files of any size can be scanned.
Required fields of each record are checked unless --ignore-validation is set.`,
		Example: strings.TrimSpace(`
spdxscan sbom.spdx.json
spdxscan --output yaml --skip relationships,snippets a.spdx.json b.spdx.json
spdxscan --config scan.hujson --jobs 8 *.spdx.json
`),
		Args:         cobra.MinimumNArgs(1),
		RunE:         runScan,
		SilenceUsage: true,
	}

	fs := cmd.Flags()
	fs.Int(FlagBufferSize, defaults.BufferSize, "size in bytes of the parser read window")
	fs.Bool(FlagIgnoreValidation, false, "do not check records for required fields")
	fs.StringSlice(FlagSkip, nil, "sections to skip without decoding (e.g. packages,snippets)")
	fs.StringP(FlagOutput, "o", defaults.Output, "output format: table, json, or yaml")
	fs.IntP(FlagJobs, "j", defaults.Jobs, "maximum number of files to scan concurrently")
	fs.String(FlagConfig, "", "path of a HuJSON config file holding default settings")
	fs.String(FlagLogLevel, defaults.LogLevel, "log level: debug, info, warn, or error")
	fs.String(FlagLogFormat, defaults.LogFormat, "log format: text or json")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if !slices.Contains([]string{OutputTable, OutputJSON, OutputYAML}, cfg.Output) {
		return fmt.Errorf("invalid output format %q", cfg.Output)
	}
	opts, err := cfg.scanOptions()
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	ctx := slogcontext.NewCtx(cmd.Context(), logger)

	sums, err := scanFiles(ctx, args, cfg.Jobs, opts)
	if err != nil {
		return err
	}
	data, err := encodeSummaries(cfg.Output, sums)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// resolveConfig merges the defaults, the config file named by the flags
// (if any), and the flags that were explicitly set, in that order.
func resolveConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := defaults
	if path, _ := fs.GetString(FlagConfig); path != "" {
		fc, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(fc)
	}

	var err error
	set := func(name string, f func() error) {
		if err == nil && fs.Changed(name) {
			err = f()
		}
	}
	set(FlagBufferSize, func() (e error) { cfg.BufferSize, e = fs.GetInt(FlagBufferSize); return })
	set(FlagIgnoreValidation, func() (e error) { cfg.IgnoreValidation, e = fs.GetBool(FlagIgnoreValidation); return })
	set(FlagSkip, func() (e error) { cfg.Skip, e = fs.GetStringSlice(FlagSkip); return })
	set(FlagOutput, func() (e error) { cfg.Output, e = fs.GetString(FlagOutput); return })
	set(FlagJobs, func() (e error) { cfg.Jobs, e = fs.GetInt(FlagJobs); return })
	set(FlagLogLevel, func() (e error) { cfg.LogLevel, e = fs.GetString(FlagLogLevel); return })
	set(FlagLogFormat, func() (e error) { cfg.LogFormat, e = fs.GetString(FlagLogFormat); return })
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge copies the non-zero settings of o into c.
func (c *Config) merge(o *Config) {
	if o.BufferSize != 0 {
		c.BufferSize = o.BufferSize
	}
	if o.IgnoreValidation {
		c.IgnoreValidation = true
	}
	if len(o.Skip) != 0 {
		c.Skip = o.Skip
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Jobs != 0 {
		c.Jobs = o.Jobs
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
}

func (c *Config) scanOptions() (scanOptions, error) {
	if c.BufferSize <= 0 {
		return scanOptions{}, fmt.Errorf("invalid buffer size %d", c.BufferSize)
	}
	opts := scanOptions{bufSize: c.BufferSize, ignoreValidation: c.IgnoreValidation}
	for _, name := range c.Skip {
		st, err := spdxstream.ParseState(name)
		if err != nil {
			return scanOptions{}, err
		} else if st == spdxstream.None || st == spdxstream.Finished {
			return scanOptions{}, fmt.Errorf("cannot skip %v", st)
		}
		opts.skip = append(opts.skip, st)
	}
	return opts, nil
}
