// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config holds default settings for the scanner, as read from a config
// file. The file is JSON, optionally with comments and trailing commas:
//
//	{
//	  // Larger windows mean fewer reads.
//	  "bufferSize": 65536,
//	  "skip": ["relationships", "snippets"],
//	  "output": "yaml",
//	}
//
// Settings given as flags override those from the file.
type Config struct {
	BufferSize       int      `json:"bufferSize,omitempty"`
	IgnoreValidation bool     `json:"ignoreValidation,omitempty"`
	Skip             []string `json:"skip,omitempty"`
	Output           string   `json:"output,omitempty"`
	Jobs             int      `json:"jobs,omitempty"`
	LogLevel         string   `json:"logLevel,omitempty"`
	LogFormat        string   `json:"logFormat,omitempty"`
}

// LoadConfig reads and decodes the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q failed: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a config from HuJSON text.
func ParseConfig(data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config failed: %w", err)
	}
	return &cfg, nil
}
