// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/creachadair/spdxstream"
	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"
)

// Output format names accepted by the --output flag.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

func encodeSummaries(output string, sums []*Summary) ([]byte, error) {
	var data []byte
	var err error
	switch output {
	case OutputJSON:
		data, err = encodeSummariesAsNDJSON(sums)
	case OutputYAML:
		data, err = encodeSummariesAsYAML(sums)
	case OutputTable:
		data = encodeSummariesAsTable(sums)
	default:
		err = fmt.Errorf("unknown output format: %q", output)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding summaries as %q failed: %w", output, err)
	}
	return data, nil
}

func encodeSummariesAsNDJSON(sums []*Summary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, sum := range sums {
		if err := enc.Encode(sum); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func encodeSummariesAsYAML(sums []*Summary) ([]byte, error) {
	if len(sums) == 1 {
		return yaml.Marshal(sums[0])
	}
	return yaml.Marshal(sums)
}

func encodeSummariesAsTable(sums []*Summary) []byte {
	var buf bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.AppendHeader(table.Row{"File", "Document", "Section", "Records", "Digests"})
	for _, sum := range sums {
		for _, name := range sectionOrder(sum.Sections) {
			var digests string
			if name == spdxstream.References.String() {
				digests = strings.Join(sum.Digests, "\n")
			}
			t.AppendRow(table.Row{sum.File, sum.Document, name, sum.Sections[name], digests})
		}
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
	return buf.Bytes()
}

// sectionOrder returns the names of the sections in m, ordered by state.
func sectionOrder(m map[string]int) []string {
	var sts []spdxstream.State
	for name := range m {
		if st, err := spdxstream.ParseState(name); err == nil {
			sts = append(sts, st)
		}
	}
	slices.Sort(sts)
	names := make([]string, len(sts))
	for i, st := range sts {
		names[i] = st.String()
	}
	return names
}
