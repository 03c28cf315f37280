package main

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
)

// expectedCounts is one scenario's section of the golden archive:
// diagnostic kind name to expected occurrence count.
type expectedCounts map[diagnostics.Kind]int

// parseGolden reads a txtar archive whose file names are scenario names
// and whose bodies are "Kind: count" lines, one per expected
// diagnostic. A scenario absent from the archive is treated as having
// no golden expectations and is skipped by compareGolden.
func parseGolden(data []byte) (map[string]expectedCounts, error) {
	archive := txtar.Parse(data)
	out := make(map[string]expectedCounts, len(archive.Files))
	for _, f := range archive.Files {
		counts := expectedCounts{}
		for _, line := range strings.Split(string(f.Data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("golden %s: malformed line %q", f.Name, line)
			}
			n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("golden %s: %w", f.Name, err)
			}
			counts[diagnostics.Kind(strings.TrimSpace(parts[0]))] = n
		}
		out[f.Name] = counts
	}
	return out, nil
}

// compareGolden reports every mismatch between a scenario's sink and
// its golden expectations as a human-readable line; an empty result
// means the scenario matched exactly.
func compareGolden(name string, sink *diagnostics.Sink, golden map[string]expectedCounts) []string {
	want, ok := golden[name]
	if !ok {
		return nil
	}
	var mismatches []string
	seen := map[diagnostics.Kind]bool{}
	for kind, wantN := range want {
		seen[kind] = true
		if gotN := sink.CountOf(kind); gotN != wantN {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %d %s, got %d", name, wantN, kind, gotN))
		}
	}
	for _, d := range sink.All() {
		if !seen[d.Kind] {
			mismatches = append(mismatches, fmt.Sprintf("%s: unexpected %s not present in golden", name, d.Kind))
			seen[d.Kind] = true
		}
	}
	return mismatches
}
