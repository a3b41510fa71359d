// Package checksums parses the "sha256hex  basename" manifest format
// written by the release tooling this module is distributed alongside
// (spec.md §6; not produced by this module itself).
package checksums

import (
	"bufio"
	"fmt"
	"strings"
)

// ParseManifest parses a checksum manifest, one "hash  filename" pair per
// line, into a map from filename to lowercase hex hash.
func ParseManifest(data []byte) (map[string]string, error) {
	out := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("checksums: malformed line %d: %q", lineNo, line)
		}
		out[fields[1]] = strings.ToLower(fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
