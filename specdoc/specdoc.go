// Package specdoc loads an OpenAPI 3.0 document (JSON or YAML) and exposes
// it as a single rooted mapping, performing no further semantic validation
// beyond requiring a top-level "paths" object.
package specdoc

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotAnObject is returned when the decoded document's top level is not a mapping.
var ErrNotAnObject = errors.New("openapi spec must be a JSON/YAML object")

// ErrMissingPaths is returned when the document has no top-level "paths" member.
var ErrMissingPaths = errors.New("openapi spec missing 'paths'")

// Document wraps a decoded specification tree.
type Document struct {
	root map[string]any
}

// Load reads path, decodes it as YAML (for .yaml/.yml extensions) or JSON
// otherwise, and validates the minimal shape spec.md requires. ctx is
// accepted for signature symmetry with traffic.Load and validator.Run
// (readers that might later gain network/remote-ref support) but is not
// currently inspected.
func Load(ctx context.Context, path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data any
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		data = normalizeYAML(data)
	} else {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
	}

	root, ok := data.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	if _, ok := root["paths"]; !ok {
		return nil, ErrMissingPaths
	}

	return &Document{root: root}, nil
}

// Root returns the decoded specification tree.
func (d *Document) Root() map[string]any {
	return d.root
}

// Paths returns the top-level "paths" mapping, or an empty mapping if it is
// not itself a mapping (defensive: the shape was already checked at Load,
// but a hand-constructed Document in tests might skip that).
func (d *Document) Paths() map[string]any {
	paths, _ := d.root["paths"].(map[string]any)
	if paths == nil {
		return map[string]any{}
	}
	return paths
}

// normalizeYAML converts the map[any]any / []any shapes that some YAML
// decoders historically produced into map[string]any so that downstream
// code — which assumes JSON-shaped trees — can walk both uniformly.
// gopkg.in/yaml.v3 already decodes mappings as map[string]any when the
// target is `any`, but nested anchors and merge keys can still surface
// non-string keys; this guards against that.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[k] = normalizeYAML(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[toString(k)] = normalizeYAML(vv)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, vv := range val {
			out[i] = normalizeYAML(vv)
		}
		return out
	default:
		return v
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
