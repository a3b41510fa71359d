package validator

import (
	"encoding/json"
	"sort"
	"strings"
)

// maxRefDepth bounds $ref resolution recursion; spec.md requires at least 20.
const maxRefDepth = 20

// ResolveSchema resolves a `{$ref: "#/a/b/c"}` indirection by walking root
// through the pointer's segments. If any segment is missing, the original
// (unresolved) schema is returned unchanged. Resolution re-enters when the
// resolved node is itself a reference, bounded by maxRefDepth and a
// visited set so that cyclic $ref chains terminate on the last node seen
// before the cycle closes, rather than recursing forever.
func ResolveSchema(root map[string]any, schema map[string]any) map[string]any {
	return resolveSchema(root, schema, maxRefDepth, map[string]bool{})
}

func resolveSchema(root, schema map[string]any, depth int, seen map[string]bool) map[string]any {
	if schema == nil {
		return schema
	}
	refAny, hasRef := schema["$ref"]
	if !hasRef {
		return schema
	}
	ref, ok := refAny.(string)
	if !ok || !strings.HasPrefix(ref, "#/") {
		return schema
	}
	if seen[ref] || depth <= 0 {
		return schema
	}
	seen[ref] = true

	node := walkPointer(root, ref)
	if node == nil {
		return schema
	}

	if _, nestedRef := node["$ref"]; nestedRef {
		return resolveSchema(root, node, depth-1, seen)
	}
	return node
}

// walkPointer walks root through a "#/a/b/c" JSON Pointer's segments,
// returning nil if any segment is missing or not itself a mapping.
func walkPointer(root map[string]any, ref string) map[string]any {
	trimmed := strings.TrimPrefix(ref, "#/")
	var node any = root
	for _, part := range strings.Split(trimmed, "/") {
		if part == "" {
			continue
		}
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		next, ok := m[part]
		if !ok {
			return nil
		}
		node = next
	}
	m, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// ToJSONSchema translates one OpenAPI-flavored schema node into the JSON
// Schema dialect the jsonschema/v6 compiler expects:
//   - nullable: true rewrites the node as {anyOf: [node-without-nullable, {type: null}]}
//   - properties present with no declared type gets an implicit "object" type
//
// Everything else passes through unchanged. This is applied to the
// resolved top-level schema node only, matching the reference behavior:
// nested property/item schemas are validated by the compiled schema as
// JSON Schema already tolerates "properties" without "type" (the keyword
// simply doesn't apply to non-object instances), so recursing here would
// only matter for nested "nullable", which the source implementation does
// not handle either.
func ToJSONSchema(schema map[string]any) map[string]any {
	if schema == nil {
		return map[string]any{}
	}

	if nullable, _ := schema["nullable"].(bool); nullable {
		without := make(map[string]any, len(schema))
		for k, v := range schema {
			if k == "nullable" {
				continue
			}
			without[k] = v
		}
		return map[string]any{
			"anyOf": []any{without, map[string]any{"type": "null"}},
		}
	}

	if _, hasProperties := schema["properties"]; hasProperties {
		if _, hasType := schema["type"]; !hasType {
			out := make(map[string]any, len(schema)+1)
			for k, v := range schema {
				out[k] = v
			}
			out["type"] = "object"
			return out
		}
	}

	return schema
}

// CanonicalJSON serializes v with sorted object keys and no whitespace, so
// that structurally equivalent schemas produce byte-identical output and
// can share a single compiled validator.
func CanonicalJSON(v any) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v any) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			keyJSON, _ := json.Marshal(k)
			b.Write(keyJSON)
			b.WriteByte(':')
			writeCanonical(b, val[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			b.WriteString("null")
			return
		}
		b.Write(encoded)
	}
}
