package validator

import (
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/zeebo/xxh3"
)

// compiledEntry pairs a canonical schema string with its compiled
// validator, so that an xxh3 hash bucket can still disambiguate on the
// rare collision instead of silently reusing the wrong validator.
type compiledEntry struct {
	canonical string
	schema    *jsonschema.Schema
}

// SchemaCache is the pair of per-run caches spec.md §4.2/§5 requires: a
// resolved-schema cache keyed by $ref string, and a compiled-validator
// cache keyed by the canonical serialization of the post-translation
// schema. Both are populated once per validation run and read thereafter;
// neither outlives the call that owns it.
type SchemaCache struct {
	resolved map[string]map[string]any
	compiled map[uint64][]compiledEntry
}

// NewSchemaCache returns an empty cache pair for one validation run.
func NewSchemaCache() *SchemaCache {
	return &SchemaCache{
		resolved: make(map[string]map[string]any),
		compiled: make(map[uint64][]compiledEntry),
	}
}

// Resolve resolves schema against root, memoizing by $ref string when
// schema is itself a reference.
func (c *SchemaCache) Resolve(root, schema map[string]any) map[string]any {
	if schema == nil {
		return nil
	}
	ref, ok := schema["$ref"].(string)
	if !ok {
		return schema
	}
	if cached, ok := c.resolved[ref]; ok {
		return cached
	}
	resolved := ResolveSchema(root, schema)
	c.resolved[ref] = resolved
	return resolved
}

// Validator resolves then compiles schema, sharing one compiled validator
// across every caller whose post-translation schema canonicalizes
// identically.
func (c *SchemaCache) Validator(root, schema map[string]any) (*jsonschema.Schema, error) {
	resolved := c.Resolve(root, schema)
	translated := ToJSONSchema(resolved)
	canonical := CanonicalJSON(translated)
	h := xxh3.HashString(canonical)

	for _, entry := range c.compiled[h] {
		if entry.canonical == canonical {
			return entry.schema, nil
		}
	}

	compiled, err := compileJSONSchema(translated)
	if err != nil {
		return nil, err
	}
	c.compiled[h] = append(c.compiled[h], compiledEntry{canonical: canonical, schema: compiled})
	return compiled, nil
}

const compileResourceID = "contract-tester://schema.json"

func compileJSONSchema(schema map[string]any) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)
	if err := compiler.AddResource(compileResourceID, schema); err != nil {
		return nil, err
	}
	return compiler.Compile(compileResourceID)
}
