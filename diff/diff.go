// Package diff compares two OpenAPI documents' resolved operations and
// flags removed operations, removed responses, and response schema
// changes as potential breaking changes (spec.md §4.6).
package diff

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/contract-tester/contract-tester/resolver"
	"github.com/contract-tester/contract-tester/validator"
)

// Result is the outcome of comparing two specs.
type Result struct {
	BreakingChanges []string
}

type opKey struct {
	path   string
	method string
}

// Compare reports potential breaking changes introduced going from
// oldPaths to newPaths.
func Compare(oldPaths, newPaths map[string]any) Result {
	oldOps := indexOperations(oldPaths)
	newOps := indexOperations(newPaths)

	var breaking []string

	for _, op := range resolver.Operations(oldPaths) {
		key := opKey{op.Template, strings.ToUpper(op.Method)}
		if _, ok := newOps[key]; !ok {
			breaking = append(breaking, fmt.Sprintf("Removed operation %s %s", key.method, key.path))
		}
	}

	for _, op := range resolver.Operations(oldPaths) {
		key := opKey{op.Template, strings.ToUpper(op.Method)}
		newOp, ok := newOps[key]
		if !ok {
			continue
		}
		oldOp := oldOps[key]

		oldResponses, _ := oldOp["responses"].(map[string]any)
		newResponses, _ := newOp["responses"].(map[string]any)

		for status := range oldResponses {
			newResp, stillPresent := newResponses[status]
			if !stillPresent {
				breaking = append(breaking, fmt.Sprintf("Removed response %s %s %s", key.method, key.path, status))
				continue
			}

			oldSchema := jsonSchemaOf(oldResponses[status])
			newSchema := jsonSchemaOf(newResp)

			if hashSchema(oldSchema) != hashSchema(newSchema) {
				breaking = append(breaking, fmt.Sprintf("Schema changed %s %s %s (potential break)", key.method, key.path, status))
			}
		}
	}

	return Result{BreakingChanges: breaking}
}

func indexOperations(paths map[string]any) map[opKey]map[string]any {
	out := make(map[opKey]map[string]any)
	for _, op := range resolver.Operations(paths) {
		out[opKey{op.Template, strings.ToUpper(op.Method)}] = op.Operation
	}
	return out
}

func jsonSchemaOf(response any) map[string]any {
	respMap, ok := response.(map[string]any)
	if !ok {
		return nil
	}
	content, _ := respMap["content"].(map[string]any)
	appJSON, _ := content["application/json"].(map[string]any)
	schema, _ := appJSON["schema"].(map[string]any)
	return schema
}

func hashSchema(schema map[string]any) string {
	if schema == nil {
		return ""
	}
	sum := sha256.Sum256([]byte(validator.CanonicalJSON(schema)))
	return fmt.Sprintf("%x", sum)
}
