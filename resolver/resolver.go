// Package resolver maps an observed (method, path) pair to the best
// matching templated operation in an OpenAPI specification tree, extracting
// path-variable bindings with a deterministic tie-break when more than one
// template matches.
package resolver

import (
	"strings"

	"github.com/contract-tester/contract-tester/internal/pathnorm"
)

// Match is the result of resolving a (method, path) pair against a spec.
type Match struct {
	// Operation is the chosen operation object (the method entry under the template).
	Operation map[string]any

	// Template is the path template string that matched (e.g. "/users/{id}").
	Template string

	// PathItem is the full path-item mapping the template maps to (all methods).
	PathItem map[string]any

	// Params maps placeholder name to the concrete path segment value.
	Params map[string]string

	// Found reports whether any operation matched.
	Found bool
}

// Resolve finds the operation in spec's "paths" matching method and path.
// Method is matched case-insensitively against the lower-cased keys an
// OpenAPI document stores operations under.
func Resolve(paths map[string]any, method, path string) Match {
	normPath := pathnorm.Normalize(path)
	methodKey := strings.ToLower(method)

	if pathItem, ok := asMapping(paths[normPath]); ok {
		if op, ok := asMapping(pathItem[methodKey]); ok {
			return Match{Operation: op, Template: normPath, PathItem: pathItem, Params: map[string]string{}, Found: true}
		}
	}

	reqParts := pathnorm.Split(normPath)

	var (
		bestOp       map[string]any
		bestTemplate string
		bestPathItem map[string]any
		bestScore    = -1
	)

	for template, methods := range paths {
		pathItem, ok := asMapping(methods)
		if !ok {
			continue
		}
		normTemplate := pathnorm.Normalize(template)
		score, ok := matchScore(normTemplate, reqParts)
		if !ok {
			continue
		}
		op, ok := asMapping(pathItem[methodKey])
		if !ok {
			continue
		}
		// Equal scores fall back to the lexically smaller template so the
		// choice does not depend on map iteration order.
		if score > bestScore || (score == bestScore && normTemplate < bestTemplate) {
			bestScore = score
			bestOp = op
			bestTemplate = normTemplate
			bestPathItem = pathItem
		}
	}

	if bestOp == nil {
		return Match{}
	}

	return Match{
		Operation: bestOp,
		Template:  bestTemplate,
		PathItem:  bestPathItem,
		Params:    extractParams(bestTemplate, reqParts),
		Found:     true,
	}
}

// matchScore scores a template against the request's segments: literal
// segments that match contribute +1, placeholders contribute 0, and any
// literal mismatch or length difference disqualifies the template (ok=false).
func matchScore(template string, reqParts []string) (int, bool) {
	tmplParts := pathnorm.Split(template)
	if len(tmplParts) != len(reqParts) {
		return 0, false
	}
	score := 0
	for i, t := range tmplParts {
		if isPlaceholder(t) {
			continue
		}
		if t == reqParts[i] {
			score++
			continue
		}
		return 0, false
	}
	return score, true
}

func extractParams(template string, reqParts []string) map[string]string {
	params := map[string]string{}
	tmplParts := pathnorm.Split(template)
	if len(tmplParts) != len(reqParts) {
		return params
	}
	for i, t := range tmplParts {
		if isPlaceholder(t) {
			name := strings.TrimSpace(t[1 : len(t)-1])
			if name != "" {
				params[name] = reqParts[i]
			}
		}
	}
	return params
}

func isPlaceholder(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

func asMapping(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Operation is one resolved (template, method, operation) triple, used by
// the diff command to compare two specs' operation sets.
type Operation struct {
	Template  string
	Method    string
	Operation map[string]any
}

// Operations enumerates every (template, method) operation in paths,
// skipping path-item extension keys (those starting with "x-") and
// non-mapping values.
func Operations(paths map[string]any) []Operation {
	var ops []Operation
	for template, methods := range paths {
		pathItem, ok := asMapping(methods)
		if !ok {
			continue
		}
		normTemplate := pathnorm.Normalize(template)
		for method, opVal := range pathItem {
			if strings.HasPrefix(method, "x-") {
				continue
			}
			op, ok := asMapping(opVal)
			if !ok {
				continue
			}
			ops = append(ops, Operation{Template: normTemplate, Method: strings.ToLower(method), Operation: op})
		}
	}
	return ops
}
