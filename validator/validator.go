// Package validator runs parameter, request-body, and response checks for
// each traffic record against a resolved OpenAPI operation, grouping
// failures by a stable key so that one malformed endpoint aggregates
// across many requests instead of producing one finding per request.
package validator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/contract-tester/contract-tester/resolver"
	"github.com/contract-tester/contract-tester/traffic"
)

// ErrorDetail is one emitted finding: a grouping key, a human message, and
// an optional remediation hint.
type ErrorDetail struct {
	Key     string
	Message string
	Hint    string
}

// Result is the outcome of a validation run (spec.md §4.4 "Output").
type Result struct {
	TotalChecks   int
	ErrorCount    int
	Errors        []string
	ErrorsGrouped map[string][]string
	ErrorDetails  []ErrorDetail
	StoppedEarly  bool
}

// accumulator collects findings as validation proceeds.
type accumulator struct {
	result Result
}

func newAccumulator() *accumulator {
	return &accumulator{
		result: Result{
			ErrorsGrouped: make(map[string][]string),
		},
	}
}

func (a *accumulator) add(key, message, hint string) {
	if hint == "" {
		hint = defaultHint(key)
	}
	a.result.Errors = append(a.result.Errors, message)
	a.result.ErrorsGrouped[key] = append(a.result.ErrorsGrouped[key], message)
	a.result.ErrorDetails = append(a.result.ErrorDetails, ErrorDetail{Key: key, Message: message, Hint: hint})
	a.result.ErrorCount++
}

func (a *accumulator) limitReached(opts Options) bool {
	return opts.MaxErrors > 0 && a.result.ErrorCount >= opts.MaxErrors
}

// Run validates every record in records against spec's paths, per
// spec.md §4.4. Validation findings never abort the run; only
// opts.MaxErrors (when positive) or ctx cancellation stops it early,
// recorded as StoppedEarly.
func Run(ctx context.Context, paths map[string]any, records []traffic.Record, opts Options) Result {
	acc := newAccumulator()
	cache := NewSchemaCache()

recordLoop:
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			acc.result.StoppedEarly = true
			break recordLoop
		}

		acc.result.TotalChecks++

		match := resolver.Resolve(paths, rec.Method, rec.Path)
		if !match.Found {
			if !opts.IgnoreUnknown {
				acc.add("operation.missing", fmt.Sprintf("No operation for %s %s", rec.Method, rec.Path), "")
				if acc.limitReached(opts) {
					acc.result.StoppedEarly = true
					break recordLoop
				}
			}
			continue
		}

		groupPath := match.Template

		if checkParameters(acc, paths, cache, match, rec, opts) {
			acc.result.StoppedEarly = true
			break recordLoop
		}

		if checkRequestBody(acc, paths, cache, match.Operation, rec, groupPath, opts) {
			acc.result.StoppedEarly = true
			break recordLoop
		}

		if checkResponse(acc, paths, cache, match.Operation, rec, groupPath, opts) {
			acc.result.StoppedEarly = true
			break recordLoop
		}
	}

	return acc.result
}

func mergeParameters(pathItem, operation map[string]any) []map[string]any {
	type key struct{ name, in string }
	ordered := []key{}
	byKey := map[key]map[string]any{}

	for _, source := range []map[string]any{pathItem, operation} {
		items, _ := source["parameters"].([]any)
		for _, raw := range items {
			param, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name, _ := param["name"].(string)
			loc, _ := param["in"].(string)
			if name == "" || loc == "" {
				continue
			}
			k := key{name, loc}
			if _, seen := byKey[k]; !seen {
				ordered = append(ordered, k)
			}
			byKey[k] = param
		}
	}

	out := make([]map[string]any, 0, len(ordered))
	for _, k := range ordered {
		out = append(out, byKey[k])
	}
	return out
}

func checkParameters(acc *accumulator, root map[string]any, cache *SchemaCache, match resolver.Match, rec traffic.Record, opts Options) (stop bool) {
	groupPath := match.Template
	for _, param := range mergeParameters(match.PathItem, match.Operation) {
		name, _ := param["name"].(string)
		loc, _ := param["in"].(string)
		required, _ := param["required"].(bool)

		var value any
		switch loc {
		case "path":
			if v, ok := match.Params[name]; ok {
				value = v
			}
		case "query":
			value = rec.QueryValue(name)
		case "header":
			if v, ok := rec.Header(strings.ToLower(name)); ok {
				value = v
			}
		default:
			// cookie parameters are declared-but-unhandled, per spec.md §9.
			continue
		}

		if value == nil {
			if required {
				acc.add(
					fmt.Sprintf("request.param.missing|%s|%s", rec.Method, groupPath),
					fmt.Sprintf("Missing %s parameter '%s' for %s %s", loc, name, rec.Method, groupPath),
					"",
				)
				if acc.limitReached(opts) {
					return true
				}
			}
			continue
		}

		if msg, ok := validateParam(root, cache, param, value); !ok {
			acc.add(
				fmt.Sprintf("request.param.invalid|%s|%s", rec.Method, groupPath),
				fmt.Sprintf("%s for %s %s", msg, rec.Method, groupPath),
				"",
			)
			if acc.limitReached(opts) {
				return true
			}
		}
	}
	return false
}

func validateParam(root map[string]any, cache *SchemaCache, param map[string]any, value any) (string, bool) {
	schema, ok := param["schema"].(map[string]any)
	if !ok {
		return "", true
	}
	compiled, err := cache.Validator(root, schema)
	if err != nil {
		return "", true
	}
	// Coercion keys off the OpenAPI "type" keyword before nullable/implicit-
	// object rewriting happens, so it uses the resolved schema directly
	// rather than the JSON-Schema-translated form compiled above.
	coerced := coerceValue(value, cache.Resolve(root, schema))
	if err := compiled.Validate(coerced); err != nil {
		name, _ := param["name"].(string)
		loc, _ := param["in"].(string)
		return fmt.Sprintf("Invalid %s parameter '%s': %s", orDefault(loc, "param"), orDefault(name, "param"), err), false
	}
	return "", true
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func pickJSONSchemaFromContent(content map[string]any) (map[string]any, bool) {
	if appJSON, ok := content["application/json"].(map[string]any); ok {
		if schema, ok := appJSON["schema"].(map[string]any); ok {
			return schema, true
		}
	}
	for ctype, item := range content {
		if !strings.Contains(strings.ToLower(ctype), "json") {
			continue
		}
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if schema, ok := m["schema"].(map[string]any); ok {
			return schema, true
		}
	}
	return nil, false
}

func checkRequestBody(acc *accumulator, root map[string]any, cache *SchemaCache, op map[string]any, rec traffic.Record, groupPath string, opts Options) (stop bool) {
	requestBody, ok := op["requestBody"].(map[string]any)
	if !ok {
		return false
	}
	required, _ := requestBody["required"].(bool)
	content, _ := requestBody["content"].(map[string]any)
	schema, hasSchema := pickJSONSchemaFromContent(content)

	isJSON := false
	if rec.RequestContentType != nil && strings.Contains(strings.ToLower(*rec.RequestContentType), "json") {
		isJSON = true
	}
	if rec.RequestJSON.Presence != traffic.Absent {
		isJSON = true
	}

	bodySupplied := rec.RequestJSON.Presence != traffic.Absent || rec.RequestText != nil

	switch {
	case required && !bodySupplied:
		acc.add(
			fmt.Sprintf("request.body.missing|%s|%s", rec.Method, groupPath),
			fmt.Sprintf("Missing request body for %s %s", rec.Method, groupPath),
			"",
		)
	case hasSchema && isJSON:
		if rec.RequestJSON.Presence == traffic.Absent && rec.RequestText != nil {
			acc.add(
				fmt.Sprintf("request.body.invalid_json|%s|%s", rec.Method, groupPath),
				fmt.Sprintf("Invalid JSON request body for %s %s", rec.Method, groupPath),
				"",
			)
		} else {
			compiled, err := cache.Validator(root, schema)
			if err == nil {
				if verr := compiled.Validate(jsonValueForValidation(rec.RequestJSON)); verr != nil {
					acc.add(
						fmt.Sprintf("request.body.schema|%s|%s", rec.Method, groupPath),
						fmt.Sprintf("Request body schema mismatch for %s %s: %s", rec.Method, groupPath, verr),
						"",
					)
				}
			}
		}
	case rec.RequestJSON.Presence != traffic.Absent && !hasSchema:
		acc.add(
			fmt.Sprintf("request.body.schema_missing|%s|%s", rec.Method, groupPath),
			fmt.Sprintf("No request schema for %s %s", rec.Method, groupPath),
			"",
		)
	}

	return acc.limitReached(opts)
}

func jsonValueForValidation(v traffic.JSONValue) any {
	if v.Presence == traffic.Null {
		return nil
	}
	return v.Value
}

func checkResponse(acc *accumulator, root map[string]any, cache *SchemaCache, op map[string]any, rec traffic.Record, groupPath string, opts Options) (stop bool) {
	schema, ok := pickResponseSchema(op, rec.Status)
	if !ok {
		if rec.ResponseJSON.Presence != traffic.Present && (rec.Status == 204 || rec.Status == 304) {
			return false
		}
		acc.add(
			fmt.Sprintf("response.schema_missing|%s|%s|%d", rec.Method, groupPath, rec.Status),
			fmt.Sprintf("No response schema for %s %s %d", rec.Method, groupPath, rec.Status),
			"",
		)
		return acc.limitReached(opts)
	}

	compiled, err := cache.Validator(root, schema)
	if err != nil {
		return false
	}
	if verr := compiled.Validate(jsonValueForValidation(rec.ResponseJSON)); verr != nil {
		acc.add(
			fmt.Sprintf("response.schema_mismatch|%s|%s|%d", rec.Method, groupPath, rec.Status),
			fmt.Sprintf("Schema mismatch for %s %s %d: %s", rec.Method, groupPath, rec.Status, verr),
			"",
		)
		return acc.limitReached(opts)
	}
	return false
}

func pickResponseSchema(op map[string]any, status int) (map[string]any, bool) {
	responses, _ := op["responses"].(map[string]any)
	if responses == nil {
		return nil, false
	}
	statusKey := strconv.Itoa(status)
	response, ok := responses[statusKey].(map[string]any)
	if !ok && status >= 100 {
		classKey := string(statusKey[0]) + "XX"
		response, ok = responses[classKey].(map[string]any)
	}
	if !ok {
		response, ok = responses["default"].(map[string]any)
	}
	if !ok {
		return nil, false
	}
	content, _ := response["content"].(map[string]any)
	return pickJSONSchemaFromContent(content)
}
