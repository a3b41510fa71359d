package validator

import "strings"

// defaultHint returns the canonical remediation hint for a grouping key
// prefix, or "" if the key kind has no hint (spec.md §4.4).
func defaultHint(key string) string {
	switch {
	case strings.HasPrefix(key, "operation.missing"):
		return "Add the endpoint/method to the OpenAPI spec or filter this traffic."
	case strings.HasPrefix(key, "request.param.missing"):
		return "Add the required parameter to the request or mark it optional in the spec."
	case strings.HasPrefix(key, "request.param.invalid"):
		return "Ensure the parameter value matches the schema type/format."
	case strings.HasPrefix(key, "request.body.missing"):
		return "Send a request body or mark it optional in the spec."
	case strings.HasPrefix(key, "request.body.invalid_json"):
		return "Send valid JSON for this request or adjust the content type."
	case strings.HasPrefix(key, "request.body.schema_missing"):
		return "Add a requestBody schema for this operation."
	case strings.HasPrefix(key, "request.body.schema"):
		return "Update the request body to match the schema or adjust the schema."
	case strings.HasPrefix(key, "response.schema_missing"):
		return "Add a response schema for this status code in the spec."
	case strings.HasPrefix(key, "response.schema_mismatch"):
		return "Compare the response payload to the schema and fix fields/types."
	default:
		return ""
	}
}
