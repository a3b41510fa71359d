package traffic

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/contract-tester/contract-tester/internal/pathnorm"
)

// normalizePath strips any scheme+authority prefix, drops the query string
// and fragment, ensures a leading slash, and strips exactly one trailing
// slash (except for the root "/"). Applying it twice is a no-op unless the
// input ends in more than one slash.
func normalizePath(path string) string {
	return pathnorm.Normalize(path)
}

// normalizeHeaders lower-cases header names and stringifies values.
func normalizeHeaders(headers map[string]any) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		out[key] = stringifyHeaderValue(v)
	}
	return out
}

func stringifyHeaderValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// parseQuery decodes a URL's query string into the record's query shape: a
// single value stays a string, repeated keys become a []string.
func parseQuery(rawQuery string) map[string]any {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
			out[key] = ""
		case 1:
			out[key] = vals[0]
		default:
			out[key] = vals
		}
	}
	return out
}

// sniffJSON decodes text as JSON only if, after trimming, it begins with
// '{' or '['. It never attempts to sniff arbitrary strings, numbers, or
// booleans as JSON bodies.
func sniffJSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, true
	default:
		return nil, false
	}
}
