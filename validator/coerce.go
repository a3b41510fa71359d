package validator

import (
	"strconv"
	"strings"
)

// coerceValue converts a string (or already-list) parameter value according
// to the declared schema's type, for query/path/header parameters only —
// request and response bodies are never coerced, they are already
// JSON-typed. On a failed numeric parse the original string is returned
// unchanged so the schema validator raises the type error itself.
func coerceValue(value any, schema map[string]any) any {
	if value == nil || schema == nil {
		return value
	}
	typ, _ := schema["type"].(string)

	if typ == "array" {
		switch v := value.(type) {
		case []string:
			out := make([]any, len(v))
			for i, s := range v {
				out[i] = s
			}
			return out
		case []any:
			return v
		case string:
			parts := strings.Split(v, ",")
			out := make([]any, 0, len(parts))
			for _, p := range parts {
				if p != "" {
					out = append(out, p)
				}
			}
			return out
		default:
			return value
		}
	}

	// A non-array declared type with a list-valued query parameter is left
	// as a list: the validator will then raise a type error, which is the
	// documented (if surprising) behavior — see the multi-valued query
	// parameter note in the design notes.
	s, ok := value.(string)
	if !ok {
		return value
	}

	switch typ {
	case "integer":
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		return s
	case "number":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	case "boolean":
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		default:
			return s
		}
	default:
		return s
	}
}
