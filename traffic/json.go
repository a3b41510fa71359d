package traffic

import "strings"

// loadJSONList normalizes an already-decoded JSON array of partially
// normalized traffic entries. Entries with an unparseable method, path,
// or status are dropped silently, per spec.
func loadJSONList(items []any) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec, ok := normalizeEntry(entry)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func normalizeEntry(entry map[string]any) (Record, bool) {
	methodRaw, ok := entry["method"].(string)
	if !ok || methodRaw == "" {
		return Record{}, false
	}
	pathRaw, ok := entry["path"].(string)
	if !ok {
		return Record{}, false
	}
	status, ok := asInt(entry["status"])
	if !ok {
		return Record{}, false
	}

	rec := Record{
		Method: strings.ToUpper(methodRaw),
		Path:   normalizePath(pathRaw),
		Status: status,
	}

	if v, present := entry["response_json"]; present {
		rec.ResponseJSON = NewPresent(v)
	}

	if q, ok := entry["query"].(map[string]any); ok {
		rec.Query = q
	} else {
		rec.Query = map[string]any{}
	}

	if h, ok := entry["headers"].(map[string]any); ok {
		rec.Headers = normalizeHeaders(h)
	} else {
		rec.Headers = map[string]string{}
	}

	if ct, ok := entry["request_content_type"].(string); ok {
		rec.RequestContentType = &ct
	}

	if v, present := entry["request_json"]; present {
		rec.RequestJSON = NewPresent(v)
	}

	var requestText *string
	if t, ok := entry["request_text"].(string); ok {
		requestText = &t
		rec.RequestText = &t
	}

	if rec.RequestJSON.IsAbsent() && requestText != nil && rec.RequestContentType == nil {
		if sniffed, ok := sniffJSON(*requestText); ok {
			rec.RequestJSON = NewPresent(sniffed)
		}
	}

	return rec, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
