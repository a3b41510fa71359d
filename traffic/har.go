package traffic

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// loadHAR normalizes a decoded HAR 1.2 document's log.entries into records.
func loadHAR(doc map[string]any) []Record {
	log, _ := doc["log"].(map[string]any)
	entriesRaw, _ := log["entries"].([]any)

	records := make([]Record, 0, len(entriesRaw))
	for _, e := range entriesRaw {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		rec, ok := harEntryToRecord(entry)
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

func harEntryToRecord(entry map[string]any) (Record, bool) {
	req, _ := entry["request"].(map[string]any)
	res, _ := entry["response"].(map[string]any)
	if req == nil {
		req = map[string]any{}
	}
	if res == nil {
		res = map[string]any{}
	}

	method, _ := req["method"].(string)
	method = strings.ToUpper(method)
	rawURL, _ := req["url"].(string)

	path, query := splitURL(rawURL)

	status, ok := asInt(res["status"])
	if method == "" || !ok {
		return Record{}, false
	}

	headers := harHeaders(req["headers"])
	var contentType *string
	if ct, ok := headers["content-type"]; ok {
		contentType = &ct
	}

	requestJSON, requestText := harRequestBody(req["postData"], contentType)

	content, _ := res["content"].(map[string]any)
	var responseJSON JSONValue
	if content != nil {
		text, _ := content["text"].(string)
		mime := strings.ToLower(asString(content["mimeType"]))
		encoding := strings.ToLower(asString(content["encoding"]))
		if text != "" && strings.Contains(mime, "json") {
			payload := text
			if encoding == "base64" {
				if decoded, err := base64.StdEncoding.DecodeString(text); err == nil {
					payload = string(decoded)
				}
			}
			if v, ok := decodeJSON(payload); ok {
				responseJSON = NewPresent(v)
			}
		}
	}

	return Record{
		Method:             method,
		Path:               path,
		Status:             status,
		ResponseJSON:       responseJSON,
		Query:              query,
		Headers:            headers,
		RequestJSON:        requestJSON,
		RequestText:        requestText,
		RequestContentType: contentType,
	}, true
}

func splitURL(raw string) (string, map[string]any) {
	path := raw
	query := map[string]any{}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		path = raw[:i]
		rest := raw[i+1:]
		if j := strings.IndexByte(rest, '#'); j >= 0 {
			rest = rest[:j]
		}
		query = parseQuery(rest)
	} else if i := strings.IndexByte(raw, '#'); i >= 0 {
		path = raw[:i]
	}
	if i := strings.Index(path, "://"); i >= 0 {
		rest := path[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			path = rest[j:]
		} else {
			path = "/"
		}
	}
	if path == "" {
		path = "/"
	}
	return normalizePath(path), query
}

func harHeaders(raw any) map[string]string {
	list, ok := raw.([]any)
	out := map[string]string{}
	if !ok {
		return out
	}
	for _, item := range list {
		h, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(asString(h["name"])))
		if name == "" {
			continue
		}
		out[name] = stringifyHeaderValue(h["value"])
	}
	return out
}

func harRequestBody(postData any, contentType *string) (JSONValue, *string) {
	pd, ok := postData.(map[string]any)
	if !ok {
		return JSONValue{}, nil
	}
	text, ok := pd["text"].(string)
	if !ok {
		return JSONValue{}, nil
	}

	mime := strings.ToLower(asString(pd["mimeType"]))
	if mime == "" && contentType != nil {
		mime = strings.ToLower(*contentType)
	}

	if strings.Contains(mime, "json") {
		if v, ok := decodeJSON(text); ok {
			return NewPresent(v), &text
		}
		return JSONValue{}, &text
	}

	if contentType == nil {
		if v, ok := sniffJSON(text); ok {
			return NewPresent(v), &text
		}
	}
	return JSONValue{}, &text
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// decodeJSON decodes text as JSON regardless of its leading character
// (used where the caller already knows, from mime type, that this is JSON).
func decodeJSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, false
	}
	return v, true
}
