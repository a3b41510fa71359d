package traffic

import (
	"regexp"
	"strings"
)

var statusLineRe = regexp.MustCompile(`(HTTPSTATUS|STATUS):\s*(\d{3})`)

// loadCurlLog parses a text log made of one or more curl invocations each
// followed by their captured response. Blocks whose status line cannot be
// found, or whose command has no URL, are dropped.
func loadCurlLog(text string) []Record {
	blocks := splitCurlBlocks(text)
	records := make([]Record, 0, len(blocks))
	for _, block := range blocks {
		rec, ok := curlBlockToRecord(block)
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

func splitCurlBlocks(text string) [][]string {
	lines := strings.Split(text, "\n")
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "curl ") {
			if len(current) > 0 {
				blocks = append(blocks, current)
			}
			current = []string{line}
		} else if len(current) > 0 {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func curlBlockToRecord(block []string) (Record, bool) {
	cmd := block[0]
	bodyLines := block[1:]

	tokens := tokenizeShell(cmd)
	method := "GET"
	var url string
	for i, tok := range tokens {
		if (tok == "-X" || tok == "--request") && i+1 < len(tokens) {
			method = strings.ToUpper(tokens[i+1])
		}
		if url == "" && (strings.HasPrefix(tok, "http://") || strings.HasPrefix(tok, "https://")) {
			url = tok
		}
	}
	if url == "" {
		return Record{}, false
	}

	status := -1
	statusIdx := -1
	for i, line := range bodyLines {
		if m := statusLineRe.FindStringSubmatch(line); m != nil {
			status = atoiSafe(m[2])
			statusIdx = i
		}
	}
	if status == -1 {
		return Record{}, false
	}

	body := strings.TrimSpace(strings.Join(bodyLines[:statusIdx], "\n"))
	body = stripHTTPHeaderBlock(body)

	var responseJSON JSONValue
	if body != "" {
		if v, ok := decodeJSON(body); ok {
			responseJSON = NewPresent(v)
		}
	}

	path, query := splitURL(url)
	headers, contentType := curlHeaders(tokens)
	requestJSON, requestText := curlPayload(tokens, contentType)

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

func stripHTTPHeaderBlock(text string) string {
	if i := strings.Index(text, "\r\n\r\n"); i >= 0 {
		return strings.TrimSpace(text[i+4:])
	}
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return strings.TrimSpace(text[i+2:])
	}
	return text
}

func curlHeaders(tokens []string) (map[string]string, *string) {
	headers := map[string]string{}
	for i := 0; i < len(tokens); i++ {
		if (tokens[i] == "-H" || tokens[i] == "--header") && i+1 < len(tokens) {
			raw := tokens[i+1]
			if idx := strings.IndexByte(raw, ':'); idx >= 0 {
				name := strings.ToLower(strings.TrimSpace(raw[:idx]))
				value := strings.TrimSpace(raw[idx+1:])
				if name != "" {
					headers[name] = value
				}
			}
			i++
		}
	}
	var contentType *string
	if ct, ok := headers["content-type"]; ok {
		contentType = &ct
	}
	return headers, contentType
}

func curlPayload(tokens []string, contentType *string) (JSONValue, *string) {
	var data *string
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "-d", "--data", "--data-raw", "--data-binary":
			if i+1 < len(tokens) {
				v := tokens[i+1]
				data = &v
				i++
			}
		}
	}
	if data == nil {
		return JSONValue{}, nil
	}

	ctype := ""
	if contentType != nil {
		ctype = strings.ToLower(*contentType)
	}
	if strings.Contains(ctype, "json") {
		if v, ok := decodeJSON(*data); ok {
			return NewPresent(v), data
		}
		return JSONValue{}, data
	}
	if contentType == nil {
		if v, ok := sniffJSON(*data); ok {
			return NewPresent(v), data
		}
	}
	return JSONValue{}, data
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}
