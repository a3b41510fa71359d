package traffic

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when a traffic file is neither a HAR
// document, a JSON list of normalized entries, nor a parseable curl log.
var ErrUnsupportedFormat = errors.New("unsupported traffic format")

// Load reads and normalizes a traffic capture file. Dispatch is by file
// extension first (".har"), then by content: a JSON array is treated as a
// native normalized-entry list, and anything else is tried as a curl
// command log. ctx mirrors specdoc.Load's signature; not currently
// inspected.
func Load(ctx context.Context, path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".har") {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return loadHAR(doc), nil
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		return loadJSONList(list), nil
	}

	curlRecords := loadCurlLog(string(raw))
	if len(curlRecords) > 0 {
		return curlRecords, nil
	}

	return nil, ErrUnsupportedFormat
}
