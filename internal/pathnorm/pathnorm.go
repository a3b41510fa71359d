// Package pathnorm normalizes request and template paths the same way
// everywhere: traffic ingestion, operation resolution, and path-template
// matching all need the identical shape to line up.
package pathnorm

import (
	"net/url"
	"strings"
)

// Normalize strips any scheme+authority prefix, drops the query string and
// fragment, ensures a leading slash, and strips exactly one trailing slash
// (except for the root "/"). Normalize is idempotent for inputs that end in
// at most one slash; since each call removes only one, "/users//" becomes
// "/users/" and then "/users" on a second call.
func Normalize(path string) string {
	if path == "" {
		return "/"
	}

	if u, err := url.Parse(path); err == nil {
		if u.Scheme != "" && u.Host != "" {
			path = u.Path
		} else if u.Path != "" {
			path = u.Path
		}
	}

	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// Split breaks a normalized path into non-empty segments.
func Split(path string) []string {
	if path == "" || path == "/" {
		return []string{}
	}
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
