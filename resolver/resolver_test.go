package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePaths() map[string]any {
	return map[string]any{
		"/users/{id}": map[string]any{
			"get": map[string]any{"operationId": "getUser"},
			"parameters": []any{
				map[string]any{"name": "id", "in": "path", "required": true},
			},
		},
		"/users/me": map[string]any{
			"get": map[string]any{"operationId": "getMe"},
		},
	}
}

func TestResolve_ExactMatchWinsOverTemplate(t *testing.T) {
	t.Parallel()
	match := Resolve(samplePaths(), "GET", "/users/me")
	require.True(t, match.Found)
	assert.Equal(t, "/users/me", match.Template)
}

func TestResolve_TemplateMatch(t *testing.T) {
	t.Parallel()
	match := Resolve(samplePaths(), "get", "/users/42")
	require.True(t, match.Found)
	assert.Equal(t, "/users/{id}", match.Template)
	assert.Equal(t, "42", match.Params["id"])
}

func TestResolve_NoMatch(t *testing.T) {
	t.Parallel()
	match := Resolve(samplePaths(), "GET", "/orders/1")
	assert.False(t, match.Found)
}

func TestResolve_MethodNotDefined(t *testing.T) {
	t.Parallel()
	match := Resolve(samplePaths(), "DELETE", "/users/me")
	assert.False(t, match.Found)
}

func TestResolve_NormalizesTrailingSlashAndQuery(t *testing.T) {
	t.Parallel()
	match := Resolve(samplePaths(), "GET", "https://api.example.com/users/me/?x=1")
	require.True(t, match.Found)
	assert.Equal(t, "/users/me", match.Template)
}

func TestOperations_SkipsExtensionKeys(t *testing.T) {
	t.Parallel()
	paths := map[string]any{
		"/users": map[string]any{
			"get":        map[string]any{},
			"post":       map[string]any{},
			"x-internal": map[string]any{},
		},
	}
	ops := Operations(paths)
	assert.Len(t, ops, 2)
}
