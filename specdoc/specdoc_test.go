package specdoc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "spec.json", `{"openapi":"3.0.0","paths":{"/users":{"get":{}}}}`)

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, doc.Paths(), "/users")
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "spec.yaml", "openapi: 3.0.0\npaths:\n  /users:\n    get: {}\n")

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, doc.Paths(), "/users")
}

func TestLoad_MissingPaths(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "spec.json", `{"openapi":"3.0.0"}`)

	_, err := Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrMissingPaths)
}

func TestLoad_NotAnObject(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "spec.json", `[1,2,3]`)

	_, err := Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrNotAnObject)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDocument_PathsDefaultsEmpty(t *testing.T) {
	t.Parallel()
	d := &Document{root: map[string]any{"paths": "not-a-map"}}
	assert.Empty(t, d.Paths())
}
