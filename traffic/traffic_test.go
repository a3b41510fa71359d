package traffic

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
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_JSONList(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "traffic.json", `[
		{"method":"GET","path":"/users/1","status":200,"response_json":{"id":1}}
	]`)

	records, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "GET", records[0].Method)
	assert.Equal(t, "/users/1", records[0].Path)
	assert.Equal(t, 200, records[0].Status)
	assert.Equal(t, Present, records[0].ResponseJSON.Presence)
}

func TestLoad_HAR(t *testing.T) {
	t.Parallel()
	har := `{
		"log": {
			"entries": [
				{
					"request": {
						"method": "POST",
						"url": "https://api.example.com/users?x=1",
						"headers": [{"name": "Content-Type", "value": "application/json"}],
						"postData": {"mimeType": "application/json", "text": "{\"name\":\"a\"}"}
					},
					"response": {
						"status": 201,
						"content": {"mimeType": "application/json", "text": "{\"id\":1}"}
					}
				}
			]
		}
	}`
	path := writeTemp(t, "capture.har", har)

	records, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "POST", records[0].Method)
	assert.Equal(t, "/users", records[0].Path)
	assert.Equal(t, "1", records[0].QueryValue("x"))
	assert.Equal(t, 201, records[0].Status)
}

func TestLoad_CurlLog(t *testing.T) {
	t.Parallel()
	log := "curl -X POST https://api.example.com/users -H 'Content-Type: application/json' -d '{\"name\":\"a\"}'\n" +
		"HTTP/1.1 201 Created\n" +
		"Content-Type: application/json\n\n" +
		"{\"id\":1}\n" +
		"STATUS:201\n"
	path := writeTemp(t, "session.log", log)

	records, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "POST", records[0].Method)
	assert.Equal(t, 201, records[0].Status)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "garbage.txt", "not json, not curl, not har")

	_, err := Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJSONValue_Presence(t *testing.T) {
	t.Parallel()
	var absent JSONValue
	assert.True(t, absent.IsAbsent())

	present := NewPresent(map[string]any{"a": 1})
	assert.False(t, present.IsAbsent())
	assert.Equal(t, Present, present.Presence)
}
