package contracttester

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/contract-tester/contract-tester/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunner_RequiresSpecAndTrafficPaths(t *testing.T) {
	t.Parallel()

	_, err := NewRunner().Run(context.Background())
	assert.ErrorIs(t, err, ErrSpecPathRequired)

	_, err = NewRunner(WithSpecPath("spec.json")).Run(context.Background())
	assert.ErrorIs(t, err, ErrTrafficPathRequired)
}

func TestRunner_FullRun(t *testing.T) {
	t.Parallel()
	specPath := writeTemp(t, "spec.json", `{
		"paths": {
			"/users/{id}": {
				"get": {
					"parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}],
					"responses": {
						"200": {
							"content": {
								"application/json": {
									"schema": {"type": "object", "properties": {"id": {"type": "integer"}}}
								}
							}
						}
					}
				}
			}
		}
	}`)
	trafficPath := writeTemp(t, "traffic.json", `[
		{"method": "GET", "path": "/users/1", "status": 200, "response_json": {"id": 1}}
	]`)

	runner := NewRunner(
		WithSpecPath(specPath),
		WithTrafficPath(trafficPath),
		WithoutLicenseGate(),
		WithOptions(validator.Options{}),
	)

	result, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Validation.TotalChecks)
	assert.Equal(t, 0, result.Validation.ErrorCount)
	assert.True(t, result.License.Valid)
	assert.Empty(t, result.Advisories)
}
