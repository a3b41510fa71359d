package checksums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	t.Parallel()
	data := []byte("# comment\n" +
		"DEADBEEF00  contract-tester-linux-amd64\n" +
		"\n" +
		"cafe1234  contract-tester-darwin-arm64\n")

	manifest, err := ParseManifest(data)

	require.NoError(t, err)
	assert.Equal(t, "deadbeef00", manifest["contract-tester-linux-amd64"])
	assert.Equal(t, "cafe1234", manifest["contract-tester-darwin-arm64"])
}

func TestParseManifest_MalformedLine(t *testing.T) {
	t.Parallel()
	_, err := ParseManifest([]byte("onlyonefield\n"))
	assert.Error(t, err)
}
