package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_AppendAndHas(t *testing.T) {
	t.Parallel()
	var list List
	list.Append(New(CodeDemoMode, "running without a license"))

	assert.True(t, list.Has(CodeDemoMode))
	assert.False(t, list.Has(CodeTrafficTruncated))
}

func TestAdvisory_String(t *testing.T) {
	t.Parallel()
	a := New(CodeTrafficTruncated, "truncated to 25 entries")
	assert.Equal(t, "[TRAFFIC_TRUNCATED] truncated to 25 entries", a.String())
}
