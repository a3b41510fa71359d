package termcolor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapHelpers_Disabled(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hi", OK("hi", false))
	assert.Equal(t, "hi", Warn("hi", false))
	assert.Equal(t, "hi", Err("hi", false))
	assert.Equal(t, "hi", Strong("hi", false))
}

func TestWrapHelpers_Enabled(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "\x1b[32mhi\x1b[0m", OK("hi", true))
	assert.Equal(t, "\x1b[33mhi\x1b[0m", Warn("hi", true))
	assert.Equal(t, "\x1b[31mhi\x1b[0m", Err("hi", true))
	assert.Equal(t, "\x1b[1mhi\x1b[0m", Strong("hi", true))
}
