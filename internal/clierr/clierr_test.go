package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode_Nil(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, ExitCode(nil))
}

func TestExitCode_PlainError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}

func TestExitCode_WrappedClierr(t *testing.T) {
	t.Parallel()
	base := New(2, "bad input: %s", "oops")
	wrapped := fmt.Errorf("context: %w", base)
	assert.Equal(t, 2, ExitCode(wrapped))
}

func TestWrap_PreservesUnderlyingError(t *testing.T) {
	t.Parallel()
	underlying := errors.New("disk full")
	ce := Wrap(2, underlying)
	assert.ErrorIs(t, ce, underlying)
	assert.Equal(t, 2, ce.ExitCode)
}
