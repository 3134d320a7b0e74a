package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(CodeStorage, "failed to persist item", cause)

	require.Equal(t, "failed to persist item: dial tcp: refused", err.Error())
	require.ErrorIs(t, err, cause)
	require.True(t, IsCode(err, CodeStorage))
	require.False(t, IsCode(err, CodeNotFound))
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap(CodeNotFound, "city not found", nil))

	require.Equal(t, CodeNotFound, CodeOf(err))
	require.Equal(t, "city not found", MessageOf(err))
	require.Equal(t, "", CodeOf(errors.New("plain")))
	require.Equal(t, "plain", MessageOf(errors.New("plain")))
	require.Equal(t, "", MessageOf(nil))
}
