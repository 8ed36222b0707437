package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Hash31(t *testing.T) {
	require.Equal(t, int64(0), Hash31(""))
	require.Equal(t, int64('a'), Hash31("a"))

	// 31*'a' + 'b'
	require.Equal(t, int64(3105), Hash31("ab"))

	// Overflow wraps at 32 bits and the result is folded to non-negative.
	require.GreaterOrEqual(t, Hash31("LEO-A1B2-LX3K9P-7QZ2MN"), int64(0))
	require.Equal(t, Hash31("some-event-id"), Hash31("some-event-id"))
	require.NotEqual(t, Hash31("some-event-id"), Hash31("some-event-iD"))
}
