package claimcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Generate(t *testing.T) {
	code := Generate("a1b2c3d4-0000-0000-0000-000000000000")

	require.True(t, strings.HasPrefix(code, "LEO-A1B2-"))
	require.True(t, IsValid(code))
	require.Len(t, strings.Split(code, "-"), 4)
}

func Test_Generate_shortEventID(t *testing.T) {
	code := Generate("ab")

	require.True(t, strings.HasPrefix(code, "LEO-AB-"))
	require.True(t, IsValid(code))
}

func Test_Generate_unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		code := Generate("a1b2c3d4")
		require.False(t, seen[code])
		seen[code] = true
	}
}

func Test_IsValid(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "happy case", code: "LEO-A1B2-LX3K9P-7QZ2MN", want: true},
		{name: "lowercase", code: "leo-a1b2-lx3k9p-7qz2mn", want: false},
		{name: "wrong prefix", code: "ETH-A1B2-LX3K9P-7QZ2MN", want: false},
		{name: "missing part", code: "LEO-A1B2-LX3K9P", want: false},
		{name: "extra part", code: "LEO-A1B2-LX3K9P-7QZ2MN-X", want: false},
		{name: "empty part", code: "LEO--LX3K9P-7QZ2MN", want: false},
		{name: "punctuation", code: "LEO-A1B2-LX3K9P-7QZ2M!", want: false},
		{name: "empty string", code: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsValid(tt.code))
		})
	}
}
