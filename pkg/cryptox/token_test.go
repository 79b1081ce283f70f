package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintTokenIsDeterministic(t *testing.T) {
	t.Parallel()

	a := FingerprintToken("some-refresh-token")
	b := FingerprintToken("some-refresh-token")
	require.Equal(t, a, b)
	require.Len(t, a, 43)
}

func TestFingerprintTokenDistinguishesInputs(t *testing.T) {
	t.Parallel()

	require.NotEqual(t, FingerprintToken("token-a"), FingerprintToken("token-b"))
	require.NotEqual(t, FingerprintToken(""), FingerprintToken("token-a"))
}
