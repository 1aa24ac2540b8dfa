package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestNewResetToken_Format(t *testing.T) {
	token, err := NewResetToken()
	require.NoError(t, err)
	assert.Regexp(t, hexToken, token)
}

func TestNewResetToken_NoCollisions(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		token, err := NewResetToken()
		require.NoError(t, err)
		require.Regexp(t, hexToken, token)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token after %d draws", i)
		seen[token] = struct{}{}
	}
}

func TestResolutionKind_String(t *testing.T) {
	assert.Equal(t, "managed", ResolvedManaged.String())
	assert.Equal(t, "local", ResolvedLocal.String())
	assert.Equal(t, "unresolved", Unresolved.String())
}
