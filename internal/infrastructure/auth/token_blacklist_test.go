package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := t.Context()

	t.Run("unknown jti is not revoked", func(t *testing.T) {
		revoked, err := blacklist.IsRevoked(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked jti is rejected until the entry expires", func(t *testing.T) {
		require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Minute))

		revoked, err := blacklist.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entries fall out of the blacklist", func(t *testing.T) {
		require.NoError(t, blacklist.Revoke(ctx, "jti-2", -time.Second))

		revoked, err := blacklist.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
