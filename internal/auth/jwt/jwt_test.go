package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JMURv/taskboard/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCore(secret string) *Core {
	conf := config.Config{}
	conf.Auth.JWT.Secret = secret
	conf.Auth.JWT.Issuer = "taskboard"
	return New(conf)
}

func TestGenPair(t *testing.T) {
	ctx := context.Background()
	core := testCore("test-secret")
	uid := uuid.New()

	access, refresh, err := core.GenPair(ctx, uid)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	for _, tokenStr := range []string{access, refresh} {
		claims, err := core.ParseClaims(ctx, tokenStr)
		require.NoError(t, err)
		assert.Equal(t, uid, claims.UID)
		assert.Equal(t, "taskboard", claims.Issuer)
	}
}

func TestNewToken(t *testing.T) {
	ctx := context.Background()
	core := testCore("test-secret")
	uid := uuid.New()

	t.Run("expiry honors duration", func(t *testing.T) {
		tokenStr, err := core.NewToken(ctx, uid, time.Hour)
		require.NoError(t, err)

		claims, err := core.ParseClaims(ctx, tokenStr)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("expired token fails with ErrTokenExpired", func(t *testing.T) {
		tokenStr, err := core.NewToken(ctx, uid, -time.Minute)
		require.NoError(t, err)

		_, err = core.ParseClaims(ctx, tokenStr)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestParseClaims(t *testing.T) {
	ctx := context.Background()
	core := testCore("test-secret")
	uid := uuid.New()

	t.Run("wrong secret", func(t *testing.T) {
		other := testCore("other-secret")
		tokenStr, err := other.NewToken(ctx, uid, time.Hour)
		require.NoError(t, err)

		_, err = core.ParseClaims(ctx, tokenStr)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		tokenStr, err := core.NewToken(ctx, uid, time.Hour)
		require.NoError(t, err)

		parts := strings.Split(tokenStr, ".")
		require.Len(t, parts, 3)
		parts[1] = "e" + parts[1][1:]

		_, err = core.ParseClaims(ctx, strings.Join(parts, "."))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := core.ParseClaims(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestIsExpired(t *testing.T) {
	ctx := context.Background()
	core := testCore("test-secret")
	uid := uuid.New()

	t.Run("live token", func(t *testing.T) {
		tokenStr, err := core.NewToken(ctx, uid, time.Hour)
		require.NoError(t, err)

		expired, err := core.IsExpired(ctx, tokenStr)
		require.NoError(t, err)
		assert.False(t, expired)
	})

	t.Run("expired token", func(t *testing.T) {
		tokenStr, err := core.NewToken(ctx, uid, -time.Minute)
		require.NoError(t, err)

		expired, err := core.IsExpired(ctx, tokenStr)
		require.NoError(t, err)
		assert.True(t, expired)
	})

	t.Run("bad signature is an error, not expiry", func(t *testing.T) {
		other := testCore("other-secret")
		tokenStr, err := other.NewToken(ctx, uid, time.Hour)
		require.NoError(t, err)

		expired, err := core.IsExpired(ctx, tokenStr)
		assert.ErrorIs(t, err, ErrInvalidSignature)
		assert.False(t, expired)
	})
}
