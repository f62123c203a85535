package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	verifier := NewStaticVerifier(
		map[string]string{"tok-alice": "alice"},
		map[string]string{"tok-bob": "bob"},
	)

	t.Run("verified_token", func(t *testing.T) {
		id, err := verifier.Verify("tok-alice")
		require.NoError(t, err)
		require.Equal(t, Identity{UserID: "alice", EmailVerified: true}, id)
	})

	t.Run("unverified_token", func(t *testing.T) {
		id, err := verifier.Verify("tok-bob")
		require.NoError(t, err)
		require.Equal(t, Identity{UserID: "bob", EmailVerified: false}, id)
	})

	t.Run("unknown_token", func(t *testing.T) {
		_, err := verifier.Verify("garbage")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty_token", func(t *testing.T) {
		_, err := verifier.Verify("")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	require.Empty(t, Actor(c))

	c.Set(ActorKey, "alice")
	require.Equal(t, "alice", Actor(c))
}
