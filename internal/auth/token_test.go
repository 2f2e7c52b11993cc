package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue(Identity{EmployeeID: 12, Email: "boss@example.com", IsAdmin: true})
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{EmployeeID: 12, Email: "boss@example.com", IsAdmin: true}, id)
}

func TestParseRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer("other", time.Hour)
		token, err := other.Issue(Identity{EmployeeID: 1})
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewTokenIssuer("secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := old.Issue(Identity{EmployeeID: 1})
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = issuer.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
