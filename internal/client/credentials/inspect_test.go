package credentials

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "0b6f1c3e-1111-2222-3333-444455556666",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("server-secret"))
	require.NoError(t, err)

	c, err := Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "0b6f1c3e-1111-2222-3333-444455556666", c.Subject)
	assert.True(t, c.ExpiresAt.Equal(exp))
	assert.True(t, c.IssuedAt.IsZero())
	assert.False(t, c.Expired(exp.Add(-time.Minute)))
	assert.True(t, c.Expired(exp.Add(time.Minute)))
}

func TestInspect_Malformed(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestClaims_NoExpiryNeverExpires(t *testing.T) {
	assert.False(t, Claims{}.Expired(time.Now()))
}
