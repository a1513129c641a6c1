package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/clock"
)

var alice = shared.MustParseIdentity("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")

func TestJWTService_GenerateVerify(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	svc := NewJWTService("test-secret", "subledger", 60, clk)

	token, exp, err := svc.Generate(alice)
	require.NoError(t, err)
	assert.Equal(t, clk.Now().Add(time.Hour), exp)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, alice, identity)
}

func TestJWTService_Rejects(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	svc := NewJWTService("test-secret", "subledger", 60, clk)
	token, _, err := svc.Generate(alice)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := NewJWTService("test-secret", "subledger", 60,
			clock.NewFakeClock(clk.Now().Add(2*time.Hour)))
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTService("other", "subledger", 60, clk).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewJWTService("test-secret", "someone-else", 60, clk).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("subject is not an identity", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			Issuer:    "subledger",
			ExpiresAt: jwt.NewNumericDate(clk.Now().Add(time.Hour)),
		}}
		bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = svc.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
