package helper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("secret")

	tok, err := auth.GenerateToken(42, "oski@berkeley.edu")
	require.NoError(t, err)

	for _, raw := range []string{tok, "Bearer " + tok, "Token " + tok} {
		claims, err := auth.VerifyToken(raw)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "oski@berkeley.edu", claims.Email)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	auth := SetupAuth("secret")

	_, err := auth.VerifyToken("")
	assert.EqualError(t, err, "missing token")

	other, err := SetupAuth("other").GenerateToken(1, "a@berkeley.edu")
	require.NoError(t, err)
	_, err = auth.VerifyToken(other)
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"email":   "a@berkeley.edu",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	s, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = auth.VerifyToken(s)
	assert.EqualError(t, err, "token expired")
}

func TestGenerateTokenRequiresInputs(t *testing.T) {
	_, err := SetupAuth("secret").GenerateToken(0, "a@berkeley.edu")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("secret")
	hashed, err := auth.HashPassword("hunter22")
	require.NoError(t, err)

	assert.NoError(t, auth.VerifyPassword("hunter22", hashed))
	assert.Error(t, auth.VerifyPassword("wrong", hashed))
	assert.Error(t, auth.VerifyPassword("hunter22", ""))
}

func TestCleanList(t *testing.T) {
	got := CleanList([]string{" Strategy", "", "tech", "strategy", "Tech"})
	assert.Equal(t, []string{"Strategy", "tech"}, got)
	assert.True(t, ContainsFold(got, "TECH"))
}
