package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/steptrack/internal/common"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-42", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestGenerateToken_UniquePerIssuance(t *testing.T) {
	secret := []byte("test-secret")

	t1, err := GenerateToken("user-42", secret, time.Hour)
	require.NoError(t, err)
	t2, err := GenerateToken("user-42", secret, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2, "tokens must differ even for the same user")
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-42", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-42", []byte("k"), -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not-a-jwt", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestClaims_CarryJTI(t *testing.T) {
	secret := []byte("k")
	tokenString, err := GenerateToken("user-42", secret, time.Hour)
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}
