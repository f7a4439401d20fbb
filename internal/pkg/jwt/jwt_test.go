package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "cajero1", "Cajero Uno", "EMPLOYEE", testSecret, 30)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "cajero1", claims.Username)
	assert.Equal(t, "Cajero Uno", claims.FullName)
	assert.Equal(t, "EMPLOYEE", claims.Role)
	assert.Equal(t, "luna-empenos", claims.Issuer)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "cajero1", "Cajero Uno", "EMPLOYEE", testSecret, 30)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "otra-llave")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(7, "cajero1", "Cajero Uno", "EMPLOYEE", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessToken_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("no.es.jwt", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestRefreshToken_NotValidAsAccess(t *testing.T) {
	// Signed with a different secret, so the access validator rejects it.
	token, err := GenerateRefreshToken(7, "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
