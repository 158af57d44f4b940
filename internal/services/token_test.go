package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTokenWithSub(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestCheckTokenSubMatch(t *testing.T) {
	header := "Bearer " + signedTokenWithSub(t, "user-123")

	ok, message := CheckTokenSub(header, "user-123")

	assert.True(t, ok)
	assert.Empty(t, message)
}

func TestCheckTokenSubWithoutBearerPrefix(t *testing.T) {
	ok, _ := CheckTokenSub(signedTokenWithSub(t, "user-123"), "user-123")
	assert.True(t, ok)
}

func TestCheckTokenSubMismatch(t *testing.T) {
	header := "Bearer " + signedTokenWithSub(t, "user-123")

	ok, message := CheckTokenSub(header, "user-456")

	assert.False(t, ok)
	assert.NotEmpty(t, message)
}

func TestCheckTokenSubCaseSensitive(t *testing.T) {
	header := "Bearer " + signedTokenWithSub(t, "User-123")

	ok, _ := CheckTokenSub(header, "user-123")

	assert.False(t, ok)
}

func TestCheckTokenSubMissingToken(t *testing.T) {
	ok, message := CheckTokenSub("", "user-123")

	assert.False(t, ok)
	assert.Equal(t, "missing authorization token", message)
}

func TestCheckTokenSubGarbage(t *testing.T) {
	ok, _ := CheckTokenSub("Bearer not.a.token", "user-123")
	assert.False(t, ok)
}

func TestCheckTokenSubNoSubjectClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"aud": "cinematica"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	ok, message := CheckTokenSub("Bearer "+signed, "user-123")

	assert.False(t, ok)
	assert.Equal(t, "token has no subject claim", message)
}
