package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-123", "designer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "designer", claims.UserType)
	assert.Equal(t, "designmatch", claims.Issuer)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)

	_, err = ParseToken("")
	assert.Error(t, err)
}

func TestParseToken_TamperedSignature(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-123", "client")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ParseToken(tampered)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("swordfish-42")
	require.NoError(t, err)
	assert.NotEqual(t, "swordfish-42", hash)

	assert.True(t, CheckPasswordHash("swordfish-42", hash))
	assert.False(t, CheckPasswordHash("swordfish-43", hash))
	assert.False(t, CheckPasswordHash("swordfish-42", "not-a-hash"))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("a perfectly fine passphrase"))
}
