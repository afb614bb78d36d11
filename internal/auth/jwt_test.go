package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "isabelle", []string{"employee"}, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "isabelle", claims.Sub)
	assert.Equal(t, []string{"employee"}, claims.Roles)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "isabelle", []string{"employee"}, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, "isabelle", []string{"employee"}, -time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(testSecret, token)
	assert.Error(t, err)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := VerifyToken(testSecret, "not.a.token")
	assert.Error(t, err)
}
