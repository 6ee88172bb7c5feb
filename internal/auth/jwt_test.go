package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestManager() *JWTManager {
	return &JWTManager{secret: "test-secret"}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateAccessJWT("user-1", defaultJWTDuration)
	assert.NoError(t, err)

	userID, err := manager.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestAccessTokenExpires(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateAccessJWT("user-1", -time.Minute)
	assert.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestRefreshTokenBoundToHashToken(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateRefreshJWT("user-1", "hash-before", defaultJWTRefreshDuration)
	assert.NoError(t, err)

	assert.NoError(t, manager.ValidateRefreshToken(token, "hash-before"))

	// rotating the hash token (password change) revokes outstanding refresh tokens
	err = manager.ValidateRefreshToken(token, "hash-after")
	assert.ErrorIs(t, err, ErrInvalidJWTRefreshToken)
}

func TestRefreshTokenRejectsForeignSecret(t *testing.T) {
	manager := newTestManager()
	other := &JWTManager{secret: "another-secret"}

	token, err := other.GenerateRefreshJWT("user-1", "hash", defaultJWTRefreshDuration)
	assert.NoError(t, err)

	err = manager.ValidateRefreshToken(token, "hash")
	assert.Error(t, err)
}

func TestExtractUserIDFromRefreshToken(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateRefreshJWT("user-42", "hash", defaultJWTRefreshDuration)
	assert.NoError(t, err)

	userID, err := manager.ExtractUserIDFromRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}
