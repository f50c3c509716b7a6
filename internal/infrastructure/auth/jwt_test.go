package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medistore/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "medistore-test",
		MaxRefreshCount:        3,
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "jane@example.com",
		Role:   "user",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateRejectsWrongTokenType(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "a@b.com", Role: "user"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "a@b.com", Role: "user"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Email: "a@b.com", Role: "user"})
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, "a@b.com", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestRefreshCountLimit(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "a@b.com", Role: "user"})
	require.NoError(t, err)

	token := pair.RefreshToken
	for i := 0; i < 3; i++ {
		newPair, err := svc.RefreshTokenPair(token, "a@b.com", "user")
		require.NoError(t, err)
		token = newPair.RefreshToken
	}

	_, err = svc.RefreshTokenPair(token, "a@b.com", "user")
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}
