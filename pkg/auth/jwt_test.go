package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/auth"
)

const userID = "64b7f0c2a1b2c3d4e5f60718"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(userID, []string{"user", "admin"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("root"))
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	pair, err := auth.GeneratePair(userID, []string{"user"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshID)

	_, err = auth.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)

	claims, err := auth.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshID, claims.ID)

	_, err = auth.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken(userID, nil)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := auth.HashPassword("Secret1")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "Secret1"))
	assert.False(t, auth.CheckPassword(hash, "secret1"))
}

func TestClaimsContext(t *testing.T) {
	_, ok := auth.ClaimsFromCtx(context.Background())
	assert.False(t, ok)

	ctx := auth.WithClaims(context.Background(), &auth.Claims{UserID: userID})
	c, ok := auth.ClaimsFromCtx(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, c.UserID)
}
