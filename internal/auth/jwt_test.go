package auth

import (
	"testing"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Perform token generation and verify the generated token to ensure VerifyJwtToken is correct
func TestJWT(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)
	payload := JWTPayload{
		ID:        "id1234",
		Email:     "test@gmail.com",
		FirstName: "Test",
		LastName:  "User",
	}

	refreshToken, accessToken, err := jwtService.GenerateRefreshAndAccessToken(payload)
	require.NoError(t, err)
	assert.NotEqual(t, *refreshToken, *accessToken)

	refreshClaims, err := jwtService.VerifyJwtToken(*refreshToken)
	require.NoError(t, err)
	assert.Equal(t, payload, refreshClaims.User)
	assert.Equal(t, constant.JWT_TYPE_REFRESH, refreshClaims.Type)

	accessClaims, err := jwtService.VerifyJwtToken(*accessToken)
	require.NoError(t, err)
	assert.Equal(t, constant.JWT_TYPE_ACCESS, accessClaims.Type)
	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), accessClaims.EXP, 5)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	issuer := NewJwt(config.AuthConfig{JWT_SECRET: "one"}, nil)
	verifier := NewJwt(config.AuthConfig{JWT_SECRET: "two"}, nil)

	_, accessToken, err := issuer.GenerateRefreshAndAccessToken(JWTPayload{ID: "u1", Email: "a@b.co"})
	require.NoError(t, err)

	_, err = verifier.VerifyJwtToken(*accessToken)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "s", AccessTokenTTL: -time.Minute}, nil)
	// Negative TTL falls back to the default, so sign an expired token directly
	token, err := jwtService.sign(JWTPayload{ID: "u1"}, constant.JWT_TYPE_ACCESS, -time.Minute)
	require.NoError(t, err)

	_, err = jwtService.VerifyJwtToken(token)
	assert.Error(t, err)
}
