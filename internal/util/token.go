package util

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrNoAuthorizationHeader = errors.New("no authorization header specified")

// Read Authorization header from the request and return the token type and token
func ReadAuthorizationHeader(ctx *gin.Context) (string, string, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", "", ErrNoAuthorizationHeader
	}

	tokenType, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", "", errors.New("wrong authorization header format")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", "", errors.New("token is empty")
	}

	return strings.ToUpper(tokenType), token, nil
}

func readTokenOfType(ctx *gin.Context, want string) (string, error) {
	tokenType, token, err := ReadAuthorizationHeader(ctx)
	if err != nil {
		return "", err
	}

	if !strings.EqualFold(tokenType, want) {
		return "", errors.New("invalid token type; expected '" + want + "'")
	}

	return token, nil
}

// Read Bearer token from the request Authorization header and return the token
func ReadBearerToken(ctx *gin.Context) (string, error) {
	return readTokenOfType(ctx, "Bearer")
}

// Read Refresh token from the request Authorization header and return the token
func ReadRefreshToken(ctx *gin.Context) (string, error) {
	return readTokenOfType(ctx, "Refresh")
}
