package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type JWT struct {
	logger     *zap.SugaredLogger
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type JWTInterface interface {
	GenerateRefreshAndAccessToken(payload JWTPayload) (*string, *string, error)
	VerifyJwtToken(token string) (*JWTClaims, error)
}

func NewJwt(cfg config.AuthConfig, logger *zap.SugaredLogger) *JWT {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTokenTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &JWT{
		jwtSecret:  cfg.JWT_SECRET,
		logger:     logger,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type JWTPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type JWTClaims struct {
	User JWTPayload       `json:"user"`
	Type constant.JWTType `json:"type"`
	IAT  int64            `json:"iat"`
	EXP  int64            `json:"exp"`
}

type tokenClaims struct {
	User JWTPayload       `json:"user"`
	Type constant.JWTType `json:"type"`
	jwt.RegisteredClaims
}

func (j JWT) sign(payload JWTPayload, typ constant.JWTType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		User: payload,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// Two tokens signed in the same second must still differ
			ID: fmt.Sprintf("%s-%d", typ, now.UnixNano()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.jwtSecret))
}

// Return refreshToken, accessToken, error
func (j JWT) GenerateRefreshAndAccessToken(payload JWTPayload) (*string, *string, error) {
	j.logger.Debugf("Generate refresh and access token for user: %s", payload.ID)

	refreshToken, err := j.sign(payload, constant.JWT_TYPE_REFRESH, j.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	accessToken, err := j.sign(payload, constant.JWT_TYPE_ACCESS, j.accessTTL)
	if err != nil {
		return nil, nil, err
	}

	return &refreshToken, &accessToken, nil
}

func (j JWT) VerifyJwtToken(token string) (*JWTClaims, error) {
	var claims tokenClaims
	parsedToken, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.jwtSecret), nil
	})
	if err != nil {
		j.logger.Debugf("Failed to verify jwt token. Error: %v", err)
		return nil, err
	}

	if !parsedToken.Valid {
		j.logger.Debug("Jwt token is not valid")
		return nil, errors.New("jwt token is not valid")
	}

	if claims.User.ID == "" {
		return nil, errors.New("invalid token: user field is missing or malformed")
	}

	out := &JWTClaims{
		User: claims.User,
		Type: claims.Type,
	}
	if claims.IssuedAt != nil {
		out.IAT = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		out.EXP = claims.ExpiresAt.Unix()
	}

	return out, nil
}
