package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcontext "github.com/SeakMengs/AutoRFP/internal/app_context"
	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	ratelimiter "github.com/SeakMengs/AutoRFP/internal/rate_limiter"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) (*Middleware, *auth.JWT) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := util.NewLogger()
	jwtService := auth.NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, logger)
	app := &appcontext.Application{
		Config:     &config.Config{},
		Logger:     logger,
		JWTService: jwtService,
	}

	limiter := ratelimiter.NewRateLimiter(config.RateLimiterConfig{
		Enabled:              true,
		RequestsPerTimeFrame: 100,
		TimeFrame:            time.Minute,
		AuthAttempts:         2,
		AuthTimeFrame:        15 * time.Minute,
		AIGenerations:        20,
		AITimeFrame:          time.Hour,
		Invitations:          50,
		InvitationTimeFrame:  24 * time.Hour,
	}, nil, logger)

	return NewMiddleware(app, limiter), jwtService
}

func decode(t *testing.T, w *httptest.ResponseRecorder) util.Response {
	t.Helper()
	var res util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestAuthRateLimitRejectsAfterLimit(t *testing.T) {
	m, _ := newTestMiddleware(t)
	r := gin.New()
	r.POST("/api/auth/signin", m.AuthRateLimit, func(ctx *gin.Context) {
		util.ResponseSuccess(ctx, nil)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	res := decode(t, w)
	assert.False(t, res.Success)
	assert.Equal(t, constant.ErrKindRateLimit, res.Error)
}

func TestRateLimitIsPerClientIP(t *testing.T) {
	m, _ := newTestMiddleware(t)
	r := gin.New()
	r.POST("/signin", m.AuthRateLimit, func(ctx *gin.Context) {
		util.ResponseSuccess(ctx, nil)
	})

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/signin", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	send("10.0.0.1:1234")
	send("10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestAuthMiddleware(t *testing.T) {
	m, jwtService := newTestMiddleware(t)
	r := gin.New()
	r.GET("/me", m.AuthMiddleware, func(ctx *gin.Context) {
		user := ctx.MustGet("user").(auth.JWTPayload)
		util.ResponseSuccess(ctx, gin.H{"id": user.ID})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, constant.ErrKindUnauth, decode(t, w).Error)

	refresh, access, err := jwtService.GenerateRefreshAndAccessToken(auth.JWTPayload{ID: "user-1", Email: "a@b.co"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+*refresh)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+*access)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	m, _ := newTestMiddleware(t)
	r := gin.New()
	r.Use(m.Recovery())
	r.GET("/boom", func(ctx *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, constant.ErrKindInternal, decode(t, w).Error)
}
