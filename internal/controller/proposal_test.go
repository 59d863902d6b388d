package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
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

// The app has no pipeline, so a batch that gets past the limiter would panic.
func newBatchRouter(t *testing.T) (*gin.Engine, *ratelimiter.FixedWindowRateLimiter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := util.NewLogger()
	limiter := ratelimiter.NewRateLimiter(config.RateLimiterConfig{
		Enabled:       true,
		AIGenerations: 20,
		AITimeFrame:   time.Hour,
	}, nil, logger)

	app := &appcontext.Application{
		Config:      &config.Config{},
		Logger:      logger,
		RateLimiter: limiter,
	}
	pc := ProposalController{baseController: newBaseController(app)}

	r := gin.New()
	r.POST("/api/proposals/generate-batch", func(ctx *gin.Context) {
		ctx.Set("user", auth.JWTPayload{ID: "user-1", Email: "owner@example.com"})
		ctx.Next()
	}, pc.GenerateBatch)
	return r, limiter
}

func postBatch(r *gin.Engine, texts int) *httptest.ResponseRecorder {
	form := url.Values{}
	for i := 0; i < texts; i++ {
		form.Add("texts", "Request for proposal number "+strconv.Itoa(i))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/proposals/generate-batch", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateBatchChargesAIRulePerItem(t *testing.T) {
	r, limiter := newBatchRouter(t)
	ctx := context.Background()

	require.True(t, limiter.AllowN(ctx, limiter.Rules.AI, "10.0.0.1", 15).Allowed)

	w := postBatch(r, 6)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Remaining"))

	res := decodeResponse(t, w)
	assert.Equal(t, constant.ErrKindRateLimit, res.Error)

	// The refused batch charged nothing
	assert.True(t, limiter.AllowN(ctx, limiter.Rules.AI, "10.0.0.1", 5).Allowed)
	assert.False(t, limiter.Allow(ctx, limiter.Rules.AI, "10.0.0.1").Allowed)
}

func TestGenerateBatchRejectsOversizedBatchBeforeCharging(t *testing.T) {
	r, limiter := newBatchRouter(t)

	w := postBatch(r, maxBatchItems+1)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	res := limiter.AllowN(context.Background(), limiter.Rules.AI, "10.0.0.1", limiter.Rules.AI.Limit)
	assert.True(t, res.Allowed)
}
