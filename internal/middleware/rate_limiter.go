package middleware

import (
	"strconv"

	"github.com/SeakMengs/AutoRFP/internal/metrics"
	ratelimiter "github.com/SeakMengs/AutoRFP/internal/rate_limiter"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
)

// RateLimiterMiddleware applies the global rule to every request.
func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	m.limit(ctx, m.rateLimiter.Rules.Global)
}

func (m Middleware) AuthRateLimit(ctx *gin.Context) {
	m.limit(ctx, m.rateLimiter.Rules.Auth)
}

func (m Middleware) AIRateLimit(ctx *gin.Context) {
	m.limit(ctx, m.rateLimiter.Rules.AI)
}

func (m Middleware) InvitationRateLimit(ctx *gin.Context) {
	m.limit(ctx, m.rateLimiter.Rules.Invitation)
}

func (m Middleware) limit(ctx *gin.Context, rule ratelimiter.Rule) {
	if m.rateLimiter == nil || !m.rateLimiter.Enabled() {
		ctx.Next()
		return
	}

	result := m.rateLimiter.Allow(ctx.Request.Context(), rule, ctx.ClientIP())
	ctx.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
	ctx.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

	if !result.Allowed {
		m.app.Logger.Infow("Rate limit exceeded", "rule", rule.Name, "ip", ctx.ClientIP(), "path", ctx.Request.URL.Path)
		metrics.IncRateLimited(rule.Name)
		util.ResponseRateLimited(ctx, result.RetryAfter)
		return
	}

	ctx.Next()
}
