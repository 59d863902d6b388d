package middleware

import (
	"net/http"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/metrics"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request and records the request metrics.
func (m Middleware) RequestLogger(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	elapsed := time.Since(start)

	route := ctx.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := ctx.Writer.Status()

	metrics.ObserveHTTP(ctx.Request.Method, route, status, elapsed)
	m.app.Logger.Infow("request",
		"method", ctx.Request.Method,
		"path", ctx.Request.URL.Path,
		"status", status,
		"latency", elapsed.String(),
		"ip", ctx.ClientIP(),
	)
}

// Recovery turns a panic into an InternalError envelope.
func (m Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		m.app.Logger.Errorw("panic while handling request", "panic", recovered, "path", ctx.Request.URL.Path)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Internal server error", nil, nil)
	})
}
