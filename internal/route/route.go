package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/metrics"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Register mounts every route on r.
func Register(r *gin.Engine, c *controller.Controller, m *middleware.Middleware) {
	r.GET("/health", c.Index.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("", c.Index.Index)

	Auth(api, c.Auth, c.OAuth, m)
	Profile(api, c.Profile, m)
	Documents(api, c.Document, m)
	RFP(api, c.RFP, m)
	Proposals(api, c.Proposal, m)
	Team(api, c.Team, m)
	Analytics(api, c.Analytics, m)
	QRCodes(api, c.QRCode, c.LeadCapture, m)
}
