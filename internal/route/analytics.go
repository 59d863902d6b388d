package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Analytics(r *gin.RouterGroup, ac *controller.AnalyticsController, m *middleware.Middleware) {
	g := r.Group("/analytics")
	g.Use(m.AuthMiddleware)
	{
		g.GET("/proposal-times", ac.ProposalTimes)
		g.GET("/team-responses", ac.TeamResponses)
		g.POST("/track-stage", ac.TrackStage)
		g.PUT("/track-stage/:id/complete", ac.CompleteStage)
	}
}
