package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RFP(r *gin.RouterGroup, rc *controller.RFPController, m *middleware.Middleware) {
	g := r.Group("/rfp")
	g.Use(m.AuthMiddleware)
	{
		g.GET("", rc.ListRFPs)
		g.POST("/upload", m.AIRateLimit, rc.UploadRFP)
		g.GET("/:id", rc.GetRFP)
		g.POST("/:id/reparse", m.AIRateLimit, rc.ReparseRFP)
		g.PUT("/:id/validate", rc.ValidateRFP)
		g.DELETE("/:id", rc.DeleteRFP)
		g.GET("/:id/download", rc.DownloadRFP)
	}
}
