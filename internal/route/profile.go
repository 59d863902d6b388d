package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Profile(r *gin.RouterGroup, pc *controller.ProfileController, m *middleware.Middleware) {
	g := r.Group("/profile")
	g.Use(m.AuthMiddleware)
	{
		g.GET("", pc.GetProfile)
		g.PUT("", pc.UpdateProfile)
		g.DELETE("", pc.DeleteProfile)
		g.GET("/strength", pc.Strength)
		g.GET("/marketplace", pc.Marketplace)
		g.GET("/:id", pc.GetProfileById)
	}
}
