package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Auth(r *gin.RouterGroup, ac *controller.AuthController, oc *controller.OAuthController, m *middleware.Middleware) {
	g := r.Group("/auth")
	{
		g.POST("/register", m.AuthRateLimit, ac.Register)
		g.POST("/login", m.AuthRateLimit, ac.Login)
		g.POST("/logout", ac.Logout)
		g.POST("/refresh", m.AuthRateLimit, ac.RefreshAccessToken)
		g.POST("/forgot-password", m.AuthRateLimit, ac.ForgotPassword)
		g.POST("/reset-password", m.AuthRateLimit, ac.ResetPassword)
		g.POST("/jwt/access/verify", ac.VerifyJwtAccessToken)
		g.GET("/me", m.AuthMiddleware, ac.Me)

		g.GET("/google", oc.ContinueWithGoogle)
		g.GET("/google/callback", m.AuthRateLimit, oc.ContinueWithGoogleCallback)
	}
}
