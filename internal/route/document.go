package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Documents(r *gin.RouterGroup, dc *controller.DocumentController, m *middleware.Middleware) {
	g := r.Group("/documents")
	g.Use(m.AuthMiddleware)
	{
		g.GET("", dc.ListDocuments)
		g.POST("/upload", dc.UploadDocument)
		g.POST("/upload-multiple", dc.UploadMultipleDocuments)
		g.GET("/:id", dc.GetDocument)
		g.GET("/:id/download", dc.DownloadDocument)
		g.DELETE("/:id", dc.DeleteDocument)
	}
}
