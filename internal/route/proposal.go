package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Proposals(r *gin.RouterGroup, pc *controller.ProposalController, m *middleware.Middleware) {
	g := r.Group("/proposals")
	g.Use(m.AuthMiddleware)
	{
		g.POST("", pc.CreateProposal)
		g.GET("", pc.ListProposals)
		g.POST("/generate", m.AIRateLimit, pc.GenerateProposal)
		// Batches charge the AI rule once per item inside the handler
		g.POST("/generate-batch", pc.GenerateBatch)
		g.GET("/:id", pc.GetProposal)
		g.PUT("/:id", pc.UpdateProposal)
		g.PUT("/:id/status", pc.UpdateStatus)
		g.PUT("/:id/withdraw", pc.Withdraw)
		g.POST("/:id/refine", m.AIRateLimit, pc.RefineSection)
		g.POST("/:id/scorecard", m.AIRateLimit, pc.Scorecard)
		g.GET("/:id/timeline", pc.Timeline)
		g.DELETE("/:id", pc.DeleteProposal)
		g.GET("/:id/export/docx", pc.ExportDocx)
		g.GET("/:id/export/pdf", pc.ExportPDF)
	}
}
