package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

func QRCodes(r *gin.RouterGroup, qc *controller.QRCodeController, lc *controller.LeadCaptureController, m *middleware.Middleware) {
	g := r.Group("/qr-codes")
	g.Use(m.AuthMiddleware)
	{
		g.POST("", qc.CreateQRCode)
		g.GET("", qc.ListQRCodes)
		g.GET("/:id", qc.GetQRCode)
		g.PATCH("/:id", qc.UpdateQRCode)
		g.DELETE("/:id", qc.DeleteQRCode)
		g.GET("/:id/image.png", qc.QRCodePNG)
		g.GET("/:id/image.svg", qc.QRCodeSVG)
		g.GET("/:id/leads", qc.ListLeads)
	}

	public := r.Group("/lead-capture")
	{
		public.GET("/:uniqueCode", lc.GetLeadPage)
		public.POST("/:uniqueCode", lc.SubmitLead)
	}
}
