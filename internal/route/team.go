package route

import (
	"github.com/SeakMengs/AutoRFP/internal/controller"
	"github.com/SeakMengs/AutoRFP/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Team(r *gin.RouterGroup, tc *controller.TeamController, m *middleware.Middleware) {
	g := r.Group("/team")

	// The emailed link is opened before the invitee signs in
	g.GET("/invitations/token/:token", tc.GetInvitationByToken)

	authed := g.Group("")
	authed.Use(m.AuthMiddleware)
	{
		authed.POST("/invite", m.InvitationRateLimit, tc.Invite)
		authed.GET("/proposal/:proposalId", tc.GetProposalTeam)
		authed.DELETE("/proposal/:proposalId/member/:memberId", tc.RemoveMember)
		authed.GET("/invitations", tc.ListInvitations)
		authed.POST("/invitations/:id/accept", tc.AcceptInvitation)
		authed.POST("/invitations/:id/decline", tc.DeclineInvitation)
	}
}
