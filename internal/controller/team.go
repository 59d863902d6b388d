package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/mailer"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// invitationResponder is the part of the invitation repository that accept and decline use.
type invitationResponder interface {
	GetById(ctx context.Context, tx *gorm.DB, invitationId string) (*model.ProposalTeamInvitation, error)
	Respond(ctx context.Context, tx *gorm.DB, invitationId string, status constant.InvitationStatus, respondedAt time.Time) error
}

type TeamController struct {
	*baseController
	invitations invitationResponder
}

const invitationTokenLength = 32

var ErrInvalidRateRange = errors.New("rateMax must be greater than or equal to rateMin")

// proposalForOwner loads a proposal and answers 403 when the caller does not own it.
func (tc TeamController) proposalForOwner(ctx *gin.Context, user *auth.JWTPayload, proposalId string) (*model.Proposal, bool) {
	proposal, err := tc.app.Repository.Proposal.GetById(ctx, nil, proposalId)
	if err != nil {
		tc.respondError(ctx, "Proposal not found", notFoundAs(err, ErrProposalNotFound))
		return nil, false
	}

	if !proposal.IsOwner(user.ID) {
		tc.respondError(ctx, "Only the proposal owner can manage its team", ErrForbidden)
		return nil, false
	}

	return proposal, true
}

func (tc TeamController) Invite(ctx *gin.Context) {
	type Request struct {
		ProposalID    string  `json:"proposalId" form:"proposalId" binding:"required,strNotEmpty"`
		Email         string  `json:"email" form:"email" binding:"required,email,max=255"`
		Role          string  `json:"role" form:"role" binding:"required,cmin=2,cmax=120"`
		RateMin       float64 `json:"rateMin" form:"rateMin" binding:"gte=0"`
		RateMax       float64 `json:"rateMax" form:"rateMax" binding:"gte=0"`
		HoursEstimate float64 `json:"hoursEstimate" form:"hoursEstimate" binding:"gte=0"`
	}
	var body Request

	user, ok := tc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		tc.badRequest(ctx, err)
		return
	}
	if body.RateMax < body.RateMin {
		tc.badRequest(ctx, ErrInvalidRateRange, "rateMax")
		return
	}

	proposal, ok := tc.proposalForOwner(ctx, user, body.ProposalID)
	if !ok {
		return
	}

	token, err := util.GenerateNChar(invitationTokenLength)
	if err != nil {
		tc.respondError(ctx, "Failed to create invitation", err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	now := time.Now()

	invitation, err := tc.app.Repository.Invitation.GetByProposalAndEmail(ctx, nil, proposal.ID, email)
	switch {
	case err == nil:
		if err := invitation.Reinvite(token, now); err != nil {
			tc.respondError(ctx, "Email has already been invited", err)
			return
		}
		invitation.Role = strings.TrimSpace(body.Role)
		invitation.RateMin = body.RateMin
		invitation.RateMax = body.RateMax
		invitation.HoursEstimate = body.HoursEstimate
		err = tc.app.Repository.Invitation.Save(ctx, nil, invitation)
	case errors.Is(err, gorm.ErrRecordNotFound):
		invitation = &model.ProposalTeamInvitation{
			Email:         email,
			Role:          strings.TrimSpace(body.Role),
			RateMin:       body.RateMin,
			RateMax:       body.RateMax,
			HoursEstimate: body.HoursEstimate,
			Status:        constant.InvitationStatusInvited,
			Token:         token,
			InvitedAt:     now,
			ProposalID:    proposal.ID,
		}
		err = tc.app.Repository.Invitation.Create(ctx, nil, invitation)
	}
	if err != nil {
		tc.respondError(ctx, "Failed to create invitation", err)
		return
	}

	tc.app.Notifier.Notify(mailer.TemplateTeamInvitation, invitation.Email, mailer.TeamInvitationData{
		InviteeEmail:  invitation.Email,
		InviterName:   strings.TrimSpace(user.FirstName + " " + user.LastName),
		ProposalID:    proposal.ID,
		ProposalTitle: proposal.Title,
		Role:          invitation.Role,
		RateMin:       invitation.RateMin,
		RateMax:       invitation.RateMax,
		InvitationURL: tc.app.Config.FrontURL + "/invitations/" + token,
	})

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"invitation": invitation,
	})
}

func (tc TeamController) GetProposalTeam(ctx *gin.Context) {
	user, ok := tc.mustAuthUser(ctx)
	if !ok {
		return
	}

	proposal, ok := tc.proposalForOwner(ctx, user, ctx.Param("proposalId"))
	if !ok {
		return
	}

	invitations, err := tc.app.Repository.Invitation.ListForProposal(ctx, nil, proposal.ID)
	if err != nil {
		tc.respondError(ctx, "Failed to list team", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"proposal":    proposal,
		"invitations": invitations,
		"rateCard":    model.BuildRateCard(invitations),
	})
}

// ListInvitations returns invitations addressed to the caller's email.
func (tc TeamController) ListInvitations(ctx *gin.Context) {
	user, ok := tc.mustAuthUser(ctx)
	if !ok {
		return
	}

	status := constant.InvitationStatus(ctx.Query("status"))
	switch status {
	case "", constant.InvitationStatusInvited, constant.InvitationStatusAccepted, constant.InvitationStatusDeclined:
	default:
		tc.badRequest(ctx, model.ErrInvalidStatus, "status")
		return
	}

	invitations, err := tc.app.Repository.Invitation.ListForEmail(ctx, nil, strings.ToLower(user.Email), status)
	if err != nil {
		tc.respondError(ctx, "Failed to list invitations", err)
		return
	}

	type item struct {
		model.ProposalTeamInvitation
		ProposalTitle string `json:"proposalTitle"`
	}
	out := make([]item, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, item{ProposalTeamInvitation: inv, ProposalTitle: inv.Proposal.Title})
	}

	util.ResponseSuccess(ctx, gin.H{
		"invitations": out,
	})
}

// GetInvitationByToken lets the invitee open the emailed link before signing in.
func (tc TeamController) GetInvitationByToken(ctx *gin.Context) {
	invitation, err := tc.app.Repository.Invitation.GetByToken(ctx, nil, ctx.Param("token"))
	if err != nil {
		tc.respondError(ctx, "Invitation not found", notFoundAs(err, ErrInvitationMissing))
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"invitation":    invitation,
		"proposalTitle": invitation.Proposal.Title,
	})
}

func (tc TeamController) AcceptInvitation(ctx *gin.Context) {
	tc.respond(ctx, true)
}

func (tc TeamController) DeclineInvitation(ctx *gin.Context) {
	tc.respond(ctx, false)
}

func (tc TeamController) respond(ctx *gin.Context, accept bool) {
	user, ok := tc.mustAuthUser(ctx)
	if !ok {
		return
	}

	invitation, err := tc.invitations.GetById(ctx, nil, ctx.Param("id"))
	if err != nil {
		tc.respondError(ctx, "Invitation not found", notFoundAs(err, ErrInvitationMissing))
		return
	}

	if !invitation.IsFor(user.Email) {
		tc.respondError(ctx, "This invitation was sent to another email", ErrForbidden)
		return
	}

	now := time.Now()
	if accept {
		err = invitation.Accept(now)
	} else {
		err = invitation.Decline(now)
	}
	if err != nil {
		tc.respondError(ctx, "Invitation has already been responded to", err)
		return
	}

	if err := tc.invitations.Respond(ctx, nil, invitation.ID, invitation.Status, now); err != nil {
		if errors.Is(err, model.ErrAlreadyResponded) {
			tc.respondError(ctx, "Invitation has already been responded to", err)
			return
		}
		tc.respondError(ctx, "Failed to respond to invitation", err)
		return
	}

	tc.notifyOwner(ctx, invitation, accept)

	util.ResponseSuccess(ctx, gin.H{
		"invitation": invitation,
	})
}

func (tc TeamController) notifyOwner(ctx *gin.Context, invitation *model.ProposalTeamInvitation, accepted bool) {
	owner, err := tc.app.Repository.User.GetById(ctx, nil, invitation.Proposal.UserID)
	if err != nil {
		tc.app.Logger.Warnw("Failed to load proposal owner for notification", "invitationId", invitation.ID, "error", err)
		return
	}

	tc.app.Notifier.Notify(mailer.TemplateInvitationResponse, owner.Email, mailer.InvitationResponseData{
		OwnerName:     owner.FullName(),
		MemberEmail:   invitation.Email,
		ProposalID:    invitation.ProposalID,
		ProposalTitle: invitation.Proposal.Title,
		Role:          invitation.Role,
		Accepted:      accepted,
		ProposalURL:   tc.app.Config.FrontURL + "/proposals/" + invitation.ProposalID,
	})
}

func (tc TeamController) RemoveMember(ctx *gin.Context) {
	user, ok := tc.mustAuthUser(ctx)
	if !ok {
		return
	}

	proposal, ok := tc.proposalForOwner(ctx, user, ctx.Param("proposalId"))
	if !ok {
		return
	}

	affected, err := tc.app.Repository.Invitation.DeleteFromProposal(ctx, nil, proposal.ID, ctx.Param("memberId"))
	if err != nil {
		tc.respondError(ctx, "Failed to remove member", err)
		return
	}
	if affected == 0 {
		tc.respondError(ctx, "Member not found", ErrInvitationMissing)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
