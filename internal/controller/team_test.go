package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appcontext "github.com/SeakMengs/AutoRFP/internal/app_context"
	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeInvitations struct {
	invitation *model.ProposalTeamInvitation
	// lost simulates another request answering between the read and the update
	lost      bool
	responded []constant.InvitationStatus
}

func (f *fakeInvitations) GetById(ctx context.Context, tx *gorm.DB, invitationId string) (*model.ProposalTeamInvitation, error) {
	if f.invitation == nil || f.invitation.ID != invitationId {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.invitation
	return &copied, nil
}

func (f *fakeInvitations) Respond(ctx context.Context, tx *gorm.DB, invitationId string, status constant.InvitationStatus, respondedAt time.Time) error {
	if f.lost {
		return model.ErrAlreadyResponded
	}
	f.responded = append(f.responded, status)
	return nil
}

func newInvitationRouter(t *testing.T, invitations *fakeInvitations, email string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &appcontext.Application{
		Config: &config.Config{},
		Logger: util.NewLogger(),
	}
	tc := TeamController{baseController: newBaseController(app), invitations: invitations}

	r := gin.New()
	setUser := func(ctx *gin.Context) {
		ctx.Set("user", auth.JWTPayload{ID: "member-1", Email: email})
		ctx.Next()
	}
	r.POST("/api/team/invitations/:id/accept", setUser, tc.AcceptInvitation)
	r.POST("/api/team/invitations/:id/decline", setUser, tc.DeclineInvitation)
	return r
}

func pendingInvitation(status constant.InvitationStatus) *model.ProposalTeamInvitation {
	invitation := &model.ProposalTeamInvitation{
		Email:      "Dev@Example.com",
		Role:       "Engineer",
		Status:     status,
		ProposalID: "proposal-1",
	}
	invitation.ID = "inv-1"
	return invitation
}

func answer(r *gin.Engine, action string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/team/invitations/inv-1/"+action, nil))
	return w
}

func TestRespondToInvitationForAnotherEmail(t *testing.T) {
	invitations := &fakeInvitations{invitation: pendingInvitation(constant.InvitationStatusInvited)}
	r := newInvitationRouter(t, invitations, "someone.else@example.com")

	for _, action := range []string{"accept", "decline"} {
		w := answer(r, action)
		assert.Equal(t, http.StatusForbidden, w.Code, action)
		assert.Equal(t, constant.ErrKindForbidden, decodeResponse(t, w).Error, action)
	}
	assert.Empty(t, invitations.responded)
}

func TestRespondToAnsweredInvitation(t *testing.T) {
	for _, status := range []constant.InvitationStatus{constant.InvitationStatusAccepted, constant.InvitationStatusDeclined} {
		invitations := &fakeInvitations{invitation: pendingInvitation(status)}
		r := newInvitationRouter(t, invitations, "dev@example.com")

		for _, action := range []string{"accept", "decline"} {
			w := answer(r, action)
			assert.Equal(t, http.StatusConflict, w.Code, "%s after %s", action, status)
			assert.Equal(t, constant.ErrKindConflict, decodeResponse(t, w).Error)
		}
		assert.Empty(t, invitations.responded)
	}
}

func TestRespondLosesRaceToConcurrentAnswer(t *testing.T) {
	invitations := &fakeInvitations{invitation: pendingInvitation(constant.InvitationStatusInvited), lost: true}
	r := newInvitationRouter(t, invitations, "dev@example.com")

	w := answer(r, "decline")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, constant.ErrKindConflict, decodeResponse(t, w).Error)
}

func TestRespondToMissingInvitation(t *testing.T) {
	r := newInvitationRouter(t, &fakeInvitations{}, "dev@example.com")

	w := answer(r, "accept")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
