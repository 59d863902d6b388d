package model

import (
	"testing"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvitation() ProposalTeamInvitation {
	return ProposalTeamInvitation{
		Email:     "dev@example.com",
		Role:      "Engineer",
		Status:    constant.InvitationStatusInvited,
		Token:     "tok-1",
		InvitedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestInvitationAcceptIsTerminal(t *testing.T) {
	inv := newInvitation()
	now := time.Now()

	require.NoError(t, inv.Accept(now))
	assert.Equal(t, constant.InvitationStatusAccepted, inv.Status)
	require.NotNil(t, inv.RespondedAt)

	assert.ErrorIs(t, inv.Accept(now), ErrAlreadyResponded)
	assert.ErrorIs(t, inv.Decline(now), ErrAlreadyResponded)
	assert.ErrorIs(t, inv.Reinvite("tok-2", now), ErrDuplicateInvitation)
	assert.Equal(t, constant.InvitationStatusAccepted, inv.Status)
}

func TestInvitationDeclineThenReinvite(t *testing.T) {
	inv := newInvitation()
	declinedAt := time.Now()

	require.NoError(t, inv.Decline(declinedAt))
	assert.Equal(t, constant.InvitationStatusDeclined, inv.Status)
	assert.ErrorIs(t, inv.Accept(declinedAt), ErrAlreadyResponded)

	reinvitedAt := declinedAt.Add(time.Hour)
	require.NoError(t, inv.Reinvite("tok-2", reinvitedAt))
	assert.Equal(t, constant.InvitationStatusInvited, inv.Status)
	assert.Nil(t, inv.RespondedAt)
	assert.Equal(t, "tok-2", inv.Token)
	assert.Equal(t, reinvitedAt, inv.InvitedAt)

	require.NoError(t, inv.Accept(reinvitedAt))
	assert.Equal(t, constant.InvitationStatusAccepted, inv.Status)
}

func TestInvitationOpenCannotBeReinvited(t *testing.T) {
	inv := newInvitation()
	assert.ErrorIs(t, inv.Reinvite("tok-2", time.Now()), ErrDuplicateInvitation)
	assert.Equal(t, "tok-1", inv.Token)
}

func TestInvitationIsFor(t *testing.T) {
	inv := newInvitation()
	assert.True(t, inv.IsFor(" DEV@example.com"))
	assert.False(t, inv.IsFor("other@example.com"))
}

func TestBuildRateCard(t *testing.T) {
	invitations := []ProposalTeamInvitation{
		{Status: constant.InvitationStatusAccepted, RateMin: 100, RateMax: 150, HoursEstimate: 10},
		{Status: constant.InvitationStatusAccepted, RateMin: 50, RateMax: 70, HoursEstimate: 20},
		{Status: constant.InvitationStatusInvited, RateMin: 999, RateMax: 999, HoursEstimate: 999},
		{Status: constant.InvitationStatusDeclined, RateMin: 999, RateMax: 999, HoursEstimate: 999},
	}

	rc := BuildRateCard(invitations)

	assert.Equal(t, 2, rc.AcceptedCount)
	assert.Equal(t, 150.0, rc.HourlyMinSum)
	assert.Equal(t, 220.0, rc.HourlyMaxSum)
	assert.Equal(t, 92.5, rc.BlendedRate)
	assert.Equal(t, 30.0, rc.TotalHours)
	assert.Equal(t, 2000.0, rc.CostMin)
	assert.Equal(t, 2900.0, rc.CostMax)

	assert.Equal(t, RateCard{}, BuildRateCard(nil))
}
