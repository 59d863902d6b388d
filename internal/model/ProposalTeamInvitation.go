package model

import (
	"strings"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/constant"
)

type ProposalTeamInvitation struct {
	BaseModel
	Email         string                    `gorm:"type:citext;not null;index" json:"email"`
	Role          string                    `gorm:"type:varchar(120);not null" json:"role"`
	RateMin       float64                   `gorm:"type:numeric(12,2);not null;default:0" json:"rateMin"`
	RateMax       float64                   `gorm:"type:numeric(12,2);not null;default:0" json:"rateMax"`
	HoursEstimate float64                   `gorm:"type:numeric(10,2);not null;default:0" json:"hoursEstimate"`
	Status        constant.InvitationStatus `gorm:"type:varchar(20);not null;default:'invited'" json:"status"`
	Token         string                    `gorm:"type:text;not null;uniqueIndex" json:"-"`
	InvitedAt     time.Time                 `gorm:"type:timestamptz;not null" json:"invitedAt"`
	RespondedAt   *time.Time                `gorm:"type:timestamptz;default:null" json:"respondedAt"`

	ProposalID string   `gorm:"type:text;not null;index" json:"proposalId"`
	Proposal   Proposal `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (i ProposalTeamInvitation) TableName() string {
	return "proposal_team_invitations"
}

func (i ProposalTeamInvitation) IsFor(email string) bool {
	return strings.EqualFold(strings.TrimSpace(i.Email), strings.TrimSpace(email))
}

func (i *ProposalTeamInvitation) Accept(now time.Time) error {
	return i.respond(constant.InvitationStatusAccepted, now)
}

func (i *ProposalTeamInvitation) Decline(now time.Time) error {
	return i.respond(constant.InvitationStatusDeclined, now)
}

func (i *ProposalTeamInvitation) respond(status constant.InvitationStatus, now time.Time) error {
	if i.Status != constant.InvitationStatusInvited {
		return ErrAlreadyResponded
	}
	i.Status = status
	i.RespondedAt = &now
	return nil
}

// Reinvite reopens a declined invitation with a fresh token. Accepted is terminal and an
// invitation that is still open cannot be sent twice.
func (i *ProposalTeamInvitation) Reinvite(token string, now time.Time) error {
	if i.Status != constant.InvitationStatusDeclined {
		return ErrDuplicateInvitation
	}
	i.Status = constant.InvitationStatusInvited
	i.Token = token
	i.InvitedAt = now
	i.RespondedAt = nil
	return nil
}

// RateCard aggregates the accepted members of a proposal team.
type RateCard struct {
	AcceptedCount int     `json:"acceptedCount"`
	HourlyMinSum  float64 `json:"hourlyMinSum"`
	HourlyMaxSum  float64 `json:"hourlyMaxSum"`
	BlendedRate   float64 `json:"blendedRate"`
	TotalHours    float64 `json:"totalHours"`
	CostMin       float64 `json:"costMin"`
	CostMax       float64 `json:"costMax"`
}

func BuildRateCard(invitations []ProposalTeamInvitation) RateCard {
	var rc RateCard
	for _, inv := range invitations {
		if inv.Status != constant.InvitationStatusAccepted {
			continue
		}
		rc.AcceptedCount++
		rc.HourlyMinSum += inv.RateMin
		rc.HourlyMaxSum += inv.RateMax
		rc.TotalHours += inv.HoursEstimate
		rc.CostMin += inv.RateMin * inv.HoursEstimate
		rc.CostMax += inv.RateMax * inv.HoursEstimate
	}
	if rc.AcceptedCount > 0 {
		rc.BlendedRate = (rc.HourlyMinSum + rc.HourlyMaxSum) / float64(2*rc.AcceptedCount)
	}
	return rc
}
