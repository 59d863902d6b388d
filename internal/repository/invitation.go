package repository

import (
	"context"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type InvitationRepository struct {
	*baseRepository
}

func (ir InvitationRepository) Create(ctx context.Context, tx *gorm.DB, invitation *model.ProposalTeamInvitation) error {
	ir.logger.Debugf("Create invitation for %s on proposal %s \n", invitation.Email, invitation.ProposalID)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Omit("Proposal").Create(invitation).Error
}

func (ir InvitationRepository) Save(ctx context.Context, tx *gorm.DB, invitation *model.ProposalTeamInvitation) error {
	ir.logger.Debugf("Save invitation %s with status %s \n", invitation.ID, invitation.Status)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Omit("Proposal").Save(invitation).Error
}

// Respond moves an invitation out of invited. The status check is part of the UPDATE so a
// concurrent accept and decline cannot both succeed.
func (ir InvitationRepository) Respond(ctx context.Context, tx *gorm.DB, invitationId string, status constant.InvitationStatus, respondedAt time.Time) error {
	ir.logger.Debugf("Respond to invitation %s with status %s \n", invitationId, status)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Model(&model.ProposalTeamInvitation{}).
		Where("id = ? AND status = ?", invitationId, constant.InvitationStatusInvited).
		Updates(map[string]any{
			"status":       status,
			"responded_at": respondedAt,
			"updated_at":   respondedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrAlreadyResponded
	}

	return nil
}

// GetById preloads the proposal so callers can notify its owner.
func (ir InvitationRepository) GetById(ctx context.Context, tx *gorm.DB, invitationId string) (*model.ProposalTeamInvitation, error) {
	ir.logger.Debugf("Get invitation by id: %s \n", invitationId)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var invitation model.ProposalTeamInvitation
	if err := db.WithContext(ctx).Preload("Proposal").Where("id = ?", invitationId).First(&invitation).Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (ir InvitationRepository) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*model.ProposalTeamInvitation, error) {
	ir.logger.Debug("Get invitation by token")

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var invitation model.ProposalTeamInvitation
	if err := db.WithContext(ctx).Preload("Proposal").Where("token = ?", token).First(&invitation).Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (ir InvitationRepository) GetByProposalAndEmail(ctx context.Context, tx *gorm.DB, proposalId, email string) (*model.ProposalTeamInvitation, error) {
	ir.logger.Debugf("Get invitation for %s on proposal %s \n", email, proposalId)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var invitation model.ProposalTeamInvitation
	if err := db.WithContext(ctx).Where("proposal_id = ? AND email = ?", proposalId, email).First(&invitation).Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (ir InvitationRepository) ListForProposal(ctx context.Context, tx *gorm.DB, proposalId string) ([]model.ProposalTeamInvitation, error) {
	ir.logger.Debugf("List invitations for proposal: %s \n", proposalId)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var invitations []model.ProposalTeamInvitation
	if err := db.WithContext(ctx).Where("proposal_id = ?", proposalId).Order("invited_at ASC").Find(&invitations).Error; err != nil {
		return nil, err
	}

	return invitations, nil
}

// ListForEmail returns invitations addressed to email, newest first.
func (ir InvitationRepository) ListForEmail(ctx context.Context, tx *gorm.DB, email string, status constant.InvitationStatus) ([]model.ProposalTeamInvitation, error) {
	ir.logger.Debugf("List invitations for email: %s \n", email)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Preload("Proposal").Where("email = ?", email)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var invitations []model.ProposalTeamInvitation
	if err := query.Order("invited_at DESC").Find(&invitations).Error; err != nil {
		return nil, err
	}

	return invitations, nil
}

func (ir InvitationRepository) DeleteFromProposal(ctx context.Context, tx *gorm.DB, proposalId, invitationId string) (int64, error) {
	ir.logger.Debugf("Delete invitation %s from proposal %s \n", invitationId, proposalId)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Where("id = ? AND proposal_id = ?", invitationId, proposalId).Delete(&model.ProposalTeamInvitation{})
	return res.RowsAffected, res.Error
}

type InvitationStats struct {
	Status constant.InvitationStatus `json:"status"`
	Count  int64                     `json:"count"`
}

type InvitationResponseTime struct {
	InvitedAt   time.Time
	RespondedAt time.Time
}

// StatsForOwner counts invitations across every proposal owned by userId.
func (ir InvitationRepository) StatsForOwner(ctx context.Context, tx *gorm.DB, userId string) ([]InvitationStats, []InvitationResponseTime, error) {
	ir.logger.Debugf("Invitation stats for owner: %s \n", userId)

	db := ir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	owned := db.WithContext(ctx).Model(&model.ProposalTeamInvitation{}).
		Joins("JOIN proposals ON proposals.id = proposal_team_invitations.proposal_id").
		Where("proposals.user_id = ?", userId)

	var stats []InvitationStats
	if err := owned.Session(&gorm.Session{}).
		Select("proposal_team_invitations.status AS status, COUNT(*) AS count").
		Group("proposal_team_invitations.status").
		Scan(&stats).Error; err != nil {
		return nil, nil, err
	}

	var times []InvitationResponseTime
	if err := owned.Session(&gorm.Session{}).
		Select("proposal_team_invitations.invited_at AS invited_at, proposal_team_invitations.responded_at AS responded_at").
		Where("proposal_team_invitations.responded_at IS NOT NULL").
		Scan(&times).Error; err != nil {
		return nil, nil, err
	}

	return stats, times, nil
}
