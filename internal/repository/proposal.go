package repository

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type ProposalRepository struct {
	*baseRepository
}

func (pr ProposalRepository) Create(ctx context.Context, tx *gorm.DB, proposal *model.Proposal) (*model.Proposal, error) {
	pr.logger.Debugf("Create proposal %q for user %s \n", proposal.Title, proposal.UserID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Omit("User", "RFPUpload").Create(proposal).Error; err != nil {
		return proposal, err
	}

	return proposal, nil
}

func (pr ProposalRepository) GetById(ctx context.Context, tx *gorm.DB, proposalId string) (*model.Proposal, error) {
	pr.logger.Debugf("Get proposal by id: %s \n", proposalId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var proposal model.Proposal
	if err := db.WithContext(ctx).Where("id = ?", proposalId).First(&proposal).Error; err != nil {
		return nil, err
	}

	return &proposal, nil
}

// GetForUser loads a proposal owned by userId together with its RFP.
func (pr ProposalRepository) GetForUser(ctx context.Context, tx *gorm.DB, userId, proposalId string) (*model.Proposal, error) {
	pr.logger.Debugf("Get proposal %s for user %s \n", proposalId, userId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var proposal model.Proposal
	if err := db.WithContext(ctx).Preload("RFPUpload", func(db *gorm.DB) *gorm.DB {
		return db.Omit("extracted_text")
	}).Where("id = ? AND user_id = ?", proposalId, userId).First(&proposal).Error; err != nil {
		return nil, err
	}

	return &proposal, nil
}

type ProposalFilter struct {
	Search   string
	Status   []constant.ProposalStatus
	Page     uint
	PageSize uint
}

func (pr ProposalRepository) ListForUser(ctx context.Context, tx *gorm.DB, userId string, filter ProposalFilter) ([]model.Proposal, int64, error) {
	pr.logger.Debugf("List proposals for user %s with filter: %+v \n", userId, filter)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Proposal{}).Where("user_id = ?", userId)
	if len(filter.Status) > 0 {
		query = query.Where("status IN (?)", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", searchPattern(filter.Search))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var proposals []model.Proposal
	if err := query.Order("updated_at DESC").Offset(int((filter.Page - 1) * filter.PageSize)).Limit(int(filter.PageSize)).Find(&proposals).Error; err != nil {
		return nil, 0, err
	}

	return proposals, total, nil
}

// Update writes the given columns. Concurrent writers are last-write-wins.
func (pr ProposalRepository) Update(ctx context.Context, tx *gorm.DB, proposalId string, fields map[string]any) error {
	pr.logger.Debugf("Update proposal %s columns: %v \n", proposalId, mapKeys(fields))

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if len(fields) == 0 {
		return nil
	}

	return db.WithContext(ctx).Model(&model.Proposal{}).Where("id = ?", proposalId).Updates(fields).Error
}

func (pr ProposalRepository) Delete(ctx context.Context, tx *gorm.DB, proposalId string) error {
	pr.logger.Debugf("Delete proposal: %s \n", proposalId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("id = ?", proposalId).Delete(&model.Proposal{}).Error
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
