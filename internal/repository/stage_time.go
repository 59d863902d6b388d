package repository

import (
	"context"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type StageTimeRepository struct {
	*baseRepository
}

func (sr StageTimeRepository) Create(ctx context.Context, tx *gorm.DB, stage *model.ProposalStageTime) error {
	sr.logger.Debugf("Start stage %s for proposal %s \n", stage.Stage, stage.ProposalID)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Omit("Proposal").Create(stage).Error
}

// GetForUser finds a stage row through the proposal it belongs to.
func (sr StageTimeRepository) GetForUser(ctx context.Context, tx *gorm.DB, userId, stageId string) (*model.ProposalStageTime, error) {
	sr.logger.Debugf("Get stage %s for user %s \n", stageId, userId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var stage model.ProposalStageTime
	if err := db.WithContext(ctx).
		Select("proposal_stage_times.*").
		Joins("JOIN proposals ON proposals.id = proposal_stage_times.proposal_id").
		Where("proposal_stage_times.id = ? AND proposals.user_id = ?", stageId, userId).
		First(&stage).Error; err != nil {
		return nil, err
	}

	return &stage, nil
}

func (sr StageTimeRepository) Complete(ctx context.Context, tx *gorm.DB, stageId string, completedAt time.Time) error {
	sr.logger.Debugf("Complete stage: %s \n", stageId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.ProposalStageTime{}).Where("id = ?", stageId).Update("completed_at", completedAt).Error
}

func (sr StageTimeRepository) ListForUser(ctx context.Context, tx *gorm.DB, userId string) ([]model.ProposalStageTime, error) {
	sr.logger.Debugf("List stage times for user: %s \n", userId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var stages []model.ProposalStageTime
	if err := db.WithContext(ctx).
		Select("proposal_stage_times.*").
		Joins("JOIN proposals ON proposals.id = proposal_stage_times.proposal_id").
		Where("proposals.user_id = ?", userId).
		Order("proposal_stage_times.started_at ASC").
		Find(&stages).Error; err != nil {
		return nil, err
	}

	return stages, nil
}
