package repository

import (
	"context"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type PasswordResetRepository struct {
	*baseRepository
}

func (pr PasswordResetRepository) Create(ctx context.Context, tx *gorm.DB, reset *model.PasswordReset) error {
	pr.logger.Debugf("Create password reset for user: %s \n", reset.UserID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Create(reset).Error
}

func (pr PasswordResetRepository) GetByTokenHash(ctx context.Context, tx *gorm.DB, tokenHash string) (*model.PasswordReset, error) {
	pr.logger.Debug("Get password reset by token hash")

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var reset model.PasswordReset
	if err := db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&reset).Error; err != nil {
		return nil, err
	}

	return &reset, nil
}

func (pr PasswordResetRepository) MarkUsed(ctx context.Context, tx *gorm.DB, id string, usedAt time.Time) error {
	pr.logger.Debugf("Mark password reset used: %s \n", id)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.PasswordReset{}).Where("id = ?", id).Update("used_at", usedAt).Error
}
