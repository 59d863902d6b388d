package repository

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type QRCodeRepository struct {
	*baseRepository
}

func (qr QRCodeRepository) Create(ctx context.Context, tx *gorm.DB, code *model.QRCode) error {
	qr.logger.Debugf("Create qr code %s for profile %s \n", code.UniqueCode, code.ProfileID)

	db := qr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Omit("Profile").Create(code).Error
}

func (qr QRCodeRepository) ListByProfile(ctx context.Context, tx *gorm.DB, profileId string) ([]model.QRCode, error) {
	qr.logger.Debugf("List qr codes for profile: %s \n", profileId)

	db := qr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var codes []model.QRCode
	if err := db.WithContext(ctx).Where("profile_id = ?", profileId).Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, err
	}

	return codes, nil
}

func (qr QRCodeRepository) GetForProfile(ctx context.Context, tx *gorm.DB, profileId, codeId string) (*model.QRCode, error) {
	qr.logger.Debugf("Get qr code %s for profile %s \n", codeId, profileId)

	db := qr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var code model.QRCode
	if err := db.WithContext(ctx).Where("id = ? AND profile_id = ?", codeId, profileId).First(&code).Error; err != nil {
		return nil, err
	}

	return &code, nil
}

// GetActiveByUniqueCode preloads the owning profile for the public lead form.
func (qr QRCodeRepository) GetActiveByUniqueCode(ctx context.Context, tx *gorm.DB, uniqueCode string) (*model.QRCode, error) {
	qr.logger.Debugf("Get active qr code: %s \n", uniqueCode)

	db := qr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var code model.QRCode
	if err := db.WithContext(ctx).Preload("Profile").Where("unique_code = ? AND is_active = ?", uniqueCode, true).First(&code).Error; err != nil {
		return nil, err
	}

	return &code, nil
}

// IncrementScan bumps scan_count atomically in the database. Every call counts, including
// page refreshes.
func (qr QRCodeRepository) IncrementScan(ctx context.Context, tx *gorm.DB, codeId string) error {
	qr.logger.Debugf("Increment scan count: %s \n", codeId)

	db := qr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.QRCode{}).Where("id = ?", codeId).
		UpdateColumn("scan_count", gorm.Expr("scan_count + ?", 1)).Error
}

func (qr QRCodeRepository) Update(ctx context.Context, tx *gorm.DB, codeId string, fields map[string]any) error {
	qr.logger.Debugf("Update qr code %s with fields: %v \n", codeId, fields)

	db := qr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if len(fields) == 0 {
		return nil
	}

	return db.WithContext(ctx).Model(&model.QRCode{}).Where("id = ?", codeId).Updates(fields).Error
}

func (qr QRCodeRepository) Delete(ctx context.Context, tx *gorm.DB, codeId string) error {
	qr.logger.Debugf("Delete qr code: %s \n", codeId)

	db := qr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("id = ?", codeId).Delete(&model.QRCode{}).Error
}
