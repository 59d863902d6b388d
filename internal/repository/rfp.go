package repository

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type RFPRepository struct {
	*baseRepository
}

func (rr RFPRepository) Create(ctx context.Context, tx *gorm.DB, rfp *model.RFPUpload) error {
	rr.logger.Debugf("Create rfp upload %s for profile %s \n", rfp.File.FileName, rfp.ProfileID)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Create(rfp).Error
}

// Save writes every column of an existing upload. Used after parsing and when a duplicate
// upload overwrites a previous one.
func (rr RFPRepository) Save(ctx context.Context, tx *gorm.DB, rfp *model.RFPUpload) error {
	rr.logger.Debugf("Save rfp upload: %s \n", rfp.ID)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Omit("Profile").Save(rfp).Error
}

func (rr RFPRepository) GetForProfile(ctx context.Context, tx *gorm.DB, profileId, rfpId string) (*model.RFPUpload, error) {
	rr.logger.Debugf("Get rfp %s for profile %s \n", rfpId, profileId)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var rfp model.RFPUpload
	if err := db.WithContext(ctx).Where("id = ? AND profile_id = ?", rfpId, profileId).First(&rfp).Error; err != nil {
		return nil, err
	}

	return &rfp, nil
}

func (rr RFPRepository) GetByFileName(ctx context.Context, tx *gorm.DB, profileId, fileName string) (*model.RFPUpload, error) {
	rr.logger.Debugf("Get rfp by file name %s for profile %s \n", fileName, profileId)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var rfp model.RFPUpload
	if err := db.WithContext(ctx).Where("profile_id = ? AND file_name = ?", profileId, fileName).Order("created_at DESC").First(&rfp).Error; err != nil {
		return nil, err
	}

	return &rfp, nil
}

// ListByProfile leaves out extracted_text, which can be large.
func (rr RFPRepository) ListByProfile(ctx context.Context, tx *gorm.DB, profileId string, page, pageSize uint) ([]model.RFPUpload, int64, error) {
	rr.logger.Debugf("List rfps for profile: %s \n", profileId)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.RFPUpload{}).Where("profile_id = ?", profileId)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rfps []model.RFPUpload
	if err := query.Omit("extracted_text").Order("created_at DESC").Offset(int((page - 1) * pageSize)).Limit(int(pageSize)).Find(&rfps).Error; err != nil {
		return nil, 0, err
	}

	return rfps, total, nil
}

func (rr RFPRepository) SetValidated(ctx context.Context, tx *gorm.DB, rfpId string, validated bool) error {
	rr.logger.Debugf("Set rfp %s validated=%v \n", rfpId, validated)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.RFPUpload{}).Where("id = ?", rfpId).Update("validated", validated).Error
}

func (rr RFPRepository) Delete(ctx context.Context, tx *gorm.DB, rfpId string) error {
	rr.logger.Debugf("Delete rfp: %s \n", rfpId)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("id = ?", rfpId).Delete(&model.RFPUpload{}).Error
}
