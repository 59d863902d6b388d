package repository

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type LeadRepository struct {
	*baseRepository
}

func (lr LeadRepository) Create(ctx context.Context, tx *gorm.DB, lead *model.Lead) error {
	lr.logger.Debugf("Create lead for qr code: %s \n", lead.QRCodeID)

	db := lr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Omit("QRCode", "Profile").Create(lead).Error
}

func (lr LeadRepository) ListByQRCode(ctx context.Context, tx *gorm.DB, codeId string, page, pageSize uint) ([]model.Lead, int64, error) {
	lr.logger.Debugf("List leads for qr code: %s \n", codeId)

	db := lr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Lead{}).Where("qr_code_id = ?", codeId)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []model.Lead
	if err := query.Order("created_at DESC").Offset(int((page - 1) * pageSize)).Limit(int(pageSize)).Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}
