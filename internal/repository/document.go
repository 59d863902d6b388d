package repository

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	*baseRepository
}

func (dr DocumentRepository) Create(ctx context.Context, tx *gorm.DB, document *model.Document) error {
	dr.logger.Debugf("Create document %s for profile %s \n", document.File.FileName, document.ProfileID)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Create(document).Error
}

func (dr DocumentRepository) ListByProfile(ctx context.Context, tx *gorm.DB, profileId string, docType constant.DocumentType) ([]model.Document, error) {
	dr.logger.Debugf("List documents for profile: %s \n", profileId)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Where("profile_id = ?", profileId)
	if docType != "" {
		query = query.Where("type = ?", docType)
	}

	var documents []model.Document
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		return nil, err
	}

	return documents, nil
}

func (dr DocumentRepository) CountByProfile(ctx context.Context, tx *gorm.DB, profileId string) (int64, error) {
	dr.logger.Debugf("Count documents for profile: %s \n", profileId)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var count int64
	err := db.WithContext(ctx).Model(&model.Document{}).Where("profile_id = ?", profileId).Count(&count).Error
	return count, err
}

// GetForProfile scopes the lookup to the owner's profile so ids from other tenants are not found.
func (dr DocumentRepository) GetForProfile(ctx context.Context, tx *gorm.DB, profileId, documentId string) (*model.Document, error) {
	dr.logger.Debugf("Get document %s for profile %s \n", documentId, profileId)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var document model.Document
	if err := db.WithContext(ctx).Where("id = ? AND profile_id = ?", documentId, profileId).First(&document).Error; err != nil {
		return nil, err
	}

	return &document, nil
}

func (dr DocumentRepository) Delete(ctx context.Context, tx *gorm.DB, documentId string) error {
	dr.logger.Debugf("Delete document: %s \n", documentId)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("id = ?", documentId).Delete(&model.Document{}).Error
}
