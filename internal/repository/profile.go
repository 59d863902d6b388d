package repository

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	*baseRepository
}

func (pr ProfileRepository) GetByUserId(ctx context.Context, tx *gorm.DB, userId string) (*model.CompanyProfile, error) {
	pr.logger.Debugf("Get profile by user id: %s \n", userId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var profile model.CompanyProfile
	if err := db.WithContext(ctx).Where("user_id = ?", userId).First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

func (pr ProfileRepository) GetById(ctx context.Context, tx *gorm.DB, profileId string) (*model.CompanyProfile, error) {
	pr.logger.Debugf("Get profile by id: %s \n", profileId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var profile model.CompanyProfile
	if err := db.WithContext(ctx).Where("id = ?", profileId).First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

// Update writes the given columns only. Keys are column names.
func (pr ProfileRepository) Update(ctx context.Context, tx *gorm.DB, profileId string, fields map[string]any) (*model.CompanyProfile, error) {
	pr.logger.Debugf("Update profile %s with fields: %v \n", profileId, fields)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if len(fields) > 0 {
		if err := db.WithContext(ctx).Model(&model.CompanyProfile{}).Where("id = ?", profileId).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return pr.GetById(ctx, tx, profileId)
}

type MarketplaceFilter struct {
	Search   string
	Industry string
	Page     uint
	PageSize uint
}

func (pr ProfileRepository) ListPublic(ctx context.Context, tx *gorm.DB, filter MarketplaceFilter) ([]model.CompanyProfile, int64, error) {
	pr.logger.Debugf("List public profiles with filter: %+v \n", filter)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.CompanyProfile{}).Where("visibility = ?", constant.ProfileVisibilityPublic)
	if filter.Search != "" {
		query = query.Where("company_name ILIKE ? OR description ILIKE ?", searchPattern(filter.Search), searchPattern(filter.Search))
	}
	if filter.Industry != "" {
		query = query.Where("industry ILIKE ?", filter.Industry)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []model.CompanyProfile
	if err := query.Order("company_name ASC").Offset(int((filter.Page - 1) * filter.PageSize)).Limit(int(filter.PageSize)).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}
