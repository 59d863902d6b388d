package repository

import (
	"context"
	"errors"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("an account with this email already exists")

type UserRepository struct {
	*baseRepository
}

func (ur UserRepository) GetById(ctx context.Context, tx *gorm.DB, userId string) (*model.User, error) {
	ur.logger.Debugf("Get user by id: %s \n", userId)

	db := ur.getDB(tx)
	var user model.User

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (ur UserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	ur.logger.Debugf("Get user by email: %s \n", email)

	db := ur.getDB(tx)
	var user model.User

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateWithProfile registers a user and the company profile that belongs to it in one
// transaction.
func (ur *UserRepository) CreateWithProfile(ctx context.Context, tx *gorm.DB, newUser *model.User, profile *model.CompanyProfile) error {
	ur.logger.Debugf("Create user and profile for email: %s \n", newUser.Email)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return ur.withTx(db, func(tx *gorm.DB) error {
		existing, err := ur.GetByEmail(ctx, tx, newUser.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return ErrEmailTaken
		}

		if err := tx.WithContext(ctx).Create(newUser).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}

		profile.UserID = newUser.ID
		if profile.Visibility == "" {
			profile.Visibility = constant.ProfileVisibilityPrivate
		}
		return tx.WithContext(ctx).Create(profile).Error
	})
}

func (ur UserRepository) UpdatePassword(ctx context.Context, tx *gorm.DB, userId string, passwordHash string) error {
	ur.logger.Debugf("Update password for user: %s \n", userId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).Update("password_hash", passwordHash).Error
}

// Delete removes the account. Profile, tokens and everything owned cascade in the database.
func (ur UserRepository) Delete(ctx context.Context, tx *gorm.DB, userId string) error {
	ur.logger.Debugf("Delete user: %s \n", userId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("id = ?", userId).Delete(&model.User{}).Error
}
