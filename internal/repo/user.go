package repo

import (
	"context"

	"gorm.io/gorm"

	"shopapi/internal/models"
)

// GetUserByEmail loads a user without the password column. Expects an
// already normalized email.
func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Select("id", "email", "name").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmailWithPassword includes the stored credential. Only the auth
// workflow may call this.
func (r *GormRepo) GetUserByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteUserCascade removes the user and every purchase they own in one
// transaction.
func (r *GormRepo) DeleteUserCascade(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).
		Select("id", "email", "name").
		Order("id DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
