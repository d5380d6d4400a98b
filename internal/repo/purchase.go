package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"shopapi/internal/models"
)

// CreatePurchase inserts the purchase row only. Associations are set by
// foreign key; the caller populates User/Product on the returned value.
func (r *GormRepo) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(purchase).Error
}

func (r *GormRepo) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Product").
		Order("id DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// ListPurchasesByUserEmail returns an empty slice when the user has no
// purchases or does not exist at all.
func (r *GormRepo) ListPurchasesByUserEmail(ctx context.Context, email string) ([]models.Purchase, error) {
	purchases := []models.Purchase{}
	if err := r.DB.WithContext(ctx).
		Joins("JOIN users ON users.id = purchases.user_id").
		Where("users.email = ?", email).
		Preload("User").
		Preload("Product").
		Order("purchases.id DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}
