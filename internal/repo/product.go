package repo

import (
	"context"

	"gorm.io/gorm"

	"shopapi/internal/models"
)

func (r *GormRepo) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	if err := r.DB.WithContext(ctx).Save(product).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteProductCascade removes the product and every purchase referencing
// it in one transaction.
func (r *GormRepo) DeleteProductCascade(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).Order("id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
