package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopapi/internal/logging"
	"shopapi/internal/metrics"
	"shopapi/internal/models"
	"shopapi/internal/mykafka"
	"shopapi/internal/repo"
	"shopapi/internal/util"
)

// PurchaseService records purchases. A purchase snapshots the product's
// unit price at creation time: the stored total is unit price times
// quantity and never changes afterwards.
type PurchaseService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (s *PurchaseService) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}
	event["event_id"] = uuid.NewString()
	key, _ := event["user_email"].(string)
	if err := s.Producer.PublishEvent(ctx, "purchase_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "purchase_events", "error", err)
	}
}

func (s *PurchaseService) Create(ctx context.Context, userEmail, productName string, quantity int) (*models.Purchase, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	user, err := s.Repo.GetUserByEmail(ctx, NormalizeEmail(userEmail))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	product, err := s.Repo.GetProductByName(ctx, productName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// The stored price is trusted input only up to a point: corrupted
	// rows or overflowing totals are rejected here.
	unit, err := util.ParsePrice(product.Price)
	if err != nil {
		return nil, ErrPriceComputation
	}
	total, err := util.MulCents(unit, quantity)
	if err != nil {
		return nil, ErrPriceComputation
	}

	purchase := models.Purchase{
		UserID:     user.ID,
		ProductID:  product.ID,
		Quantity:   quantity,
		TotalPrice: util.FormatCents(total),
	}
	if err := s.Repo.CreatePurchase(ctx, &purchase); err != nil {
		return nil, err
	}

	purchase.User = *user
	purchase.Product = *product

	metrics.PurchasesTotal.Inc()
	s.publish(ctx, map[string]any{
		"type":        "purchase_created",
		"purchase_id": purchase.ID,
		"user_email":  user.Email,
		"product":     product.Name,
		"quantity":    quantity,
		"total_price": purchase.TotalPrice,
	})

	return &purchase, nil
}

func (s *PurchaseService) ListAll(ctx context.Context) ([]models.Purchase, error) {
	return s.Repo.ListPurchases(ctx)
}

// ListByUserEmail returns an empty list, not an error, when the user does
// not exist or has no purchases.
func (s *PurchaseService) ListByUserEmail(ctx context.Context, email string) ([]models.Purchase, error) {
	return s.Repo.ListPurchasesByUserEmail(ctx, NormalizeEmail(email))
}
