package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopapi/internal/logging"
	"shopapi/internal/models"
	"shopapi/internal/mykafka"
	"shopapi/internal/repo"
	"shopapi/internal/transport"
	"shopapi/internal/util"
)

// CatalogService owns the product catalog. Prices come in as decimal
// strings and are stored normalized to two decimal places.
type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}
	event["event_id"] = uuid.NewString()
	key, _ := event["name"].(string)
	if err := s.Producer.PublishEvent(ctx, "product_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "product_events", "error", err)
	}
}

func (s *CatalogService) indexProduct(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	doc, err := json.Marshal(product)
	if err != nil {
		return
	}
	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(doc),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(product.ID), 10)),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		logging.FromContext(ctx).Error("es index error", "product_id", product.ID, "error", err)
		return
	}
	res.Body.Close()
}

func (s *CatalogService) dropFromIndex(ctx context.Context, id uint) {
	if s.ES == nil {
		return
	}
	res, err := s.ES.Delete(
		s.Index,
		strconv.FormatUint(uint64(id), 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		logging.FromContext(ctx).Error("es delete error", "product_id", id, "error", err)
		return
	}
	res.Body.Close()
}

func (s *CatalogService) Create(ctx context.Context, name, price string) (*models.Product, error) {
	name = strings.TrimSpace(name)

	cents, err := util.ParsePrice(price)
	if err != nil {
		return nil, ErrInvalidPrice
	}

	if _, err := s.Repo.GetProductByName(ctx, name); err == nil {
		return nil, ErrProductExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := models.Product{
		Name:  name,
		Price: util.FormatCents(cents),
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrProductExists
		}
		return nil, err
	}

	s.publish(ctx, map[string]any{"type": "product_created", "product_id": product.ID, "name": product.Name, "price": product.Price})
	s.indexProduct(ctx, &product)

	return &product, nil
}

func (s *CatalogService) Update(ctx context.Context, name string, req transport.UpdateProductRequest) (*models.Product, error) {
	product, err := s.Repo.GetProductByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		cents, err := util.ParsePrice(*req.Price)
		if err != nil {
			return nil, ErrInvalidPrice
		}
		product.Price = util.FormatCents(cents)
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrProductExists
		}
		return nil, err
	}

	s.publish(ctx, map[string]any{"type": "product_updated", "product_id": product.ID, "name": product.Name, "price": product.Price})
	s.indexProduct(ctx, product)

	return product, nil
}

// Delete removes the product and, via the cascade, every purchase
// referencing it.
func (s *CatalogService) Delete(ctx context.Context, name string) (*transport.ProductSummary, error) {
	product, err := s.Repo.GetProductByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.Repo.DeleteProductCascade(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{"type": "product_deleted", "product_id": product.ID, "name": product.Name})
	s.dropFromIndex(ctx, product.ID)

	return &transport.ProductSummary{ID: product.ID, Name: product.Name}, nil
}

func (s *CatalogService) SetImage(ctx context.Context, name, path string) (*models.Product, error) {
	product, err := s.Repo.GetProductByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.ImageURL = &path
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, product)
	return product, nil
}

func (s *CatalogService) FindByName(ctx context.Context, name string) (*models.Product, error) {
	product, err := s.Repo.GetProductByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}
