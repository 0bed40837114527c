package services

import (
	"context"
	"net/http"

	"storefront-service/models"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// CatalogService exposes the read side of the product catalog.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]models.Product, *ServiceError)
}

type catalogServiceImpl struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repository.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{products: products, logger: logger}
}

// ListProducts returns every product with its name, price and stock.
func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.Error("ListProducts failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to list products"}
	}
	return products, nil
}
