package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new instance of GormSaleRepository.
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create persists a sale together with its line items.
func (r *GormSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID retrieves a sale with its items for the confirmation view.
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// GormTxManager implements TxManager on a live GORM connection.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithTransaction runs fn with repositories bound to one transaction.
// Returning an error from fn rolls back everything fn wrote.
func (m *GormTxManager) WithTransaction(ctx context.Context, fn func(store Store) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Store{
			Products: NewGormProductRepository(tx),
			Sales:    NewGormSaleRepository(tx),
		})
	})
}
