package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines data access for the catalog.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// DecrementStock atomically subtracts quantity from a product's stock.
	// It returns ErrInsufficientStock when the row no longer has enough
	// stock, which guards against checks invalidated by a concurrent commit.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// SaleRepository defines data access for the append-only sale ledger.
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
}

// CartStore defines session cart persistence.
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// Store bundles the repositories that share one transaction boundary.
type Store struct {
	Products ProductRepository
	Sales    SaleRepository
}

// TxManager runs fn inside a single transaction. Every repository call made
// through the passed Store sees the same transaction; if fn returns an error
// the whole unit of work is rolled back.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(store Store) error) error
}
