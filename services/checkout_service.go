package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventPublisher publishes sale events after a checkout commits.
type EventPublisher interface {
	SendSaleCompletedEvent(ctx context.Context, event models.SaleCompletedEvent) error
}

// CheckoutService converts a session cart into a persisted sale.
type CheckoutService interface {
	// Checkout validates every cart line against current stock, then within
	// one transaction records the sale with captured prices and decrements
	// stock. On any failure nothing is persisted and the cart is untouched.
	// An empty cart returns ErrCartEmpty.
	Checkout(ctx context.Context, sessionID string) (*models.Sale, *ServiceError)
	// GetSale loads a completed sale for the confirmation view.
	GetSale(ctx context.Context, id uuid.UUID) (*models.Sale, *ServiceError)
}

type checkoutServiceImpl struct {
	carts     repository.CartStore
	sales     repository.SaleRepository
	tx        repository.TxManager
	publisher EventPublisher
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	carts repository.CartStore,
	sales repository.SaleRepository,
	tx repository.TxManager,
	publisher EventPublisher,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		carts:     carts,
		sales:     sales,
		tx:        tx,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, sessionID string) (*models.Sale, *ServiceError) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		s.logger.Error("Checkout cart load failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Checkout failed. Please try again."}
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	var sale *models.Sale
	txErr := s.tx.WithTransaction(ctx, func(store repository.Store) error {
		total := decimal.Zero
		items := make([]models.SaleItem, 0, len(cart.Items))
		names := make(map[uuid.UUID]string, len(cart.Items))

		// Validate lines in cart insertion order; the first shortfall
		// aborts the whole checkout. Prices observed here are the ones
		// captured on the sale items.
		for _, line := range cart.Items {
			product, err := store.Products.FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			names[product.ID] = product.Name
			if product.Stock < line.Quantity {
				return &StockError{ProductName: product.Name}
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.SaleItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}

		sale = &models.Sale{TotalPrice: total, Items: items}
		if err := store.Sales.Create(ctx, sale); err != nil {
			return err
		}

		for _, line := range cart.Items {
			if err := store.Products.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				// A concurrent checkout may have invalidated the check
				// above; surface it as the same shortfall error.
				if errors.Is(err, repository.ErrInsufficientStock) {
					return &StockError{ProductName: names[line.ProductID]}
				}
				return err
			}
		}
		return nil
	})

	if txErr != nil {
		var stockErr *StockError
		switch {
		case errors.As(txErr, &stockErr):
			return nil, &ServiceError{
				StatusCode: http.StatusConflict,
				Message:    fmt.Sprintf("Insufficient stock for %s.", stockErr.ProductName),
			}
		case errors.Is(txErr, repository.ErrNotFound):
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		default:
			s.logger.Error("Checkout transaction failed", zap.Error(txErr))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Checkout failed. Please try again."}
		}
	}

	// Sale is committed; the session cart must come back empty.
	if err := s.carts.DeleteCart(ctx, sessionID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	s.logger.Info("Checkout completed",
		zap.String("session_id", sessionID),
		zap.String("sale_id", sale.ID.String()),
		zap.String("total_price", sale.TotalPrice.String()),
	)

	s.publishEvent(ctx, models.SaleCompletedEvent{
		Event:      "sale.completed",
		SaleID:     sale.ID.String(),
		SessionID:  sessionID,
		TotalPrice: sale.TotalPrice,
		Items:      sale.Items,
		Timestamp:  time.Now(),
	})

	return sale, nil
}

func (s *checkoutServiceImpl) GetSale(ctx context.Context, id uuid.UUID) (*models.Sale, *ServiceError) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Sale not found"}
		}
		s.logger.Error("GetSale failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load sale"}
	}
	return sale, nil
}

// publishEvent sends the sale event to Kafka (non-fatal on error).
func (s *checkoutServiceImpl) publishEvent(ctx context.Context, event models.SaleCompletedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.SendSaleCompletedEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish sale event", zap.Error(err))
	}
}
