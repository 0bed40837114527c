package services

import (
	"context"
	"fmt"
	"net/http"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService manages the session-scoped cart.
type CartService interface {
	// AddItem adds quantity of a product to the session cart, clamping the
	// resulting quantity to the product's stock. The returned warning is
	// non-empty when clamping happened.
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*models.Cart, string, *ServiceError)
	// ViewCart renders the cart with fresh product lookups so prices and
	// names reflect the current catalog.
	ViewCart(ctx context.Context, sessionID string) (*models.CartView, *ServiceError)
}

type cartServiceImpl struct {
	carts    repository.CartStore
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(carts repository.CartStore, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, products: products, logger: logger}
}

func (s *cartServiceImpl) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*models.Cart, string, *ServiceError) {
	if quantity < 1 {
		return nil, "", &ServiceError{StatusCode: http.StatusBadRequest, Message: "Quantity must be at least 1"}
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, "", &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		s.logger.Error("AddItem product lookup failed", zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item to cart"}
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		s.logger.Error("AddItem cart load failed", zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item to cart"}
	}
	if cart == nil {
		cart = &models.Cart{SessionID: sessionID}
	}

	warning := ""
	newQuantity := cart.Quantity(productID) + quantity
	if newQuantity > product.Stock {
		warning = fmt.Sprintf("Not enough stock for %s. Added maximum available: %d.", product.Name, product.Stock)
		newQuantity = product.Stock
	}

	// Cart lines stay positive: clamping down to zero drops the line
	// instead of keeping a dead entry.
	cart.SetQuantity(productID, newQuantity)

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		s.logger.Error("AddItem cart save failed", zap.Error(err))
		return nil, "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add item to cart"}
	}

	s.logger.Info("Cart updated",
		zap.String("session_id", sessionID),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", newQuantity),
	)

	return cart, warning, nil
}

func (s *cartServiceImpl) ViewCart(ctx context.Context, sessionID string) (*models.CartView, *ServiceError) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		s.logger.Error("ViewCart cart load failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load cart"}
	}

	view := &models.CartView{
		Lines:      []models.CartLineView{},
		TotalPrice: decimal.Zero,
	}
	if cart.IsEmpty() {
		return view, nil
	}

	for _, item := range cart.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
			}
			s.logger.Error("ViewCart product lookup failed", zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load cart"}
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Lines = append(view.Lines, models.CartLineView{
			Product:  *product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.TotalPrice = view.TotalPrice.Add(subtotal)
	}

	return view, nil
}
