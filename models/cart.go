package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one pending selection in a session cart.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is the session-scoped pending purchase selection. Items keep
// insertion order; checkout validates lines in that order.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Quantity returns the current quantity for a product, zero if absent.
func (c *Cart) Quantity(productID uuid.UUID) int {
	if c == nil {
		return 0
	}
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// SetQuantity updates the quantity for a product, appending a new line when
// the product is not in the cart yet. A quantity of zero removes the line.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return
			}
			c.Items[i].Quantity = quantity
			return
		}
	}
	if quantity > 0 {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	}
}
