package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
)

// CartRepository persists session carts in Redis with a TTL.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) getKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// GetCart loads the cart for a session. A missing cart is not an error;
// it returns (nil, nil).
func (r *CartRepository) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	key := r.getKey(sessionID)
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveCart writes the cart back and refreshes its TTL.
func (r *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	key := r.getKey(cart.SessionID)
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// DeleteCart removes the session cart, used after a successful checkout.
func (r *CartRepository) DeleteCart(ctx context.Context, sessionID string) error {
	key := r.getKey(sessionID)
	return r.client.Del(ctx, key).Err()
}
