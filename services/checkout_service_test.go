package services_test

import (
	"context"
	"errors"
	"testing"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- mock sale repository ----

type mockSaleRepo struct {
	created   *models.Sale
	createErr error
	sale      *models.Sale
	findErr   error
}

func (m *mockSaleRepo) Create(_ context.Context, sale *models.Sale) error {
	if m.createErr != nil {
		return m.createErr
	}
	sale.ID = uuid.New()
	m.created = sale
	return nil
}

func (m *mockSaleRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Sale, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.sale, nil
}

// ---- mock transaction manager ----
//
// Runs fn against the shared mocks and undoes their writes when fn errors,
// mirroring a rollback.

type mockTxManager struct {
	products *mockProductRepo
	sales    *mockSaleRepo
	calls    int
}

func (m *mockTxManager) WithTransaction(_ context.Context, fn func(store repository.Store) error) error {
	m.calls++
	snapshot := make(map[uuid.UUID]int, len(m.products.products))
	for id, p := range m.products.products {
		snapshot[id] = p.Stock
	}
	err := fn(repository.Store{Products: m.products, Sales: m.sales})
	if err != nil {
		for id, stock := range snapshot {
			m.products.products[id].Stock = stock
		}
		m.sales.created = nil
		return err
	}
	return nil
}

// ---- mock event publisher ----

type mockPublisher struct {
	events     []models.SaleCompletedEvent
	publishErr error
}

func (m *mockPublisher) SendSaleCompletedEvent(_ context.Context, event models.SaleCompletedEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.events = append(m.events, event)
	return nil
}

// ---- helper ----

type checkoutFixture struct {
	carts     *mockCartStore
	products  *mockProductRepo
	sales     *mockSaleRepo
	tx        *mockTxManager
	publisher *mockPublisher
	svc       services.CheckoutService
}

func newCheckoutFixture(cart *models.Cart, products ...*models.Product) *checkoutFixture {
	productMap := make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}
	f := &checkoutFixture{
		carts:     &mockCartStore{cart: cart},
		products:  &mockProductRepo{products: productMap},
		sales:     &mockSaleRepo{},
		publisher: &mockPublisher{},
	}
	f.tx = &mockTxManager{products: f.products, sales: f.sales}
	f.svc = services.NewCheckoutService(f.carts, f.sales, f.tx, f.publisher, zap.NewNop())
	return f
}

// ---- tests ----

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(nil)

	sale, svcErr := f.svc.Checkout(context.Background(), "sess")

	assert.Nil(t, sale)
	assert.Equal(t, services.ErrCartEmpty, svcErr)
	assert.Equal(t, 0, f.tx.calls)
	assert.False(t, f.carts.deleted)
	assert.Nil(t, f.sales.created)
}

func TestCheckout_Success(t *testing.T) {
	a := newProduct("Espresso Beans", "10.00", 5)
	b := newProduct("Filter Paper", "3.50", 2)
	cart := &models.Cart{
		SessionID: "sess",
		Items: []models.CartItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 2},
		},
	}
	f := newCheckoutFixture(cart, a, b)

	sale, svcErr := f.svc.Checkout(context.Background(), "sess")

	require.Nil(t, svcErr)
	require.NotNil(t, sale)
	assert.True(t, sale.TotalPrice.Equal(decimal.RequireFromString("27.00")))
	require.Len(t, sale.Items, 2)
	assert.Equal(t, a.ID, sale.Items[0].ProductID)
	assert.Equal(t, 2, sale.Items[0].Quantity)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, sale.Items[1].UnitPrice.Equal(decimal.RequireFromString("3.50")))

	// Stock decremented by exactly each line quantity.
	assert.Equal(t, 3, a.Stock)
	assert.Equal(t, 0, b.Stock)

	// Cart cleared and event published.
	assert.True(t, f.carts.deleted)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "sale.completed", f.publisher.events[0].Event)
	assert.Equal(t, sale.ID.String(), f.publisher.events[0].SaleID)
}

func TestCheckout_RepeatAfterSuccessIsNoOp(t *testing.T) {
	a := newProduct("Espresso Beans", "10.00", 5)
	cart := &models.Cart{
		SessionID: "sess",
		Items:     []models.CartItem{{ProductID: a.ID, Quantity: 1}},
	}
	f := newCheckoutFixture(cart, a)

	_, svcErr := f.svc.Checkout(context.Background(), "sess")
	require.Nil(t, svcErr)
	require.Equal(t, 4, a.Stock)

	// The first checkout emptied the cart; a replayed request must not
	// create a second sale.
	sale, svcErr := f.svc.Checkout(context.Background(), "sess")
	assert.Nil(t, sale)
	assert.Equal(t, services.ErrCartEmpty, svcErr)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 4, a.Stock)
}

func TestCheckout_InsufficientStockAborts(t *testing.T) {
	a := newProduct("Espresso Beans", "10.00", 5)
	b := newProduct("Filter Paper", "3.50", 1)
	cart := &models.Cart{
		SessionID: "sess",
		Items: []models.CartItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 2},
		},
	}
	f := newCheckoutFixture(cart, a, b)

	sale, svcErr := f.svc.Checkout(context.Background(), "sess")

	assert.Nil(t, sale)
	require.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
	assert.Contains(t, svcErr.Message, "Filter Paper")

	// Nothing persisted, cart untouched so the shopper can adjust.
	assert.Nil(t, f.sales.created)
	assert.Equal(t, 5, a.Stock)
	assert.Equal(t, 1, b.Stock)
	assert.False(t, f.carts.deleted)
	assert.Empty(t, f.publisher.events)
}

func TestCheckout_ConcurrentDecrementShortfall(t *testing.T) {
	a := newProduct("Espresso Beans", "10.00", 5)
	cart := &models.Cart{
		SessionID: "sess",
		Items:     []models.CartItem{{ProductID: a.ID, Quantity: 2}},
	}
	f := newCheckoutFixture(cart, a)
	// Validation passes but the conditional update reports a shortfall,
	// as when another checkout committed in between.
	f.products.decFailID = a.ID

	sale, svcErr := f.svc.Checkout(context.Background(), "sess")

	assert.Nil(t, sale)
	require.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
	assert.Contains(t, svcErr.Message, "Espresso Beans")
	assert.Nil(t, f.sales.created)
	assert.False(t, f.carts.deleted)
}

func TestCheckout_UnexpectedFailureIsGeneric(t *testing.T) {
	a := newProduct("Espresso Beans", "10.00", 5)
	cart := &models.Cart{
		SessionID: "sess",
		Items:     []models.CartItem{{ProductID: a.ID, Quantity: 1}},
	}
	f := newCheckoutFixture(cart, a)
	f.sales.createErr = errors.New("connection reset by peer")

	sale, svcErr := f.svc.Checkout(context.Background(), "sess")

	assert.Nil(t, sale)
	require.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
	// Internals never leak to the shopper.
	assert.NotContains(t, svcErr.Message, "connection reset")
	assert.Equal(t, 5, a.Stock)
	assert.False(t, f.carts.deleted)
}

func TestCheckout_CartProductDeleted(t *testing.T) {
	cart := &models.Cart{
		SessionID: "sess",
		Items:     []models.CartItem{{ProductID: uuid.New(), Quantity: 1}},
	}
	f := newCheckoutFixture(cart)

	sale, svcErr := f.svc.Checkout(context.Background(), "sess")

	assert.Nil(t, sale)
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	a := newProduct("Espresso Beans", "10.00", 5)
	cart := &models.Cart{
		SessionID: "sess",
		Items:     []models.CartItem{{ProductID: a.ID, Quantity: 1}},
	}
	f := newCheckoutFixture(cart, a)
	f.publisher.publishErr = errors.New("broker unreachable")

	sale, svcErr := f.svc.Checkout(context.Background(), "sess")

	require.Nil(t, svcErr)
	assert.NotNil(t, sale)
	assert.True(t, f.carts.deleted)
}

func TestGetSale_NotFound(t *testing.T) {
	f := newCheckoutFixture(nil)
	f.sales.findErr = repository.ErrNotFound

	sale, svcErr := f.svc.GetSale(context.Background(), uuid.New())

	assert.Nil(t, sale)
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestSaleTotalMatchesItemSubtotals(t *testing.T) {
	a := newProduct("Espresso Beans", "10.00", 5)
	b := newProduct("Filter Paper", "3.50", 2)
	cart := &models.Cart{
		SessionID: "sess",
		Items: []models.CartItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 2},
		},
	}
	f := newCheckoutFixture(cart, a, b)

	sale, svcErr := f.svc.Checkout(context.Background(), "sess")
	require.Nil(t, svcErr)

	sum := decimal.Zero
	for _, item := range sale.Items {
		sum = sum.Add(item.Subtotal())
	}
	assert.True(t, sum.Equal(sale.TotalPrice))
}
