package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thekingpuff/kingpuff-api/internal/mail"
	"github.com/thekingpuff/kingpuff-api/internal/models"
)

// fakeSender records batches instead of dialing a relay.
type fakeSender struct {
	batches [][]mail.Message
	err     error
}

func (f *fakeSender) Send(messages ...mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, messages)
	return nil
}

type checkoutFixture struct {
	service *checkoutService
	cart    CartService
	sender  *fakeSender
	user    *models.User
	product models.Product
	now     time.Time
}

func setupCheckout(t *testing.T) checkoutFixture {
	db := setupTestDB(t)
	products := NewProductService(db, nil)
	cart := NewCartService(db, products)
	users := NewUserService(db)
	sender := &fakeSender{}

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	service := &checkoutService{
		users:      users,
		cart:       cart,
		products:   products,
		sender:     sender,
		adminEmail: "shop@example.com",
		now:        func() time.Time { return now },
	}

	user := createTestUser(t, db, "ana@example.com")
	product := createTestProduct(t, db, "Puff X",
		models.Flavor{Nombre: "Menta"}, models.Flavor{Nombre: "Cola"})

	return checkoutFixture{service: service, cart: cart, sender: sender, user: user, product: product, now: now}
}

func (f checkoutFixture) pickupIn(d time.Duration) string {
	return f.now.Add(d).Format(PickupLayout)
}

func TestCheckoutHappyPath(t *testing.T) {
	f := setupCheckout(t)
	_, err := f.cart.Add(f.user.ID, f.product.ID, "Menta")
	require.NoError(t, err)
	_, err = f.cart.Add(f.user.ID, f.product.ID, "Cola")
	require.NoError(t, err)

	pickup := f.pickupIn(time.Hour)
	items, err := f.service.Checkout(f.user.ID, pickup)
	require.NoError(t, err)

	require.Len(t, items, 2)
	for _, item := range items {
		require.NotNil(t, item.Pickup)
		assert.Equal(t, pickup, *item.Pickup, "every item carries the same pickup stamp")
	}

	require.Len(t, f.sender.batches, 1, "exactly one notification per checkout")
	batch := f.sender.batches[0]
	require.Len(t, batch, 2)

	admin, customer := batch[0], batch[1]
	assert.Equal(t, "shop@example.com", admin.To)
	assert.Equal(t, "📩 Nueva reserva recibida (2 items)", admin.Subject)
	assert.Contains(t, admin.Body, "1. 📦 Puff X - 🍭 Menta")
	assert.Contains(t, admin.Body, "2. 📦 Puff X - 🍭 Cola")
	assert.Contains(t, admin.Body, "📸 Instagram: @ana")

	assert.Equal(t, "ana@example.com", customer.To)
	assert.Equal(t, "✅ Reserva confirmada - The King Puff", customer.Subject)
	assert.Contains(t, customer.Body, "Hola Ana,")

	remaining, err := f.cart.Get(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "cart is cleared after a confirmed reservation")
}

func TestCheckoutPickupValidation(t *testing.T) {
	f := setupCheckout(t)
	_, err := f.cart.Add(f.user.ID, f.product.ID, "Menta")
	require.NoError(t, err)

	cases := []struct {
		name   string
		pickup string
		want   error
	}{
		{"missing pickup", "", ErrPickupMissing},
		{"unparseable pickup", "mañana a las tres", ErrPickupTooSoon},
		{"pickup in the past", f.pickupIn(-time.Hour), ErrPickupTooSoon},
		{"pickup under five minutes away", f.pickupIn(2 * time.Minute), ErrPickupTooSoon},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Checkout(f.user.ID, tc.pickup)
			assert.True(t, errors.Is(err, tc.want))
		})
	}

	assert.Empty(t, f.sender.batches, "no notification before validation passes")
	items, err := f.cart.Get(f.user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Pickup, "rejected checkouts leave the cart untouched")
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := setupCheckout(t)

	_, err := f.service.Checkout(f.user.ID, f.pickupIn(time.Hour))
	assert.True(t, errors.Is(err, ErrCartEmpty))
	assert.Empty(t, f.sender.batches)
}

func TestCheckoutAbortsOnStockConflict(t *testing.T) {
	f := setupCheckout(t)
	_, err := f.cart.Add(f.user.ID, f.product.ID, "Menta")
	require.NoError(t, err)
	_, err = f.cart.Add(f.user.ID, f.product.ID, "Cola")
	require.NoError(t, err)

	// The flavor sells out between add-to-cart and checkout.
	_, err = f.service.products.ToggleFlavorStock(f.product.ID, 1)
	require.NoError(t, err)

	_, err = f.service.Checkout(f.user.ID, f.pickupIn(time.Hour))
	var conflict *StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.FlavorLevel)
	assert.Equal(t, "Cola", conflict.Sabor)

	assert.Empty(t, f.sender.batches, "a conflict aborts before any send")
	items, err := f.cart.Get(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2, "the cart survives an aborted checkout")
}

func TestCheckoutMailFailureKeepsCart(t *testing.T) {
	f := setupCheckout(t)
	_, err := f.cart.Add(f.user.ID, f.product.ID, "Menta")
	require.NoError(t, err)

	f.sender.err = errors.New("relay down")
	_, err = f.service.Checkout(f.user.ID, f.pickupIn(time.Hour))

	var notifyErr *NotifyError
	require.ErrorAs(t, err, &notifyErr)

	items, err := f.cart.Get(f.user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1, "a failed send must keep the reservation retryable")
	require.NotNil(t, items[0].Pickup, "the chosen pickup is preserved for the retry")
}
