package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/thekingpuff/kingpuff-api/internal/mail"
	"github.com/thekingpuff/kingpuff-api/internal/models"
)

// PickupLayout is the datetime-local format the storefront sends.
const PickupLayout = "2006-01-02T15:04"

// MinPickupLead is the minimum delay between checkout and pickup.
const MinPickupLead = 5 * time.Minute

var (
	// ErrCartEmpty aborts a checkout attempted with nothing reserved.
	ErrCartEmpty = errors.New("cart_empty")
	// ErrPickupMissing means no pickup time was provided.
	ErrPickupMissing = errors.New("pickup_missing")
	// ErrPickupTooSoon means the pickup time is invalid or under the
	// five minute minimum.
	ErrPickupTooSoon = errors.New("pickup_too_soon")
)

// NotifyError wraps a mail relay failure. The cart is left intact so
// the customer can retry.
type NotifyError struct {
	Err error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notification send failed: %v", e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}

// CheckoutService runs the linear reservation flow: pickup selection,
// stock re-validation against the live catalog, one notification send,
// then cart clearing.
type CheckoutService interface {
	// Checkout finalizes the user's reservation with the given pickup
	// datetime. It returns the items the notification was sent for.
	Checkout(uid, pickup string) ([]models.CartItem, error)
}

type checkoutService struct {
	users      UserService
	cart       CartService
	products   ProductService
	sender     mail.Sender
	adminEmail string
	now        func() time.Time
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(users UserService, cart CartService, products ProductService, sender mail.Sender, adminEmail string) CheckoutService {
	return &checkoutService{
		users:      users,
		cart:       cart,
		products:   products,
		sender:     sender,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

func (s *checkoutService) Checkout(uid, pickup string) ([]models.CartItem, error) {
	if pickup == "" {
		return nil, ErrPickupMissing
	}
	when, err := time.ParseInLocation(PickupLayout, pickup, time.Local)
	if err != nil || when.Before(s.now().Add(MinPickupLead)) {
		return nil, ErrPickupTooSoon
	}

	user, err := s.users.GetUserByID(uid)
	if err != nil {
		return nil, err
	}

	items, err := s.cart.Get(uid)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	// Re-validate every item against the latest catalog snapshot. The
	// catalog may have changed since add-to-cart; any conflict aborts
	// the whole checkout and leaves the cart untouched.
	for _, item := range items {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil || !product.EnStock {
			return nil, &StockConflictError{Modelo: item.Modelo}
		}
		flavor, ok := product.FindFlavor(item.Sabor)
		if !ok || !flavor.Available() {
			return nil, &StockConflictError{Modelo: item.Modelo, Sabor: item.Sabor, FlavorLevel: true}
		}
	}

	// Stamp the chosen pickup uniformly on every item and persist, so
	// a failed notification still leaves the reservation retryable.
	for i := range items {
		p := pickup
		items[i].Pickup = &p
	}
	if err := s.cart.Replace(uid, items); err != nil {
		return nil, err
	}

	mailItems := make([]mail.Item, 0, len(items))
	for _, item := range items {
		mailItems = append(mailItems, mail.Item{Modelo: item.Modelo, Sabor: item.Sabor, Pickup: pickup})
	}
	hora := s.now().Format("02/01/2006, 15:04:05")

	admin, customer := mail.ReservationEmails(mailItems, user.Nombre, user.Instagram, user.Correo, hora, s.adminEmail)
	if err := s.sender.Send(admin, customer); err != nil {
		return nil, &NotifyError{Err: err}
	}

	if err := s.cart.Clear(uid); err != nil {
		return nil, err
	}
	return items, nil
}
