package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/thekingpuff/kingpuff-api/internal/models"
	"gorm.io/gorm"
)

// ErrCartIndexOutOfRange is returned when removing a position that
// does not exist in the cart.
var ErrCartIndexOutOfRange = errors.New("cart_index_out_of_range")

// StockConflictError reports that a product or one of its flavors is
// no longer reservable. FlavorLevel distinguishes "product gone" from
// "flavor gone" so callers can show the right message.
type StockConflictError struct {
	Modelo      string
	Sabor       string
	FlavorLevel bool
}

func (e *StockConflictError) Error() string {
	if e.FlavorLevel {
		return fmt.Sprintf("flavor %q of %q is out of stock", e.Sabor, e.Modelo)
	}
	return fmt.Sprintf("product %q is out of stock", e.Modelo)
}

// CartService maintains the reserved (product, flavor) pairs stored on
// the user profile. The profile row is the canonical cart once a
// session exists; clients mirror it locally and sync through Replace.
type CartService interface {
	// Get returns the current cart items for the user
	Get(uid string) ([]models.CartItem, error)
	// Add validates stock and appends a new item with a null pickup
	Add(uid, productID, sabor string) (models.CartItem, error)
	// RemoveAt deletes the item at the given position
	RemoveAt(uid string, idx int) ([]models.CartItem, error)
	// Replace swaps the whole cart (login sync path)
	Replace(uid string, items []models.CartItem) error
	// Clear empties the cart after a completed checkout
	Clear(uid string) error
}

type cartService struct {
	db       *gorm.DB
	products ProductService
}

// NewCartService creates a new instance of CartService
func NewCartService(db *gorm.DB, products ProductService) CartService {
	return &cartService{db: db, products: products}
}

func (s *cartService) Get(uid string) ([]models.CartItem, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", uid).Error; err != nil {
		return nil, err
	}
	if user.Cart == nil {
		return []models.CartItem{}, nil
	}
	return user.Cart, nil
}

func (s *cartService) Add(uid, productID, sabor string) (models.CartItem, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return models.CartItem{}, err
	}

	// An item may only enter the cart while both the product and the
	// chosen flavor are in stock. Checkout re-validates later because
	// the catalog may change in between.
	if !product.EnStock {
		return models.CartItem{}, &StockConflictError{Modelo: product.Nombre}
	}
	flavor, ok := product.FindFlavor(sabor)
	if !ok || !flavor.Available() {
		return models.CartItem{}, &StockConflictError{Modelo: product.Nombre, Sabor: sabor, FlavorLevel: true}
	}

	item := models.CartItem{
		ProductID: product.ID,
		Modelo:    product.Nombre,
		Sabor:     flavor.Nombre,
		Pickup:    nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	items, err := s.Get(uid)
	if err != nil {
		return models.CartItem{}, err
	}
	items = append(items, item)

	if err := s.save(uid, items); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

func (s *cartService) RemoveAt(uid string, idx int) ([]models.CartItem, error) {
	items, err := s.Get(uid)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(items) {
		return nil, ErrCartIndexOutOfRange
	}

	items = append(items[:idx], items[idx+1:]...)
	if err := s.save(uid, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *cartService) Replace(uid string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	return s.save(uid, items)
}

func (s *cartService) Clear(uid string) error {
	return s.save(uid, []models.CartItem{})
}

func (s *cartService) save(uid string, items []models.CartItem) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", uid).Error; err != nil {
		return err
	}
	user.Cart = items
	return s.db.Save(&user).Error
}
