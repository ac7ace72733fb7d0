package services

import (
	"fmt"
	"time"

	"github.com/thekingpuff/kingpuff-api/internal/events"
	"github.com/thekingpuff/kingpuff-api/internal/models"
	"gorm.io/gorm"
)

// ProductUpdate is the admin edit payload. The four fields replace the
// stored values wholesale, mirroring the storefront's whole-document
// edit (a flavor omitted here is gone after the update).
type ProductUpdate struct {
	Nombre      string          `json:"nombre" binding:"required"`
	CategoriaID string          `json:"categoriaId" binding:"required"`
	ImagenURL   string          `json:"imagenUrl"`
	Sabores     []models.Flavor `json:"sabores"`
}

// ProductService provides methods to interact with the product catalog
type ProductService interface {
	// GetAll retrieves products ordered by name. With inStockOnly the
	// list is filtered the public way; categoriaID narrows to one
	// category ("" or "all" means every category).
	GetAll(categoriaID string, inStockOnly bool) ([]models.Product, error)
	// GetByID retrieves a product by its ID
	GetByID(id string) (models.Product, error)
	// Create adds a new product with no flavors, in stock
	Create(nombre, categoriaID, imagenURL string) (models.Product, error)
	// Update replaces the editable fields of an existing product
	Update(id string, update ProductUpdate) (models.Product, error)
	// ToggleStock flips the product-level stock flag
	ToggleStock(id string) (models.Product, error)
	// ToggleFlavorStock flips the stock flag of the flavor at idx
	ToggleFlavorStock(id string, idx int) (models.Product, error)
	// Delete removes a product from the catalog
	Delete(id string) error
}

type productService struct {
	db  *gorm.DB
	bus *events.Bus
}

// NewProductService creates a new instance of ProductService
func NewProductService(db *gorm.DB, bus *events.Bus) ProductService {
	return &productService{db: db, bus: bus}
}

func (s *productService) GetAll(categoriaID string, inStockOnly bool) ([]models.Product, error) {
	query := s.db.Order("nombre")
	if categoriaID != "" && categoriaID != "all" {
		query = query.Where("categoria_id = ?", categoriaID)
	}
	if inStockOnly {
		query = query.Where("en_stock = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) GetByID(id string) (models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *productService) Create(nombre, categoriaID, imagenURL string) (models.Product, error) {
	product := models.Product{
		Nombre:      nombre,
		CategoriaID: categoriaID,
		ImagenURL:   imagenURL,
		Sabores:     []models.Flavor{},
		EnStock:     true,
		CreadoEn:    time.Now(),
	}
	if err := s.db.Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	s.publishSnapshot()
	return product, nil
}

func (s *productService) Update(id string, update ProductUpdate) (models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return models.Product{}, err
	}

	product.Nombre = update.Nombre
	product.CategoriaID = update.CategoriaID
	product.ImagenURL = update.ImagenURL
	product.Sabores = update.Sabores
	if product.Sabores == nil {
		product.Sabores = []models.Flavor{}
	}

	if err := s.db.Save(&product).Error; err != nil {
		return models.Product{}, err
	}
	s.publishSnapshot()
	return product, nil
}

func (s *productService) ToggleStock(id string) (models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return models.Product{}, err
	}

	product.EnStock = !product.EnStock
	if err := s.db.Save(&product).Error; err != nil {
		return models.Product{}, err
	}
	s.publishSnapshot()
	return product, nil
}

func (s *productService) ToggleFlavorStock(id string, idx int) (models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return models.Product{}, err
	}

	if idx < 0 || idx >= len(product.Sabores) {
		return models.Product{}, fmt.Errorf("flavor index %d out of range for product %s", idx, id)
	}

	next := !product.Sabores[idx].Available()
	product.Sabores[idx].EnStock = &next

	if err := s.db.Save(&product).Error; err != nil {
		return models.Product{}, err
	}
	s.publishSnapshot()
	return product, nil
}

func (s *productService) Delete(id string) error {
	if err := s.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.publishSnapshot()
	return nil
}

// publishSnapshot pushes the fresh ordered product list onto the bus
// so subscribed views redraw.
func (s *productService) publishSnapshot() {
	if s.bus == nil {
		return
	}
	products, err := s.GetAll("", false)
	if err != nil {
		return
	}
	s.bus.Publish(events.CatalogEvent{Kind: events.ProductsChanged, Products: products})
}
