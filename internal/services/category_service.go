package services

import (
	"github.com/thekingpuff/kingpuff-api/internal/events"
	"github.com/thekingpuff/kingpuff-api/internal/models"
	"github.com/thekingpuff/kingpuff-api/internal/slug"
	"gorm.io/gorm"
)

// CategoryService provides methods to interact with the category collection
type CategoryService interface {
	// GetAll retrieves all categories ordered by name
	GetAll() ([]models.Category, error)
	// GetByID retrieves a category by its ID
	GetByID(id string) (models.Category, error)
	// Create adds a new category, deriving its slug from the name
	Create(nombre string) (models.Category, error)
	// Rename updates a category name and recomputes its slug
	Rename(id, nombre string) (models.Category, error)
	// Delete removes a category; products keep their dangling reference
	Delete(id string) error
}

type categoryService struct {
	db  *gorm.DB
	bus *events.Bus
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(db *gorm.DB, bus *events.Bus) CategoryService {
	return &categoryService{db: db, bus: bus}
}

func (s *categoryService) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("nombre").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) GetByID(id string) (models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *categoryService) Create(nombre string) (models.Category, error) {
	category := models.Category{
		Nombre: nombre,
		Slug:   slug.Make(nombre),
	}
	if err := s.db.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	s.publishSnapshot()
	return category, nil
}

func (s *categoryService) Rename(id, nombre string) (models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return models.Category{}, err
	}

	category.Nombre = nombre
	category.Slug = slug.Make(nombre)
	if err := s.db.Save(&category).Error; err != nil {
		return models.Category{}, err
	}
	s.publishSnapshot()
	return category, nil
}

func (s *categoryService) Delete(id string) error {
	if err := s.db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.publishSnapshot()
	return nil
}

// publishSnapshot pushes the fresh ordered category list onto the bus
// so subscribed views redraw.
func (s *categoryService) publishSnapshot() {
	if s.bus == nil {
		return
	}
	categories, err := s.GetAll()
	if err != nil {
		return
	}
	s.bus.Publish(events.CatalogEvent{Kind: events.CategoriesChanged, Categories: categories})
}
