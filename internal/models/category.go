package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products in the catalog. Deleting a category does not
// cascade: products keep a dangling categoriaId and render without one.
type Category struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Nombre string `json:"nombre" gorm:"not null"`
	Slug   string `json:"slug"`
}

func (Category) TableName() string {
	return "categorias"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
