package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flavor is embedded in a Product and has no identity of its own.
// EnStock is a pointer so documents created before per-flavor stock
// existed keep behaving as "in stock" (nil means available).
type Flavor struct {
	Nombre    string `json:"nombre"`
	ImagenURL string `json:"imagenUrl,omitempty"`
	EnStock   *bool  `json:"enStock,omitempty"`
}

// Available reports whether the flavor can be reserved.
func (f Flavor) Available() bool {
	return f.EnStock == nil || *f.EnStock
}

// Product represents a vaper in the catalog. JSON tags keep the wire
// names used by the storefront front-end (nombre, categoriaId, ...).
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Nombre      string    `json:"nombre" gorm:"not null"`
	CategoriaID string    `json:"categoriaId"`
	ImagenURL   string    `json:"imagenUrl"`
	EnStock     bool      `json:"enStock"`
	Sabores     []Flavor  `json:"sabores" gorm:"serializer:json"`
	CreadoEn    time.Time `json:"creadoEn"`
}

func (Product) TableName() string {
	return "vapers"
}

// BeforeCreate assigns a document-style UUID when none was provided.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AvailableFlavors returns the flavors that can currently be reserved.
func (p *Product) AvailableFlavors() []Flavor {
	out := make([]Flavor, 0, len(p.Sabores))
	for _, f := range p.Sabores {
		if f.Available() {
			out = append(out, f)
		}
	}
	return out
}

// FindFlavor looks a flavor up by name.
func (p *Product) FindFlavor(nombre string) (Flavor, bool) {
	for _, f := range p.Sabores {
		if f.Nombre == nombre {
			return f, true
		}
	}
	return Flavor{}, false
}
