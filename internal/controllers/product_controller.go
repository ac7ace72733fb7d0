package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thekingpuff/kingpuff-api/internal/services"
)

// ProductController handles HTTP requests related to catalog products
type ProductController interface {
	// GetPublicProducts lists in-stock products for the storefront
	GetPublicProducts(c *gin.Context)
	// GetProductDetail returns one product with its reservable flavors
	GetProductDetail(c *gin.Context)
	// GetAdminProducts lists every product regardless of stock
	GetAdminProducts(c *gin.Context)
	// CreateProduct adds a new product
	CreateProduct(c *gin.Context)
	// UpdateProduct replaces the editable fields of a product
	UpdateProduct(c *gin.Context)
	// ToggleProductStock flips the product-level stock flag
	ToggleProductStock(c *gin.Context)
	// ToggleFlavorStock flips the stock flag of one flavor
	ToggleFlavorStock(c *gin.Context)
	// DeleteProduct deletes a product by its ID
	DeleteProduct(c *gin.Context)
}

type productController struct {
	service services.ProductService
}

// NewProductController creates a new instance of ProductController
func NewProductController(service services.ProductService) *productController {
	return &productController{service: service}
}

// GetPublicProducts godoc
// @Summary List products for the storefront
// @Description In-stock products ordered by name, optionally filtered by category
// @Tags products
// @Accept json
// @Produce json
// @Param categoria query string false "Category ID filter (default all)"
// @Success 200 {array} models.Product
// @Failure 500 {object} map[string]string
// @Router /api/v1/public/products [get]
func (pc *productController) GetPublicProducts(ctx *gin.Context) {
	categoria := ctx.DefaultQuery("categoria", "all")

	products, err := pc.service.GetAll(categoria, true)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProductDetail godoc
// @Summary Product detail for the reservation modal
// @Description Returns the product and the flavors that can currently be
// @Description reserved. When nothing is reservable the response says so
// @Description and the client closes the modal.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/products/{id} [get]
func (pc *productController) GetProductDetail(ctx *gin.Context) {
	id := ctx.Param("id")

	product, err := pc.service.GetByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	available := product.AvailableFlavors()
	if !product.EnStock || len(available) == 0 {
		ctx.JSON(http.StatusOK, gin.H{
			"product":   product,
			"available": false,
			"sabores":   []interface{}{},
			"message":   "Este producto no tiene sabores disponibles",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"product":   product,
		"available": true,
		"sabores":   available,
	})
}

// GetAdminProducts godoc
// @Summary List all products for the admin panel
// @Description Every product ordered by name, in or out of stock
// @Tags products
// @Accept json
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/products [get]
func (pc *productController) GetAdminProducts(ctx *gin.Context) {
	products, err := pc.service.GetAll("all", false)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// CreateProduct godoc
// @Summary Create a new product
// @Description New products start in stock with no flavors
// @Tags products
// @Accept json
// @Produce json
// @Param product body object{nombre=string,categoriaId=string,imagenUrl=string} true "Product"
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/products [post]
func (pc *productController) CreateProduct(ctx *gin.Context) {
	var req struct {
		Nombre      string `json:"nombre" binding:"required"`
		CategoriaID string `json:"categoriaId" binding:"required"`
		ImagenURL   string `json:"imagenUrl"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := pc.service.Create(req.Nombre, req.CategoriaID, req.ImagenURL)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Replaces name, category, image URL and the whole flavor list
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body services.ProductUpdate true "Fields to replace"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/products/{id} [put]
func (pc *productController) UpdateProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	var update services.ProductUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := pc.service.GetByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	product, err := pc.service.Update(id, update)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// ToggleProductStock godoc
// @Summary Toggle product stock
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/products/{id}/stock [patch]
func (pc *productController) ToggleProductStock(ctx *gin.Context) {
	id := ctx.Param("id")

	if _, err := pc.service.GetByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	product, err := pc.service.ToggleStock(id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// ToggleFlavorStock godoc
// @Summary Toggle the stock flag of one flavor
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param idx path int true "Flavor position"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/products/{id}/flavors/{idx}/stock [patch]
func (pc *productController) ToggleFlavorStock(ctx *gin.Context) {
	id := ctx.Param("id")

	idx, err := strconv.Atoi(ctx.Param("idx"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flavor index"})
		return
	}

	if _, err := pc.service.GetByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	product, err := pc.service.ToggleFlavorStock(id, idx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flavor index"})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/products/{id} [delete]
func (pc *productController) DeleteProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	if _, err := pc.service.GetByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	if err := pc.service.Delete(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
