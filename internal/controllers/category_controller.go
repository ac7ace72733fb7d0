package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thekingpuff/kingpuff-api/internal/services"
)

// CategoryController handles HTTP requests related to categories
type CategoryController interface {
	// GetCategories lists categories ordered by name
	GetCategories(c *gin.Context)
	// CreateCategory adds a category; the slug is derived from the name
	CreateCategory(c *gin.Context)
	// RenameCategory renames a category and recomputes its slug
	RenameCategory(c *gin.Context)
	// DeleteCategory removes a category without touching its products
	DeleteCategory(c *gin.Context)
}

type categoryController struct {
	service services.CategoryService
}

// NewCategoryController creates a new instance of CategoryController
func NewCategoryController(service services.CategoryService) *categoryController {
	return &categoryController{service: service}
}

// GetCategories godoc
// @Summary List categories
// @Description Categories ordered by name, used for the filter chips
// @Tags categories
// @Accept json
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} map[string]string
// @Router /api/v1/public/categories [get]
func (cc *categoryController) GetCategories(ctx *gin.Context) {
	categories, err := cc.service.GetAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body object{nombre=string} true "Category name"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/categories [post]
func (cc *categoryController) CreateCategory(ctx *gin.Context) {
	var req struct {
		Nombre string `json:"nombre" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	category, err := cc.service.Create(req.Nombre)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// RenameCategory godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body object{nombre=string} true "New name"
// @Success 200 {object} models.Category
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/categories/{id} [put]
func (cc *categoryController) RenameCategory(ctx *gin.Context) {
	id := ctx.Param("id")

	var req struct {
		Nombre string `json:"nombre" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := cc.service.GetByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}

	category, err := cc.service.Rename(id, req.Nombre)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename category"})
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Products in the category keep their dangling reference
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/categories/{id} [delete]
func (cc *categoryController) DeleteCategory(ctx *gin.Context) {
	id := ctx.Param("id")

	if _, err := cc.service.GetByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}

	if err := cc.service.Delete(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
