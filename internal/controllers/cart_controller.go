package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thekingpuff/kingpuff-api/internal/models"
	"github.com/thekingpuff/kingpuff-api/internal/services"
)

// CartController handles the authenticated user's reservation cart
type CartController interface {
	// GetCart returns the current cart
	GetCart(c *gin.Context)
	// AddItem reserves a (product, flavor) pair
	AddItem(c *gin.Context)
	// RemoveItem deletes one item by its position
	RemoveItem(c *gin.Context)
	// ReplaceCart swaps the whole cart (login sync)
	ReplaceCart(c *gin.Context)
}

type cartController struct {
	service services.CartService
}

// NewCartController creates a new instance of CartController
func NewCartController(service services.CartService) *cartController {
	return &cartController{service: service}
}

// currentUserID reads the session uid set by the JWT middleware.
func currentUserID(ctx *gin.Context) (string, bool) {
	v, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	uid, ok := v.(string)
	if !ok || uid == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return uid, true
}

// GetCart godoc
// @Summary Get the current cart
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {array} models.CartItem
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/cart [get]
func (cc *cartController) GetCart(ctx *gin.Context) {
	uid, ok := currentUserID(ctx)
	if !ok {
		return
	}

	items, err := cc.service.Get(uid)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// AddItem godoc
// @Summary Reserve a product flavor
// @Description Appends a cart item after checking the product and flavor
// @Description are still in stock
// @Tags cart
// @Accept json
// @Produce json
// @Param item body object{productId=string,sabor=string} true "Reservation"
// @Success 201 {object} models.CartItem
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/cart/items [post]
func (cc *cartController) AddItem(ctx *gin.Context) {
	uid, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId" binding:"required"`
		Sabor     string `json:"sabor" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Elige un sabor."})
		return
	}

	item, err := cc.service.Add(uid, req.ProductID, req.Sabor)
	if err != nil {
		var conflict *services.StockConflictError
		if errors.As(err, &conflict) {
			msg := "Este producto ya no está disponible."
			code := models.ErrProductNoStock
			if conflict.FlavorLevel {
				msg = "Este sabor ya no está disponible."
				code = models.ErrFlavorNoStock
			}
			ctx.JSON(http.StatusConflict, gin.H{"error": msg, "code": code})
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// RemoveItem godoc
// @Summary Remove a cart item by position
// @Tags cart
// @Accept json
// @Produce json
// @Param idx path int true "Item position"
// @Success 200 {array} models.CartItem
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/cart/items/{idx} [delete]
func (cc *cartController) RemoveItem(ctx *gin.Context) {
	uid, ok := currentUserID(ctx)
	if !ok {
		return
	}

	idx, err := strconv.Atoi(ctx.Param("idx"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item index"})
		return
	}

	items, err := cc.service.RemoveAt(uid, idx)
	if err != nil {
		if errors.Is(err, services.ErrCartIndexOutOfRange) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item index", "code": models.ErrCartBadIndex})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// ReplaceCart godoc
// @Summary Replace the whole cart
// @Description Used by the client to sync its local copy after login;
// @Description the profile copy is canonical from then on
// @Tags cart
// @Accept json
// @Produce json
// @Param cart body object{items=[]models.CartItem} true "Cart contents"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/cart [put]
func (cc *cartController) ReplaceCart(ctx *gin.Context) {
	uid, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		Items []models.CartItem `json:"items"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := cc.service.Replace(uid, req.Items); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "cart_updated"})
}
