package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/thekingpuff/kingpuff-api/internal/models"
	"github.com/thekingpuff/kingpuff-api/internal/services"
)

// CheckoutController finalizes reservations
type CheckoutController interface {
	Checkout(c *gin.Context)
}

type checkoutController struct {
	service services.CheckoutService
}

// NewCheckoutController creates a new instance of CheckoutController
func NewCheckoutController(service services.CheckoutService) *checkoutController {
	return &checkoutController{service: service}
}

// Checkout godoc
// @Summary Complete the reservation
// @Description Validates the pickup time and the stock of every cart
// @Description item, sends the notification emails and clears the cart.
// @Description Any failure leaves the cart intact so the user can retry.
// @Tags checkout
// @Accept json
// @Produce json
// @Param checkout body object{pickup=string} true "Pickup datetime (YYYY-MM-DDTHH:MM)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/checkout [post]
func (cc *checkoutController) Checkout(ctx *gin.Context) {
	uid, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		Pickup string `json:"pickup"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Indica fecha y hora para recogida"})
		return
	}

	items, err := cc.service.Checkout(uid, req.Pickup)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPickupMissing):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Indica fecha y hora para recogida"})
		case errors.Is(err, services.ErrPickupTooSoon):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Selecciona una fecha/hora futura (mínimo +5 minutos).", "code": models.ErrPickupTooSoon})
		case errors.Is(err, services.ErrCartEmpty):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "El carrito está vacío", "code": models.ErrCartEmpty})
		default:
			var conflict *services.StockConflictError
			var notify *services.NotifyError
			if errors.As(err, &conflict) {
				msg := "Este producto ya no está disponible."
				if conflict.FlavorLevel {
					msg = "Este sabor ya no está disponible."
				}
				ctx.JSON(http.StatusConflict, gin.H{"error": msg, "modelo": conflict.Modelo, "sabor": conflict.Sabor})
				return
			}
			if errors.As(err, &notify) {
				log.WithError(notify.Err).Error("Checkout notification failed")
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "Error al enviar pedido", "code": models.ErrNotifyFailed})
				return
			}
			log.WithError(err).Error("Checkout failed")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error al enviar pedido"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Pedido completado. ¡Gracias!",
		"items":   items,
	})
}
