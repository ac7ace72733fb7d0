package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/thekingpuff/kingpuff-api/internal/mail"
)

// NotifyController is the stateless email gateway. It keeps the wire
// contract of the original endpoint: POST only, {ok, error} responses,
// legacy single-item and modern multi-item payloads, plus the
// promotional draw announcement.
type NotifyController interface {
	SendEmail(c *gin.Context)
}

type notifyController struct {
	sender     mail.Sender
	adminEmail string
}

// NewNotifyController creates a new instance of NotifyController
func NewNotifyController(sender mail.Sender, adminEmail string) *notifyController {
	return &notifyController{sender: sender, adminEmail: adminEmail}
}

type notifyRequest struct {
	Tipo      string      `json:"tipo"`
	Items     []mail.Item `json:"items"`
	Modelo    string      `json:"modelo"`
	Sabor     string      `json:"sabor"`
	Nombre    string      `json:"nombre"`
	Instagram string      `json:"instagram"`
	Email     string      `json:"email"`
	Hora      string      `json:"hora"`
	Ganador   string      `json:"ganador"`
	Premio    string      `json:"premio"`
}

// SendEmail godoc
// @Summary Send reservation or draw notification emails
// @Description Accepts the legacy single-item payload (modelo/sabor),
// @Description the modern items array, or a draw-winner payload
// @Description (tipo=sorteo). Responds with the {ok, error} contract.
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body notifyRequest true "Notification payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 405 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/sendEmail [post]
func (nc *notifyController) SendEmail(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "Método no permitido"})
		return
	}

	var req notifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Datos incompletos"})
		return
	}

	if req.Tipo == "sorteo" {
		nc.sendWinner(ctx, req)
		return
	}

	// Support both the legacy single-item shape and the items array
	var items []mail.Item
	legacy := false
	switch {
	case len(req.Items) > 0:
		items = req.Items
	case req.Modelo != "" && req.Sabor != "":
		items = []mail.Item{{Modelo: req.Modelo, Sabor: req.Sabor}}
		legacy = true
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Datos incompletos"})
		return
	}

	if req.Nombre == "" || req.Instagram == "" || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Datos incompletos"})
		return
	}

	admin, customer := mail.ReservationEmails(items, req.Nombre, req.Instagram, req.Email, req.Hora, nc.adminEmail)

	// The legacy payload predates customer confirmations; it only
	// notifies the shop.
	messages := []mail.Message{admin}
	if !legacy {
		messages = append(messages, customer)
	}

	if err := nc.sender.Send(messages...); err != nil {
		log.WithError(err).Error("Error enviando email")
		ctx.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (nc *notifyController) sendWinner(ctx *gin.Context, req notifyRequest) {
	if req.Ganador == "" || req.Email == "" || req.Premio == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Datos incompletos"})
		return
	}

	msg := mail.WinnerEmail(req.Ganador, req.Email, req.Premio)
	if err := nc.sender.Send(msg); err != nil {
		log.WithError(err).Error("Error enviando email")
		ctx.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
