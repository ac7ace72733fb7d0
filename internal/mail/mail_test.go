package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationEmailsSingleItem(t *testing.T) {
	items := []Item{{Modelo: "Puff X", Sabor: "Menta"}}

	admin, customer := ReservationEmails(items, "Ana", "@ana", "ana@example.com", "01/01/2025 10:00", "shop@thekingpuff.es")

	assert.Equal(t, "shop@thekingpuff.es", admin.To)
	assert.Equal(t, "The King Puff Bot", admin.FromName)
	assert.Contains(t, admin.Subject, "Nueva reserva recibida (1 item)")
	assert.NotContains(t, admin.Subject, "items")
	assert.Contains(t, admin.Body, "1. 📦 Puff X - 🍭 Menta")
	assert.Contains(t, admin.Body, "👤 Cliente: Ana")
	assert.Contains(t, admin.Body, "📸 Instagram: @ana")
	assert.Contains(t, admin.Body, "📧 Email: ana@example.com")
	assert.Contains(t, admin.Body, "🕐 Hora del pedido: 01/01/2025 10:00")

	assert.Equal(t, "ana@example.com", customer.To)
	assert.Equal(t, "The King Puff", customer.FromName)
	assert.Equal(t, "✅ Reserva confirmada - The King Puff", customer.Subject)
	assert.Contains(t, customer.Body, "Hola Ana,")
	assert.Contains(t, customer.Body, "1. 📦 Puff X - 🍭 Menta")
	assert.Contains(t, customer.Body, "C/Plaza Santa Maria, 26, 41620 Marchena, Sevilla")
}

func TestReservationEmailsPluralSubject(t *testing.T) {
	items := []Item{
		{Modelo: "Puff X", Sabor: "Menta"},
		{Modelo: "Puff Mini", Sabor: "Sandía"},
		{Modelo: "Puff Max", Sabor: "Cola"},
	}

	admin, _ := ReservationEmails(items, "Luis", "@luis", "luis@example.com", "02/02/2025 18:30", "shop@thekingpuff.es")

	assert.Contains(t, admin.Subject, "Nueva reserva recibida (3 items)")
	assert.Contains(t, admin.Body, "1. 📦 Puff X - 🍭 Menta")
	assert.Contains(t, admin.Body, "2. 📦 Puff Mini - 🍭 Sandía")
	assert.Contains(t, admin.Body, "3. 📦 Puff Max - 🍭 Cola")
}

func TestWinnerEmail(t *testing.T) {
	msg := WinnerEmail("Carla", "carla@example.com", "Puff Max edición limitada")

	assert.Equal(t, "carla@example.com", msg.To)
	assert.Equal(t, "The King Puff", msg.FromName)
	assert.Contains(t, msg.Subject, "Has ganado el sorteo")
	assert.Contains(t, msg.Body, "Hola Carla,")
	assert.Contains(t, msg.Body, "🎁 Premio: Puff Max edición limitada")
}
