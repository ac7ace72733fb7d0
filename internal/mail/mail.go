// Package mail composes and sends the storefront notification emails
// through an SMTP relay.
package mail

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// Item is one reserved product line as it appears in the emails.
type Item struct {
	Modelo string `json:"modelo"`
	Sabor  string `json:"sabor"`
	Pickup string `json:"pickup,omitempty"`
}

// Message is a single plain-text email ready for the relay.
type Message struct {
	FromName string
	To       string
	Subject  string
	Body     string
}

// Sender delivers messages through a relay. Messages are sent in
// order; the first failure aborts the batch.
type Sender interface {
	Send(messages ...Message) error
}

// SMTPSender sends through an SMTP relay authenticated with fixed
// credentials (gmail-style app password).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender for the given relay and account.
func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

// Send delivers every message over a single relay connection.
func (s *SMTPSender) Send(messages ...Message) error {
	out := make([]*gomail.Message, 0, len(messages))
	for _, m := range messages {
		gm := gomail.NewMessage()
		gm.SetAddressHeader("From", s.from, m.FromName)
		gm.SetHeader("To", m.To)
		gm.SetHeader("Subject", m.Subject)
		gm.SetBody("text/plain", m.Body)
		out = append(out, gm)
	}
	return s.dialer.DialAndSend(out...)
}

// itemLines renders the numbered reservation list shared by both
// reservation emails: "1. 📦 Puff X - 🍭 Menta".
func itemLines(items []Item) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d. 📦 %s - 🍭 %s", i+1, it.Modelo, it.Sabor))
	}
	return strings.Join(lines, "\n")
}

// ReservationEmails builds the admin notification and the customer
// confirmation for a confirmed reservation.
func ReservationEmails(items []Item, nombre, instagram, email, hora, adminEmail string) (admin Message, customer Message) {
	plural := ""
	if len(items) > 1 {
		plural = "s"
	}
	list := itemLines(items)

	admin = Message{
		FromName: "The King Puff Bot",
		To:       adminEmail,
		Subject:  fmt.Sprintf("📩 Nueva reserva recibida (%d item%s)", len(items), plural),
		Body: fmt.Sprintf(`
Nueva reserva:

%s

👤 Cliente: %s
📸 Instagram: %s
📧 Email: %s

🕐 Hora del pedido: %s
`, list, nombre, instagram, email, hora),
	}

	customer = Message{
		FromName: "The King Puff",
		To:       email,
		Subject:  "✅ Reserva confirmada - The King Puff",
		Body: fmt.Sprintf(`
Hola %s,

¡Tu reserva ha sido confirmada! 🎉

%s

🕐 Hora del pedido: %s

¡Ya lo hemos reservado para ti! Pasate cuando puedas. 😜

C/Plaza Santa Maria, 26, 41620 Marchena, Sevilla

Gracias por tu compra,
The King Puff 🐒🌴💨
`, nombre, list, hora),
	}

	return admin, customer
}

// WinnerEmail builds the promotional draw announcement for a winner.
func WinnerEmail(ganador, email, premio string) Message {
	return Message{
		FromName: "The King Puff",
		To:       email,
		Subject:  "🎉 ¡Has ganado el sorteo! - The King Puff",
		Body: fmt.Sprintf(`
Hola %s,

¡Enhorabuena! Has ganado el sorteo de The King Puff. 🎉

🎁 Premio: %s

Pasate por la tienda para recogerlo.

C/Plaza Santa Maria, 26, 41620 Marchena, Sevilla

The King Puff 🐒🌴💨
`, ganador, premio),
	}
}
