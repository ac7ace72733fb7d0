package models

// CartItem is one reserved (product, flavor) pair pending checkout.
// Pickup stays nil until the checkout flow stamps a pickup time on
// every item at once.
type CartItem struct {
	ProductID string  `json:"id"`
	Modelo    string  `json:"modelo"`
	Sabor     string  `json:"sabor"`
	Pickup    *string `json:"pickup"`
	Timestamp string  `json:"timestamp"`
}
