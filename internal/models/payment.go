package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Payment n'est créé que lorsque le moyen de paiement exige un débit
// immédiat (carte) — jamais pour le paiement à la livraison.
type Payment struct {
	ID            gocql.UUID    `json:"id"`
	OrderID       gocql.UUID    `json:"order_id"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	StripeID      string        `json:"stripe_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
