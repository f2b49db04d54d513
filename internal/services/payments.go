package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeCharger — implémentation carte de checkout.PaymentCharger.
// Crée le PaymentIntent Stripe puis l'enregistrement de paiement.
type StripeCharger struct {
	Currency string
}

func NewStripeCharger() *StripeCharger {
	return &StripeCharger{Currency: "kzt"}
}

func (c *StripeCharger) Charge(ctx context.Context, orderID gocql.UUID, amount float64, method models.PaymentMethod) (*models.Payment, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(c.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id": orderID.String(),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}
	log.Printf("💳 PaymentIntent créé : %s (%.2f₸) pour la commande %s", intent.ID, amount, orderID)

	payment, err := recordPayment(ctx, orderID, amount, method, intent.ID)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// recordPayment insère la ligne de paiement dans le keyspace orders
func recordPayment(ctx context.Context, orderID gocql.UUID, amount float64, method models.PaymentMethod, stripeID string) (*models.Payment, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &models.Payment{
		ID:            gocql.TimeUUID(),
		OrderID:       orderID,
		Amount:        amount,
		PaymentMethod: method,
		StripeID:      stripeID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := session.Query(`INSERT INTO payments (id, order_id, amount, payment_method, stripe_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OrderID, p.Amount, string(p.PaymentMethod), p.StripeID,
		p.CreatedAt, p.UpdatedAt).WithContext(ctx).Exec(); err != nil {
		return nil, fmt.Errorf("insertion paiement: %w", err)
	}
	return p, nil
}
