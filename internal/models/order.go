package models

import (
	"fmt"
	"time"

	"github.com/gocql/gocql"
)

// OrderStatus est un enum fermé : toute valeur inconnue est rejetée
// à la frontière HTTP, jamais persistée telle quelle.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusDelivering OrderStatus = "delivering"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusPaid       OrderStatus = "paid"
	StatusOnDelivery OrderStatus = "onDelivery"
)

// ParseOrderStatus valide un statut reçu du client
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusDelivering, StatusDelivered, StatusCancelled, StatusPaid,
		StatusOnDelivery:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("statut de commande inconnu: %q", s)
}

// PaymentMethod — moyens de paiement acceptés au checkout
type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentPaypal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCreditCard, PaymentPaypal, PaymentCashOnDelivery:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("moyen de paiement inconnu: %q", s)
}

type Order struct {
	ID              gocql.UUID    `json:"id"`
	UserEmail       string        `json:"user_email"`
	CartID          gocql.UUID    `json:"cart_id"`
	DeliveryAddress string        `json:"delivery_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Status          OrderStatus   `json:"status"`
	TotalPrice      float64       `json:"total_price"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
