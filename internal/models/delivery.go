package models

import (
	"fmt"
	"time"

	"github.com/gocql/gocql"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryInTransit DeliveryStatus = "inTransit"
	DeliveryDone      DeliveryStatus = "delivered"
)

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch DeliveryStatus(s) {
	case DeliveryPending, DeliveryAssigned, DeliveryInTransit, DeliveryDone:
		return DeliveryStatus(s), nil
	}
	return "", fmt.Errorf("statut de livraison inconnu: %q", s)
}

type Delivery struct {
	ID              gocql.UUID     `json:"id"`
	OrderID         gocql.UUID     `json:"order_id"`
	UserEmail       string         `json:"user_email"`
	DeliveryAddress string         `json:"delivery_address"`
	DeliveryStatus  DeliveryStatus `json:"delivery_status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
