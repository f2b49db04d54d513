package models

import (
	"time"

	"github.com/gocql/gocql"
)

// CartLineItem est une ligne du panier de session (blob Redis).
// Invariants tenus par cart.Store : id unique, quantity >= 1.
type CartLineItem struct {
	FoodID   string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// CartStatus — cycle de vie du panier durable
type CartStatus string

const (
	CartActive    CartStatus = "active"
	CartCompleted CartStatus = "completed"
)

// Cart est l'enregistrement durable créé au checkout
type Cart struct {
	ID        gocql.UUID `json:"id"`
	UserEmail string     `json:"user_email"`
	Status    CartStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem est une ligne durable rattachée à un Cart
type CartItem struct {
	ID        gocql.UUID `json:"id"`
	CartID    gocql.UUID `json:"cart_id"`
	FoodID    gocql.UUID `json:"food_id"`
	Quantity  int        `json:"quantity"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
