package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Address — adresse libre rattachée à un utilisateur (plusieurs par user)
type Address struct {
	ID        gocql.UUID `json:"id"`
	UserEmail string     `json:"user_email"`
	Address   string     `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
