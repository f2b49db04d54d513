package models

import (
	"fmt"
	"time"
)

// Role — rôles utilisateurs, enum fermé comme OrderStatus
type Role string

const (
	RoleClient  Role = "client"
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleAdmin, RoleCourier:
		return Role(s), nil
	}
	return "", fmt.Errorf("rôle inconnu: %q", s)
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Image     string    `json:"image,omitempty"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Password  string    `json:"-"`
	Provider  string    `json:"provider,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
