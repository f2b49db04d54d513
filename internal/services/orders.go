package services

import (
	"context"
	"fmt"
	"time"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaOrderService — implémentation ScyllaDB de checkout.OrderService.
// Chaque appel est une requête CQL indépendante : aucune transaction
// ne couvre la séquence panier → commande → paiement.
type ScyllaOrderService struct{}

func NewScyllaOrderService() *ScyllaOrderService {
	return &ScyllaOrderService{}
}

// CreateCart crée le panier durable `active` référencé par la commande
func (s *ScyllaOrderService) CreateCart(ctx context.Context, userEmail string) (*models.Cart, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &models.Cart{
		ID:        gocql.TimeUUID(),
		UserEmail: userEmail,
		Status:    models.CartActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := session.Query(`INSERT INTO carts (id, user_email, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserEmail, string(c.Status), c.CreatedAt, c.UpdatedAt).WithContext(ctx).Exec(); err != nil {
		return nil, fmt.Errorf("insertion panier: %w", err)
	}
	return c, nil
}

func (s *ScyllaOrderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order.ID = gocql.TimeUUID()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := session.Query(`INSERT INTO orders (id, user_email, cart_id, delivery_address, payment_method, status, total_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserEmail, order.CartID, order.DeliveryAddress,
		string(order.PaymentMethod), string(order.Status), order.TotalPrice,
		order.CreatedAt, order.UpdatedAt).WithContext(ctx).Exec(); err != nil {
		return nil, fmt.Errorf("insertion commande: %w", err)
	}
	return order, nil
}

func (s *ScyllaOrderService) UpdateOrderStatus(ctx context.Context, orderID gocql.UUID, status models.OrderStatus) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), orderID).WithContext(ctx).Exec()
}

// GetOrderByID — lecture d'une commande (QR, reçu, handlers)
func (s *ScyllaOrderService) GetOrderByID(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var (
		o              models.Order
		method, status string
	)
	if err := session.Query(`SELECT id, user_email, cart_id, delivery_address, payment_method, status, total_price, created_at, updated_at
		FROM orders WHERE id = ?`, orderID).WithContext(ctx).Scan(
		&o.ID, &o.UserEmail, &o.CartID, &o.DeliveryAddress, &method, &status,
		&o.TotalPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.PaymentMethod = models.PaymentMethod(method)
	o.Status = models.OrderStatus(status)
	return &o, nil
}
