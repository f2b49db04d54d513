package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "preparing", "ready",
		"delivering", "delivered", "cancelled", "paid", "onDelivery"} {
		status, err := ParseOrderStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, OrderStatus(s), status)
	}

	for _, s := range []string{"", "PENDING", "shipped", "on_delivery", "payé"} {
		_, err := ParseOrderStatus(s)
		assert.Error(t, err, s)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"credit_card", "paypal", "cash_on_delivery"} {
		method, err := ParsePaymentMethod(s)
		require.NoError(t, err, s)
		assert.Equal(t, PaymentMethod(s), method)
	}

	for _, s := range []string{"", "card", "cash", "bitcoin"} {
		_, err := ParsePaymentMethod(s)
		assert.Error(t, err, s)
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"client", "admin", "courier"} {
		role, err := ParseRole(s)
		require.NoError(t, err, s)
		assert.Equal(t, Role(s), role)
	}

	_, err := ParseRole("superadmin")
	assert.Error(t, err)
}

func TestParseDeliveryStatus(t *testing.T) {
	for _, s := range []string{"pending", "assigned", "inTransit", "delivered"} {
		status, err := ParseDeliveryStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, DeliveryStatus(s), status)
	}

	_, err := ParseDeliveryStatus("lost")
	assert.Error(t, err)
}
