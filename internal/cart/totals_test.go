package cart

import (
	"testing"

	"tamaq_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsAppliesTaxRate(t *testing.T) {
	// deux plats à 10.00 : sous-total 20.00, taxe 1.65, total 21.65
	items := []models.CartLineItem{
		{FoodID: "f1", Price: 10.0, Quantity: 2},
	}

	totals := ComputeTotals(items)
	assert.Equal(t, 20.00, totals.Subtotal)
	assert.Equal(t, 1.65, totals.Tax)
	assert.Equal(t, 21.65, totals.Total)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Tax)
	assert.Equal(t, 0.0, totals.Total)
}

func TestComputeTotalsRoundsToCents(t *testing.T) {
	items := []models.CartLineItem{
		{FoodID: "f1", Price: 3.33, Quantity: 3}, // 9.99
		{FoodID: "f2", Price: 0.10, Quantity: 1},
	}

	totals := ComputeTotals(items)
	assert.Equal(t, 10.09, totals.Subtotal)
	assert.Equal(t, 0.83, totals.Tax) // 10.09 * 0.0825 = 0.832425
	assert.Equal(t, 10.92, totals.Total)
}

func TestSubtotalMultipliesPriceByQuantity(t *testing.T) {
	items := []models.CartLineItem{
		{FoodID: "f1", Price: 7.5, Quantity: 2},
		{FoodID: "f2", Price: 4.0, Quantity: 3},
	}
	assert.Equal(t, 27.0, Subtotal(items))
}
