package cart

import (
	"math"

	"tamaq_back_end/internal/models"
)

// TaxRate — TVA appliquée sur le sous-total (8.25%)
const TaxRate = 0.0825

// Totals — montants affichés au panier et facturés au checkout
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Subtotal — somme prix × quantité sur toutes les lignes
func Subtotal(items []models.CartLineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return round2(total)
}

// ComputeTotals calcule sous-total, taxe et total arrondis au centime
func ComputeTotals(items []models.CartLineItem) Totals {
	subtotal := Subtotal(items)
	tax := round2(subtotal * TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    round2(subtotal + tax),
	}
}
