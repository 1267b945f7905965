package payement

import (
	"math"

	"eshop_back_end/internal/models"
)

// round2 arrondit au centime.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// totalOfItems calcule le total du panier : somme des prix × quantités.
func totalOfItems(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return round2(total)
}

// applyDiscount applique une remise en pourcentage au total.
func applyDiscount(total, discount float64) float64 {
	return round2(total * (1 - discount/100))
}
