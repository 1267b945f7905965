package payement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eshop_back_end/internal/models"
)

func TestTotalOfItems(t *testing.T) {
	items := []models.CartItem{
		{Price: 19.99, Quantity: 2},
		{Price: 5.50, Quantity: 1},
	}

	assert.InDelta(t, 45.48, totalOfItems(items), 0.001)
}

func TestTotalOfItemsEmptyCart(t *testing.T) {
	assert.Equal(t, 0.0, totalOfItems(nil))
}

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, 80.0, applyDiscount(100, 20))
	assert.Equal(t, 100.0, applyDiscount(100, 0))
	assert.Equal(t, 0.0, applyDiscount(100, 100))
	// Arrondi au centime.
	assert.InDelta(t, 33.33, applyDiscount(49.99, 33.33), 0.001)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, round2(1.006))
	assert.Equal(t, 2.67, round2(2.666666))
}

func TestStockUpdatesOnePerItem(t *testing.T) {
	items := []models.CartItem{
		{Quantity: 2},
		{Quantity: 1},
		{Quantity: 4},
	}

	assert.Len(t, stockUpdates(items), 3)
}
