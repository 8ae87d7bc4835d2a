package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineCostIndivisibleRoundsUpToWholePackages(t *testing.T) {
	egg := Ingredient{Name: "vajcia", Unit: "ks", Price: 3.00, PackageSize: 5, Indivisible: true}

	// 7 eggs from packs of 5 means buying 2 packs.
	assert.Equal(t, 6.00, LineCost(egg, 7))
	assert.Equal(t, 3.00, LineCost(egg, 5))
	assert.Equal(t, 3.00, LineCost(egg, 1))
}

func TestLineCostDivisibleAllowsFractionalPackages(t *testing.T) {
	flour := Ingredient{Name: "muka", Unit: "kg", Price: 2.50, PackageSize: 10}

	assert.Equal(t, 0.75, LineCost(flour, 3))
	assert.Equal(t, 2.50, LineCost(flour, 10))
}

func TestLineCostZeroPackageSizeDoesNotBlowUp(t *testing.T) {
	broken := Ingredient{Name: "med", Price: 4.00, PackageSize: 0}
	assert.Equal(t, 8.00, LineCost(broken, 2))
}

func TestRecipeTotalDoubleRounds(t *testing.T) {
	// Each line lands on 0.333 before rounding; the total must be the sum
	// of the rounded lines (0.99), not the rounded sum of raw lines (1.00).
	ing := Ingredient{Price: 0.333, PackageSize: 1}
	lines := []RecipeLine{
		{Ingredient: ing, Quantity: 1},
		{Ingredient: ing, Quantity: 1},
		{Ingredient: Ingredient{Price: 0.334, PackageSize: 1}, Quantity: 1},
	}

	assert.Equal(t, 0.99, RecipeTotal(lines))
}

func TestRecipeTotalEmpty(t *testing.T) {
	assert.Equal(t, 0.00, RecipeTotal(nil))
}
