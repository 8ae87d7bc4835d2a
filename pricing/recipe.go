package pricing

import "github.com/shopspring/decimal"

// Ingredient pricing data: Price buys one package of PackageSize units.
// Indivisible ingredients (eggs, gelatine sheets) can only be bought in
// whole packages.
type Ingredient struct {
	ID          int
	Name        string
	Unit        string
	Price       float64
	PackageSize float64
	Indivisible bool
}

type RecipeLine struct {
	Ingredient Ingredient
	Quantity   float64
}

// LineCost prices one ingredient line, rounded to 2 decimals.
// Indivisible: ceil(qty/packageSize) whole packages at full price.
// Divisible: proportional share of the package price.
func LineCost(ing Ingredient, quantity float64) float64 {
	packageSize := ing.PackageSize
	if packageSize <= 0 {
		packageSize = 1
	}

	price := decimal.NewFromFloat(ing.Price)
	qty := decimal.NewFromFloat(quantity)
	size := decimal.NewFromFloat(packageSize)

	var cost decimal.Decimal
	if ing.Indivisible {
		cost = qty.Div(size).Ceil().Mul(price)
	} else {
		cost = price.Mul(qty).Div(size)
	}

	v, _ := cost.Round(2).Float64()
	return v
}

// RecipeTotal sums already-rounded line costs and rounds the sum to
// 2 decimals again. The double rounding is load-bearing: stored totals
// were produced this way and re-deriving them must match to the cent.
func RecipeTotal(lines []RecipeLine) float64 {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(decimal.NewFromFloat(LineCost(line.Ingredient, line.Quantity)))
	}
	v, _ := sum.Round(2).Float64()
	return v
}
