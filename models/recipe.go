package models

import "time"

type Recipe struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalCost   float64   `json:"total_cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Ingredient struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	Price       float64   `json:"price"`
	PackageSize float64   `json:"package_size"`
	Indivisible bool      `json:"indivisible"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecipeIngredient struct {
	ID             int     `json:"id"`
	RecipeID       int     `json:"recipe_id"`
	IngredientID   int     `json:"ingredient_id"`
	Quantity       float64 `json:"quantity"`
	IngredientName string  `json:"ingredient_name,omitempty"`
	Unit           string  `json:"unit,omitempty"`
	Cost           float64 `json:"cost"`
}
