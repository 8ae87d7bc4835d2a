package models

import "time"

type Order struct {
	ID           int         `json:"id"`
	OrderNumber  string      `json:"order_number"`
	Email        string      `json:"email"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderLine `json:"items"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderLine is a cart line frozen at checkout time, with the server-side
// computed total attached. The whole slice is stored as JSON on the order.
type OrderLine struct {
	Selections map[string]string `json:"selections"`
	Reward     float64           `json:"reward,omitempty"`
	Quantity   int               `json:"quantity"`
	LineTotal  float64           `json:"line_total"`
}
