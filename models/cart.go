package models

// CartLineItem is one configurable cake in a buyer's cart as submitted at
// checkout. DynamicSelections maps section key to the chosen option name.
type CartLineItem struct {
	ID                string            `json:"id"`
	DynamicSelections map[string]string `json:"dynamic_selections"`
	Reward            float64           `json:"reward"`
	Quantity          int               `json:"quantity"`
}
