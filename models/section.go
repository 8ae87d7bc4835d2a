package models

import "time"

type SectionMeta struct {
	ID          int       `json:"id"`
	Section     string    `json:"section"`
	Description string    `json:"description"`
	Required    bool      `json:"required"`
	SortOrder   *int      `json:"sort_order,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SectionOption struct {
	ID             int       `json:"id"`
	Section        string    `json:"section"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Description    string    `json:"description"`
	SortOrder      int       `json:"sort_order"`
	ImageURL       string    `json:"image_url"`
	LinkedRecipeID *int      `json:"linked_recipe_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DiameterMultiplier struct {
	ID           int       `json:"id"`
	SectionKey   string    `json:"section_key"`
	OptionID     int       `json:"option_id"`
	BaseOptionID *int      `json:"base_option_id,omitempty"`
	Multiplier   float64   `json:"multiplier"`
	CreatedAt    time.Time `json:"created_at"`
}
