package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required,min=3"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type OptionInput struct {
	ID             *int    `json:"id"`
	Name           string  `json:"name" binding:"required"`
	Price          float64 `json:"price"`
	Description    string  `json:"description"`
	SortOrder      int     `json:"sort_order"`
	LinkedRecipeID *int    `json:"linked_recipe_id"`
}

type SaveSectionRequest struct {
	Section     string        `json:"section" binding:"required"`
	Description string        `json:"description"`
	Required    bool          `json:"required"`
	Options     []OptionInput `json:"options"`
}

type ReorderSectionsRequest struct {
	Order []string `json:"order" binding:"required,min=1"`
}

type ToggleDiameterRequest struct {
	Enabled bool `json:"enabled"`
}

type SetBaseOptionRequest struct {
	BaseOptionID int `json:"base_option_id" binding:"required"`
}

type SetMultiplierRequest struct {
	OptionID   int     `json:"option_id" binding:"required"`
	Multiplier float64 `json:"multiplier" binding:"required,gt=0"`
}

type RecipeRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
}

type IngredientRequest struct {
	Name        string  `json:"name" binding:"required"`
	Unit        string  `json:"unit" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	PackageSize float64 `json:"package_size" binding:"required,gt=0"`
	Indivisible bool    `json:"indivisible"`
}

type RecipeIngredientRequest struct {
	IngredientID int     `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
}

type QuoteRequest struct {
	Items            []CartLineItem    `json:"items" binding:"required,min=1"`
	GlobalSelections map[string]string `json:"global_selections"`
}

type CheckoutRequest struct {
	CustomerEmail string         `json:"customer_email" binding:"required,email"`
	CustomerName  string         `json:"customer_name" binding:"required,min=2"`
	Items         []CartLineItem `json:"items" binding:"required,min=1"`
	PDFBase64     string         `json:"pdf_base64"`
	PDFFilename   string         `json:"pdf_filename"`
}

type VisitRequest struct {
	Path string `json:"path" binding:"required"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type PaginationLinks struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

type HATEOASResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data"`
	Meta    PaginationMeta  `json:"meta"`
	Links   PaginationLinks `json:"links"`
}
