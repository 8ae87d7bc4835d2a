package pricing

// Option is one selectable choice inside a section. ID is zero for rows
// that have not been persisted yet.
type Option struct {
	ID             int
	Name           string
	Price          float64
	SortOrder      int
	LinkedRecipeID *int
}

type Section struct {
	Key      string
	Label    string
	Required bool
	Options  []Option
}

// Multiplier is one diameter_multipliers row. Rows exist only for sections
// toggled into diameter management.
type Multiplier struct {
	SectionKey   string
	OptionID     int
	BaseOptionID *int
	Value        float64
}

// LineItem is one configurable cake in a cart. Selections maps a section
// key to the chosen option name; names survive option-id churn across
// admin saves, ids do not.
type LineItem struct {
	ID         string
	Selections map[string]string
	Reward     float64
	Quantity   int
}
