package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sizeSections() []Section {
	return []Section{
		{
			Key: "velkost", Label: "Velkost", Required: true,
			Options: []Option{
				{ID: 1, Name: "20", Price: 0},
				{ID: 2, Name: "25", Price: 0},
			},
		},
		{
			Key: "torta", Label: "Torta", Required: true,
			Options: []Option{
				{ID: 10, Name: "Cheesecake", Price: 10.00, LinkedRecipeID: intPtr(7)},
				{ID: 11, Name: "Medovnik", Price: 8.00},
			},
		},
	}
}

func TestResolveMultiplierPrefersItemSelectionOverGlobal(t *testing.T) {
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkost", OptionID: 1, Value: 1.0},
		{SectionKey: "velkost", OptionID: 2, Value: 1.6},
	}, nil)
	snap.GlobalSelections["velkost"] = 1

	item := &LineItem{Selections: map[string]string{"velkost": "25"}}
	assert.Equal(t, 1.6, snap.ResolveMultiplier("torta", item))

	// No item selection: the global one applies.
	assert.Equal(t, 1.0, snap.ResolveMultiplier("torta", &LineItem{Selections: map[string]string{}}))
	assert.Equal(t, 1.0, snap.ResolveMultiplier("torta", nil))
}

func TestResolveMultiplierNeverUsesOwnSection(t *testing.T) {
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkost", OptionID: 2, Value: 1.6},
	}, nil)

	item := &LineItem{Selections: map[string]string{"velkost": "25"}}
	assert.Equal(t, 1.0, snap.ResolveMultiplier("velkost", item))
}

func TestResolveMultiplierRepairsDriftedKeys(t *testing.T) {
	// Row recorded under a key one edit away from velkost: repaired at
	// load time, exact lookup works again.
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkosti", OptionID: 2, Value: 2.5},
	}, nil)

	item := &LineItem{Selections: map[string]string{"velkost": "25"}}
	assert.Equal(t, 2.5, snap.ResolveMultiplier("torta", item))
}

func TestResolveMultiplierSuffixFallback(t *testing.T) {
	// velkost is managed but lost its row for option 2; an orphan row
	// under a long-dead section key still ends in ":2" and rescues the
	// lookup.
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkost", OptionID: 1, Value: 1.0},
		{SectionKey: "zrusena_sekcia_rozmerov", OptionID: 2, Value: 2.5},
	}, nil)

	item := &LineItem{Selections: map[string]string{"velkost": "25"}}
	assert.Equal(t, 2.5, snap.ResolveMultiplier("torta", item))
}

func TestResolveMultiplierSuffixFallbackIsDeterministic(t *testing.T) {
	// Two orphan rows under unrepairable dead keys share option id 2. The
	// scan must pick the same row every time (smallest key wins), so
	// repricing an unchanged cart never flaps.
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkost", OptionID: 1, Value: 1.0},
		{SectionKey: "zzz_dead_key_aaaa", OptionID: 2, Value: 2.5},
		{SectionKey: "qqq_dead_key_bbbb", OptionID: 2, Value: 3.5},
	}, nil)

	item := &LineItem{Quantity: 1, Selections: map[string]string{
		"torta":   "Cheesecake",
		"velkost": "25",
	}}

	first := snap.LineTotal(item, nil)
	assert.Equal(t, 35.00, first)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, snap.LineTotal(item, nil))
		assert.Equal(t, 3.5, snap.ResolveMultiplier("torta", item))
	}
}

func TestSetGlobalSelection(t *testing.T) {
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkost", OptionID: 2, Value: 1.6},
	}, nil)

	snap.SetGlobalSelection("velkost", "25")
	assert.Equal(t, 1.6, snap.ResolveMultiplier("torta", nil))

	// Unknown names and sections leave the selection untouched.
	snap.SetGlobalSelection("velkost", "30")
	snap.SetGlobalSelection("neexistuje", "25")
	assert.Equal(t, 1.6, snap.ResolveMultiplier("torta", nil))
}

func TestMultipliersDoNotCompound(t *testing.T) {
	sections := append(sizeSections(), Section{
		Key: "poschodie", Label: "Poschodie",
		Options: []Option{{ID: 20, Name: "2"}, {ID: 21, Name: "3"}},
	})
	snap := NewSnapshot(sections, []Multiplier{
		{SectionKey: "poschodie", OptionID: 20, Value: 2.0},
		{SectionKey: "velkost", OptionID: 2, Value: 3.0},
	}, nil)

	item := &LineItem{
		Quantity: 1,
		Selections: map[string]string{
			"torta":     "Cheesecake",
			"velkost":   "25",
			"poschodie": "2",
		},
	}

	// Managed sections enumerate in sorted order (poschodie before
	// velkost); exactly one factor applies, 10*2 and never 10*2*3.
	assert.Equal(t, 2.0, snap.ResolveMultiplier("torta", item))
	assert.Equal(t, 20.00, snap.LineTotal(item, nil))
}

func TestLineTotalScalesOnlyLinkedOptions(t *testing.T) {
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkost", OptionID: 2, Value: 1.6},
	}, nil)

	// Medovnik has no linked recipe and no name match: base price only.
	item := &LineItem{Quantity: 1, Selections: map[string]string{
		"torta":   "Medovnik",
		"velkost": "25",
	}}
	assert.Equal(t, 8.00, snap.LineTotal(item, nil))
}

func TestLineTotalLegacyNameLink(t *testing.T) {
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkost", OptionID: 2, Value: 1.5},
	}, []string{"Medovnik"})

	item := &LineItem{Quantity: 1, Selections: map[string]string{
		"torta":   "Medovnik",
		"velkost": "25",
	}}
	assert.Equal(t, 12.00, snap.LineTotal(item, nil))
}

func TestLineTotalSkipsVanishedSectionsAndOptions(t *testing.T) {
	snap := NewSnapshot(sizeSections(), nil, nil)

	item := &LineItem{Quantity: 1, Selections: map[string]string{
		"torta":     "Cheesecake",
		"dekoracia": "Ruze",       // section deleted after selection
		"velkost":   "30",         // option renamed away
	}}

	assert.NotPanics(t, func() { snap.LineTotal(item, nil) })
	assert.Equal(t, 10.00, snap.LineTotal(item, nil))
}

func TestLineTotalRewardAndQuantity(t *testing.T) {
	snap := NewSnapshot(sizeSections(), nil, nil)

	item := &LineItem{
		Quantity:   2,
		Reward:     1.50,
		Selections: map[string]string{"torta": "Medovnik"},
	}
	assert.Equal(t, 19.00, snap.LineTotal(item, nil))

	item.Quantity = 0
	assert.Equal(t, 9.50, snap.LineTotal(item, nil), "quantity below 1 counts as a single unit")
}

func TestLineTotalIsIdempotent(t *testing.T) {
	snap := NewSnapshot(sizeSections(), []Multiplier{
		{SectionKey: "velkost", OptionID: 2, Value: 1.6},
	}, nil)

	item := &LineItem{Quantity: 3, Reward: 0.7, Selections: map[string]string{
		"torta":   "Cheesecake",
		"velkost": "25",
	}}

	first := snap.LineTotal(item, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, snap.LineTotal(item, nil))
	}
}

func TestLineTotalAgainstPassedInSections(t *testing.T) {
	snap := NewSnapshot(sizeSections(), nil, nil)

	updated := sizeSections()
	updated[1].Options[1].Price = 9.50

	item := &LineItem{Quantity: 1, Selections: map[string]string{"torta": "Medovnik"}}
	assert.Equal(t, 9.50, snap.LineTotal(item, updated))
	assert.Equal(t, 8.00, snap.LineTotal(item, nil))
}

func TestMissingRequired(t *testing.T) {
	snap := NewSnapshot(sizeSections(), nil, nil)

	complete := &LineItem{Selections: map[string]string{"velkost": "20", "torta": "Medovnik"}}
	assert.Empty(t, snap.MissingRequired(complete))

	partial := &LineItem{Selections: map[string]string{"torta": "Medovnik"}}
	assert.Equal(t, []string{"velkost"}, snap.MissingRequired(partial))
}

func TestBaseMultipliersAreaScaling(t *testing.T) {
	options := []Option{
		{ID: 1, Name: "20"},
		{ID: 2, Name: "25"},
		{ID: 3, Name: "mini"},
	}

	m := BaseMultipliers(options, 1)
	assert.Equal(t, 1.0, m[1])
	assert.Equal(t, 1.6, m[2], "(25/20)^2 = 1.5625 rounds to 1.6")
	assert.Equal(t, 1.0, m[3], "non-numeric names stay at 1.0")
}

func TestBaseMultipliersNonNumericBase(t *testing.T) {
	options := []Option{
		{ID: 1, Name: "standard"},
		{ID: 2, Name: "25"},
	}
	m := BaseMultipliers(options, 1)
	assert.Equal(t, 1.0, m[1])
	assert.Equal(t, 1.0, m[2])
}

func TestSizeScenarioEndToEnd(t *testing.T) {
	// Admin sets base "20" on velkost, Cheesecake is recipe-priced at
	// 10.00, buyer picks the 25 size: 10.00 * 1.6 = 16.00.
	sections := sizeSections()
	computed := BaseMultipliers(sections[0].Options, 1)

	var rows []Multiplier
	for id, v := range computed {
		rows = append(rows, Multiplier{SectionKey: "velkost", OptionID: id, BaseOptionID: intPtr(1), Value: v})
	}

	snap := NewSnapshot(sections, rows, nil)
	item := &LineItem{Quantity: 1, Selections: map[string]string{
		"velkost": "25",
		"torta":   "Cheesecake",
	}}

	require.Equal(t, 1.6, snap.ResolveMultiplier("torta", item))
	assert.Equal(t, 16.00, snap.LineTotal(item, nil))
}
