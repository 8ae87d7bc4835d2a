package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Snapshot is a read-only view of the catalog used for price computation.
// Build one per request (or per cache fill); all methods are pure lookups.
type Snapshot struct {
	Sections []Section

	// GlobalSelections holds the storefront's current pick per section,
	// independent of any particular cart line. A line item's own selection
	// always wins over this.
	GlobalSelections map[string]int

	multipliers map[string]float64
	multKeys    []string
	byOptionID  map[int]float64
	managedKeys []string
	recipeNames map[string]bool
}

// NewSnapshot indexes sections, multiplier rows and recipe names for
// lookup. Multiplier section keys that do not match any known section are
// repaired by edit distance (<= 2) before indexing; unrepairable keys are
// kept as-is and simply never resolve.
func NewSnapshot(sections []Section, multipliers []Multiplier, recipeNames []string) *Snapshot {
	s := &Snapshot{
		Sections:         sections,
		GlobalSelections: map[string]int{},
		multipliers:      make(map[string]float64, len(multipliers)),
		byOptionID:       make(map[int]float64, len(multipliers)),
		recipeNames:      make(map[string]bool, len(recipeNames)),
	}

	known := make([]string, 0, len(sections))
	for _, sec := range sections {
		known = append(known, sec.Key)
	}

	managed := map[string]bool{}
	for _, m := range multipliers {
		key := RepairSectionKey(m.SectionKey, known)
		s.multipliers[fmt.Sprintf("%s:%d", key, m.OptionID)] = m.Value
		s.byOptionID[m.OptionID] = m.Value
		managed[key] = true
	}
	for key := range managed {
		s.managedKeys = append(s.managedKeys, key)
	}
	sort.Strings(s.managedKeys)

	for key := range s.multipliers {
		s.multKeys = append(s.multKeys, key)
	}
	sort.Strings(s.multKeys)

	for _, name := range recipeNames {
		s.recipeNames[name] = true
	}
	return s
}

func (s *Snapshot) section(key string) *Section {
	for i := range s.Sections {
		if s.Sections[i].Key == key {
			return &s.Sections[i]
		}
	}
	return nil
}

func (s *Snapshot) optionByName(sectionKey, name string) *Option {
	sec := s.section(sectionKey)
	if sec == nil {
		return nil
	}
	for i := range sec.Options {
		if sec.Options[i].Name == name {
			return &sec.Options[i]
		}
	}
	return nil
}

// SetGlobalSelection records the storefront's current pick for a section
// by option name. Unknown sections or options are ignored.
func (s *Snapshot) SetGlobalSelection(sectionKey, optionName string) {
	if opt := s.optionByName(sectionKey, optionName); opt != nil {
		s.GlobalSelections[sectionKey] = opt.ID
	}
}

// IsLinked reports whether an option's price derives from a recipe, either
// through linked_recipe_id or the legacy name match against recipe names.
// The name match is deliberately scope-free: two options in different
// sections sharing a recipe's name are both linked.
func (s *Snapshot) IsLinked(opt Option) bool {
	if opt.LinkedRecipeID != nil {
		return true
	}
	return s.recipeNames[opt.Name]
}

// ResolveMultiplier returns the scale factor for targetKey given the
// selections on item (may be nil). Managed sections are walked in sorted
// key order, the target's own section excluded; the first one whose
// selected option yields a multiplier wins, so factors never compound.
// No match means 1.0.
func (s *Snapshot) ResolveMultiplier(targetKey string, item *LineItem) float64 {
	for _, managed := range s.managedKeys {
		if managed == targetKey {
			continue
		}

		optionID := 0
		if item != nil {
			if name, ok := item.Selections[managed]; ok && name != "" {
				if opt := s.optionByName(managed, name); opt != nil {
					optionID = opt.ID
				}
			}
		}
		if optionID == 0 {
			optionID = s.GlobalSelections[managed]
		}
		if optionID == 0 {
			continue
		}

		if v, ok := s.multipliers[fmt.Sprintf("%s:%d", managed, optionID)]; ok {
			return v
		}
		// The scan walks keys in sorted order so two orphan rows sharing
		// an option id always resolve to the same one.
		suffix := fmt.Sprintf(":%d", optionID)
		for _, key := range s.multKeys {
			if strings.HasSuffix(key, suffix) {
				return s.multipliers[key]
			}
		}
		if v, ok := s.byOptionID[optionID]; ok {
			return v
		}
	}
	return 1.0
}

// LineTotal computes the price of one cart line against the given section
// snapshot (nil means the snapshot's own sections; callers that just wrote
// an in-memory update can pass it directly to avoid a stale read).
// Selections pointing at vanished sections or options contribute nothing.
// Only linked options are scaled. No currency rounding happens here.
func (s *Snapshot) LineTotal(item *LineItem, sections []Section) float64 {
	if sections == nil {
		sections = s.Sections
	}

	total := 0.0
	for _, sec := range sections {
		name, ok := item.Selections[sec.Key]
		if !ok || name == "" {
			continue
		}
		var opt *Option
		for i := range sec.Options {
			if sec.Options[i].Name == name {
				opt = &sec.Options[i]
				break
			}
		}
		if opt == nil {
			continue
		}

		price := opt.Price
		if s.IsLinked(*opt) {
			price *= s.ResolveMultiplier(sec.Key, item)
		}
		total += price
	}

	total += item.Reward

	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}
	return total * float64(qty)
}

// MissingRequired returns the keys of required sections the item has no
// selection for, in section order. Checkout rejects the cart when any line
// returns a non-empty result.
func (s *Snapshot) MissingRequired(item *LineItem) []string {
	var missing []string
	for _, sec := range s.Sections {
		if !sec.Required {
			continue
		}
		if name := item.Selections[sec.Key]; name == "" {
			missing = append(missing, sec.Key)
		}
	}
	return missing
}

// BaseMultipliers recomputes a managed section's multipliers after the
// admin picks a base option: (size/baseSize)^2 with sizes parsed from the
// option names, rounded to 1 decimal. Non-numeric names (and a non-numeric
// base) fall back to 1.0. The base itself is exactly 1.0.
func BaseMultipliers(options []Option, baseOptionID int) map[int]float64 {
	baseSize := 0.0
	for _, opt := range options {
		if opt.ID == baseOptionID {
			baseSize, _ = strconv.ParseFloat(strings.TrimSpace(opt.Name), 64)
		}
	}

	out := make(map[int]float64, len(options))
	for _, opt := range options {
		if opt.ID == baseOptionID {
			out[opt.ID] = 1.0
			continue
		}
		size, err := strconv.ParseFloat(strings.TrimSpace(opt.Name), 64)
		if err != nil || baseSize <= 0 {
			out[opt.ID] = 1.0
			continue
		}
		ratio := decimal.NewFromFloat(size / baseSize)
		v, _ := ratio.Mul(ratio).Round(1).Float64()
		out[opt.ID] = v
	}
	return out
}
