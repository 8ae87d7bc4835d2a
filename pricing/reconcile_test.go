package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeSectionsUnionsBothRelations(t *testing.T) {
	meta := []SectionMeta{
		{Key: "velkost", Description: "Velkost torty", Required: true},
	}
	options := map[string][]Option{
		"velkost": {{ID: 1, Name: "20"}},
		"plnka":   {{ID: 2, Name: "Vanilka"}},
	}

	sections := MergeSections(meta, options, nil)
	assert.Len(t, sections, 2)
	assert.Equal(t, "velkost", sections[0].Key)
	assert.True(t, sections[0].Required)
	assert.Equal(t, "plnka", sections[1].Key, "section existing only as options still shows up")
	assert.False(t, sections[1].Required)
}

func TestMergeSectionsLabelFallsBackOnPlaceholders(t *testing.T) {
	meta := []SectionMeta{
		{Key: "velkost_torty", Description: "Popis"},
		{Key: "typ_cesta", Description: "pôpis"},
		{Key: "plnka", Description: "Krémová plnka"},
		{Key: "dekoracia", Description: "   "},
	}

	sections := MergeSections(meta, nil, nil)
	assert.Equal(t, "Velkost Torty", sections[0].Label)
	assert.Equal(t, "Typ Cesta", sections[1].Label, "accented placeholder still counts as placeholder")
	assert.Equal(t, "Krémová plnka", sections[2].Label)
	assert.Equal(t, "Dekoracia", sections[3].Label)
}

func TestMergeSectionsExplicitOrderWinsWhenComplete(t *testing.T) {
	one, two, three := 1, 2, 3
	meta := []SectionMeta{
		{Key: "plnka", SortOrder: &three},
		{Key: "velkost", SortOrder: &one},
		{Key: "torta", SortOrder: &two},
	}

	sections := MergeSections(meta, nil, []string{"plnka", "torta", "velkost"})
	keys := sectionKeys(sections)
	assert.Equal(t, []string{"velkost", "torta", "plnka"}, keys)
}

func TestMergeSectionsFallbackOrderWhenSortIncomplete(t *testing.T) {
	one := 1
	meta := []SectionMeta{
		{Key: "plnka", SortOrder: &one},
		{Key: "velkost"}, // older row, no sort value
	}
	options := map[string][]Option{"dekoracia": {{ID: 9, Name: "Ruze"}}}

	sections := MergeSections(meta, options, []string{"velkost", "zmazana_sekcia", "plnka"})
	keys := sectionKeys(sections)

	// Fallback filtered to live keys, unknown fallback entries dropped,
	// keys the fallback never saw appended at the end.
	assert.Equal(t, []string{"velkost", "plnka", "dekoracia"}, keys)
}

func TestMergeSectionsInsertionOrderLastResort(t *testing.T) {
	meta := []SectionMeta{{Key: "torta"}, {Key: "velkost"}}

	sections := MergeSections(meta, nil, nil)
	assert.Equal(t, []string{"torta", "velkost"}, sectionKeys(sections))
}

func TestMergeSectionsSortsOptions(t *testing.T) {
	options := map[string][]Option{
		"plnka": {
			{ID: 1, Name: "Vanilka", SortOrder: 2},
			{ID: 2, Name: "Cokolada", SortOrder: 1},
			{ID: 3, Name: "Orech", SortOrder: 2},
		},
	}

	sections := MergeSections(nil, options, nil)
	names := []string{}
	for _, o := range sections[0].Options {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"Cokolada", "Vanilka", "Orech"}, names, "ties keep insertion order")
}

func TestRepairSectionKey(t *testing.T) {
	known := []string{"velkost", "plnka", "torta"}

	assert.Equal(t, "velkost", RepairSectionKey("velkost", known))
	assert.Equal(t, "velkost", RepairSectionKey("velkosti", known))
	assert.Equal(t, "plnka", RepairSectionKey("plnk", known))
	assert.Equal(t, "rozmer_produktu", RepairSectionKey("rozmer_produktu", known),
		"distance above 2 keeps the key untouched")
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("velkost", "velkost"))
	assert.Equal(t, 1, levenshtein("velkost", "velkosti"))
	assert.Equal(t, 2, levenshtein("torta", "tory"))
	assert.Equal(t, 5, levenshtein("", "plnka"))
}

func sectionKeys(sections []Section) []string {
	keys := make([]string, 0, len(sections))
	for _, s := range sections {
		keys = append(keys, s.Key)
	}
	return keys
}
