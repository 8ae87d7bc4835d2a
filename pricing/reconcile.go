package pricing

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SectionMeta is one section_meta row. SortOrder is nil either when the
// row predates the column or when the schema lacks it entirely.
type SectionMeta struct {
	Key         string
	Description string
	Required    bool
	SortOrder   *int
}

// Placeholder descriptions left behind by earlier admin tooling. A label
// matching one of these (case- and accent-insensitive) is treated the same
// as an empty description.
var placeholderLabels = map[string]bool{
	"popis":         true,
	"description":   true,
	"nazov sekcie":  true,
	"nova sekcia":   true,
	"doplnit popis": true,
	"n/a":           true,
	"-":             true,
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldLabel(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// MergeSections joins section metadata and section options into one
// ordered section list. Either side may be missing rows: a section exists
// as soon as it has metadata or at least one option.
//
// Order preference: the explicit sort column when every section carries
// one, else the persisted fallback order (unknown keys dropped, new keys
// appended), else first-seen order.
func MergeSections(meta []SectionMeta, options map[string][]Option, fallbackOrder []string) []Section {
	metaByKey := make(map[string]SectionMeta, len(meta))
	var keys []string
	seen := map[string]bool{}

	for _, m := range meta {
		metaByKey[m.Key] = m
		if !seen[m.Key] {
			seen[m.Key] = true
			keys = append(keys, m.Key)
		}
	}

	optionKeys := make([]string, 0, len(options))
	for key := range options {
		optionKeys = append(optionKeys, key)
	}
	sort.Strings(optionKeys)
	for _, key := range optionKeys {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	keys = orderKeys(keys, metaByKey, fallbackOrder)

	sections := make([]Section, 0, len(keys))
	for _, key := range keys {
		m := metaByKey[key]

		opts := append([]Option(nil), options[key]...)
		sort.SliceStable(opts, func(i, j int) bool {
			return opts[i].SortOrder < opts[j].SortOrder
		})

		sections = append(sections, Section{
			Key:      key,
			Label:    resolveLabel(key, m.Description),
			Required: m.Required,
			Options:  opts,
		})
	}
	return sections
}

func orderKeys(keys []string, metaByKey map[string]SectionMeta, fallbackOrder []string) []string {
	explicit := len(keys) > 0
	for _, key := range keys {
		m, ok := metaByKey[key]
		if !ok || m.SortOrder == nil {
			explicit = false
			break
		}
	}
	if explicit {
		ordered := append([]string(nil), keys...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return *metaByKey[ordered[i]].SortOrder < *metaByKey[ordered[j]].SortOrder
		})
		return ordered
	}

	if len(fallbackOrder) > 0 {
		existing := make(map[string]bool, len(keys))
		for _, key := range keys {
			existing[key] = true
		}
		var ordered []string
		used := map[string]bool{}
		for _, key := range fallbackOrder {
			if existing[key] && !used[key] {
				used[key] = true
				ordered = append(ordered, key)
			}
		}
		for _, key := range keys {
			if !used[key] {
				ordered = append(ordered, key)
			}
		}
		return ordered
	}

	return keys
}

func resolveLabel(key, description string) string {
	desc := strings.TrimSpace(description)
	if desc != "" && !placeholderLabels[foldLabel(desc)] {
		return desc
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RepairSectionKey maps a multiplier row's recorded section key onto the
// closest known key when they drifted apart (section renamed in one
// relation but not the other). Distance above 2 means no plausible match;
// the key is returned untouched and will not resolve downstream.
func RepairSectionKey(key string, known []string) string {
	best := key
	bestDist := 3
	for _, candidate := range known {
		if candidate == key {
			return key
		}
		if d := levenshtein(key, candidate); d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
