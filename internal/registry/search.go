package registry

import (
	"sort"
	"strings"
)

// Score weights for catalog search, highest signal first.
const (
	scoreExactName = 100 // query contains the exact tool name
	scoreWordMatch = 10  // per-word overlap with name + description
)

// Search matches catalog definitions against a free-text query and returns
// them ordered by descending relevance. Ties break alphabetically so output
// is stable regardless of map iteration order.
func Search(catalog map[string]Definition, query string) []Definition {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(catalog) == 0 || query == "" {
		return nil
	}

	queryWords := tokenize(query)

	type scored struct {
		def   Definition
		score int
	}

	results := make([]scored, 0, len(catalog))
	for _, def := range catalog {
		text := strings.ToLower(def.Name + " " + def.Description)
		score := 0

		nameLower := strings.ToLower(def.Name)
		if strings.Contains(query, nameLower) {
			score += scoreExactName
		}

		for _, word := range queryWords {
			if len(word) >= 3 && strings.Contains(text, word) {
				score += scoreWordMatch
			}
		}

		if score > 0 {
			results = append(results, scored{def, score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].def.Name < results[j].def.Name
	})

	out := make([]Definition, 0, len(results))
	for _, r := range results {
		out = append(out, r.def)
	}
	return out
}

// tokenize splits a query into lowercase word tokens. Underscores and
// hyphens stay inside tokens so tool names match whole.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		isLowerAlpha := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		return !(isLowerAlpha || isDigit || r == '_' || r == '-')
	})
}
