package indexer

import (
	"strings"

	"github.com/sandevgo/scribebot/internal/core"
)

// Keyword lists are a deliberate heuristic, not NLP. A message may land in
// several categories, or none.
var categoryKeywords = map[core.Category][]string{
	core.CategoryBug: {
		"bug", "crash", "broken", "doesn't work", "not working",
		"error", "glitch", "freez", "stuck",
	},
	core.CategoryFeature: {
		"feature", "suggestion", "please add", "would be nice",
		"request", "idea:", "could you add",
	},
	core.CategorySolution: {
		"solved", "solution", "workaround", "figured it out",
		"the trick is", "resolved",
	},
}

// categoryOrder keeps classification output deterministic.
var categoryOrder = []core.Category{
	core.CategoryBug,
	core.CategoryFeature,
	core.CategorySolution,
}

// Classify maps message text to zero or more categories by case-insensitive
// substring match. Pure and total: no error path.
func Classify(text string) []core.Category {
	lowered := strings.ToLower(text)

	var matched []core.Category
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lowered, kw) {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched
}
