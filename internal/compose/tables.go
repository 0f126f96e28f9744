package compose

import (
	"strings"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// pairings maps an anchor category to the categories suggested after it.
var pairings = map[string][2]string{
	types.CategoryFoodDrink: {types.CategoryMuseums, types.CategoryParks},
	types.CategoryMuseums:   {types.CategoryFoodDrink, types.CategoryMuseums},
	types.CategoryParks:     {types.CategoryFoodDrink, types.CategoryMuseums},
}

// promptRule maps prompt keywords to the categories of the suggested steps.
type promptRule struct {
	keywords   []string
	categories []string
}

// promptRules are tried in order; the first rule with a keyword contained
// in the prompt wins.
var promptRules = []promptRule{
	{
		keywords:   []string{"food", "dining"},
		categories: []string{types.CategoryFoodDrink, types.CategoryFoodDrink},
	},
	{
		keywords:   []string{"museum", "art"},
		categories: []string{types.CategoryMuseums, types.CategoryFoodDrink},
	},
	{
		keywords:   []string{"nature", "park"},
		categories: []string{types.CategoryParks, types.CategoryFoodDrink},
	},
}

// defaultPromptCategories is used when no rule matches.
var defaultPromptCategories = []string{
	types.CategoryMuseums,
	types.CategoryFoodDrink,
	types.CategoryParks,
}

// scratchCategories seed a session started from nothing.
var scratchCategories = []string{
	types.CategoryFoodDrink,
	types.CategoryMuseums,
}

// classifyPrompt returns the step categories suggested for prompt.
func classifyPrompt(prompt string) []string {
	lower := strings.ToLower(prompt)
	for _, rule := range promptRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.categories
			}
		}
	}
	return defaultPromptCategories
}
