package catalog

import (
	"strings"

	"github.com/mesh-intelligence/curate/internal/textfold"
	"github.com/mesh-intelligence/curate/pkg/types"
)

// Query narrows the catalog for the discover view. Zero fields match all.
type Query struct {
	// Text matches the name or the description.
	Text string
	// Category restricts to one category; "" and CategoryAll disable it.
	Category string
	// Neighborhood must appear in the address.
	Neighborhood string
}

// Search returns the places whose name, category or address contains query,
// ignoring case. A blank query returns every place.
func (c *Catalog) Search(query string) []types.Place {
	needle := textfold.Fold(strings.TrimSpace(query))
	if needle == "" {
		return c.Places()
	}
	var out []types.Place
	for _, p := range c.places {
		if textfold.Contains(p.Name, needle) ||
			textfold.Contains(p.Category, needle) ||
			textfold.Contains(p.Address, needle) {
			out = append(out, p)
		}
	}
	return out
}

// Filter applies q to the catalog, preserving catalog order.
func (c *Catalog) Filter(q Query) []types.Place {
	text := textfold.Fold(strings.TrimSpace(q.Text))
	hood := textfold.Fold(strings.TrimSpace(q.Neighborhood))
	category := strings.TrimSpace(q.Category)
	if category == types.CategoryAll {
		category = ""
	}

	var out []types.Place
	for _, p := range c.places {
		if text != "" && !textfold.Contains(p.Name, text) && !textfold.Contains(p.Description, text) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if hood != "" && !textfold.Contains(p.Address, hood) {
			continue
		}
		out = append(out, p)
	}
	return out
}
