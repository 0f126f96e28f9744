package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curate/pkg/types"
)

func placeIDs(places []types.Place) []int {
	ids := make([]int, len(places))
	for i, p := range places {
		ids[i] = p.ID
	}
	return ids
}

func TestSearch(t *testing.T) {
	c, err := New(samplePlaces(), nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"blank returns all", "  ", []int{1, 2, 3, 4}},
		{"name match ignores case", "LOUIE", []int{3}},
		{"category match", "parks", []int{1, 4}},
		{"address match", "clayton", []int{3}},
		{"zip code", "63110", []int{2, 4}},
		{"description is not searched", "pizza", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placeIDs(c.Search(tt.query)))
		})
	}
}

func TestFilter(t *testing.T) {
	c, err := New(samplePlaces(), nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{"zero query returns all", Query{}, []int{1, 2, 3, 4}},
		{"All disables category", Query{Category: types.CategoryAll}, []int{1, 2, 3, 4}},
		{"category", Query{Category: types.CategoryParks}, []int{1, 4}},
		{"text hits description", Query{Text: "Pizza"}, []int{3}},
		{"text hits name", Query{Text: "zoo"}, []int{4}},
		{"neighborhood", Query{Neighborhood: "Clayton"}, []int{3}},
		{"combined", Query{Category: types.CategoryParks, Neighborhood: "Government"}, []int{4}},
		{"no match", Query{Text: "sushi"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placeIDs(c.Filter(tt.query)))
		})
	}
}
