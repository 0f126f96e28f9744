package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curate/pkg/types"
)

func names(places []types.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.Name
	}
	return out
}

func TestPlacesList(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"category", []string{"--category", "Museums"}, []string{"Saint Louis Art Museum", "The City Museum", "Science Center"}},
		{"all category", []string{"--category", "All", "--query", "zoo"}, []string{"Saint Louis Zoo"}},
		{"no match", []string{"--query", "aquarium"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []types.Place
			e.runJSON(&got, append([]string{"places", "list"}, tt.args...)...)
			assert.Equal(t, tt.want, names(got))
		})
	}

	_, _, code := e.run("places", "list", "--category", "Nightclubs")
	assert.Equal(t, exitUserError, code)
}

func TestPlacesSearch(t *testing.T) {
	e := newEnv(t)
	var got []types.Place
	e.runJSON(&got, "places", "search", "MUSEUM")
	assert.Contains(t, names(got), "Saint Louis Art Museum")
	for _, p := range got {
		assert.Equal(t, types.CategoryMuseums, p.Category)
	}
}

func TestPlacesShow(t *testing.T) {
	e := newEnv(t)
	out, _, code := e.run("places", "show", "12")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "The Cathedral Basilica of St. Louis")
	assert.Contains(t, out, "Buildings & Monuments")

	_, _, code = e.run("places", "show", "99")
	assert.Equal(t, exitUserError, code)
	_, _, code = e.run("places", "show", "abc")
	assert.Equal(t, exitUserError, code)
}
