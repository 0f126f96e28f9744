package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curate/pkg/types"
)

func saveExperience(t *testing.T, e *env, args ...string) string {
	t.Helper()
	var got composeResult
	e.runJSON(&got, append([]string{"compose", "--save"}, args...)...)
	require.True(t, got.Saved)
	require.NotEmpty(t, got.Experience.ExperienceID)
	return got.Experience.ExperienceID
}

func TestExperiences_SaveListShowDelete(t *testing.T) {
	e := newEnv(t)

	first := saveExperience(t, e, "--title", "Brunch run")
	second := saveExperience(t, e, "--place", "1", "--title", "Park day", "--date", "Sunday")

	var list []*types.Experience
	e.runJSON(&list, "experiences", "list")
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ExperienceID, "newest first")
	assert.Equal(t, first, list[1].ExperienceID)

	e.runJSON(&list, "experiences", "list", "--query", "forest")
	require.Len(t, list, 1)
	assert.Equal(t, "Park day", list[0].Title)

	out, errOut, code := e.run("experiences", "show", second)
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "Park day")
	assert.Contains(t, out, "Sunday at 7:00 PM")
	assert.Contains(t, out, "Forest Park")

	out, _, code = e.run("experiences", "share", second)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "# Park day")
	assert.Contains(t, out, "1. **7:00 PM** · [Forest Park]")

	out, _, code = e.run("experiences", "share", "--html", second)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "<h1>Park day</h1>")

	_, _, code = e.run("experiences", "delete", first)
	assert.Equal(t, exitSuccess, code)
	_, _, code = e.run("experiences", "show", first)
	assert.Equal(t, exitUserError, code)
	_, _, code = e.run("experiences", "delete", first)
	assert.Equal(t, exitUserError, code)

	e.runJSON(&list, "experiences", "list")
	assert.Len(t, list, 1)
}

func TestExperiences_EmptyList(t *testing.T) {
	e := newEnv(t)
	out, _, code := e.run("experiences", "list")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "No saved experiences.")

	var list []*types.Experience
	e.runJSON(&list, "experiences", "list")
	assert.Empty(t, list)
}

func TestExperiences_Picks(t *testing.T) {
	e := newEnv(t)
	var picks []*types.Experience
	e.runJSON(&picks, "experiences", "picks")
	require.Len(t, picks, 4)
	assert.Equal(t, "Foodie Tour", picks[0].Title)
	assert.Equal(t, []string{"Louie", "Brasserie by Niche", "801 Chophouse"}, picks[0].PlaceNames())
}
