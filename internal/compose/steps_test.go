package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curate/internal/catalog"
	"github.com/mesh-intelligence/curate/pkg/types"
)

func threeSteps() types.StepList {
	return types.StepList{
		{Category: types.CategoryFoodDrink, Cursor: 0},
		{Category: types.CategoryMuseums, Cursor: 4, Locked: true},
		{Category: types.CategoryFoodDrink, Cursor: 1},
	}
}

func TestAddStep(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	c := New(cat)

	steps := types.StepList{{Category: types.CategoryParks}, {Category: types.CategoryMuseums}}
	out, err := c.AddStep(steps)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, types.Step{Category: types.CategoryLandmarks}, out[2])
	assert.Len(t, steps, 2, "input must not change")

	out, err = c.AddStep(out)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryFoodDrink, out[3].Category)

	out, err = c.AddStep(out)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryParks, out[4].Category, "all used falls back to first category")

	out, err = c.AddStep(nil)
	require.NoError(t, err)
	assert.Equal(t, types.StepList{{Category: types.CategoryParks}}, out)

	_, err = emptyComposer(t).AddStep(nil)
	assert.ErrorIs(t, err, types.ErrEmptyCatalog)
}

func TestRemoveStep(t *testing.T) {
	c := newTestComposer(t)
	steps := threeSteps()

	out, err := c.RemoveStep(steps, 1)
	require.NoError(t, err)
	assert.Len(t, out, len(steps)-1)
	assert.Equal(t, types.StepList{steps[0], steps[2]}, out)
	assert.Equal(t, threeSteps(), steps, "input must not change")

	for _, idx := range []int{-1, 3} {
		_, err = c.RemoveStep(steps, idx)
		assert.ErrorIs(t, err, types.ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestMoveUpDown(t *testing.T) {
	c := newTestComposer(t)
	steps := threeSteps()

	up, err := c.MoveUp(steps, 2)
	require.NoError(t, err)
	assert.Equal(t, types.StepList{steps[0], steps[2], steps[1]}, up)

	down, err := c.MoveDown(steps, 0)
	require.NoError(t, err)
	assert.Equal(t, types.StepList{steps[1], steps[0], steps[2]}, down)

	assert.Equal(t, threeSteps(), steps, "input must not change")

	_, err = c.MoveUp(steps, 3)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
	_, err = c.MoveDown(steps, -1)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestMoveAtBoundaryIsNoOp(t *testing.T) {
	c := newTestComposer(t)
	lists := []types.StepList{
		{{Category: types.CategoryMuseums}},
		threeSteps(),
	}
	for _, steps := range lists {
		up, err := c.MoveUp(steps, 0)
		require.NoError(t, err)
		assert.Equal(t, steps.Clone(), up)

		down, err := c.MoveDown(steps, len(steps)-1)
		require.NoError(t, err)
		assert.Equal(t, steps.Clone(), down)
	}
}

func TestMoveOnEmptyListIsOutOfRange(t *testing.T) {
	c := newTestComposer(t)
	empty := types.StepList{}

	for _, idx := range []int{-1, 0} {
		_, err := c.MoveUp(empty, idx)
		assert.ErrorIs(t, err, types.ErrIndexOutOfRange, "up %d", idx)
		_, err = c.MoveDown(empty, idx)
		assert.ErrorIs(t, err, types.ErrIndexOutOfRange, "down %d", idx)
	}
}

func TestToggleLockIsInvolution(t *testing.T) {
	c := newTestComposer(t)
	steps := threeSteps()

	for i := range steps {
		once, err := c.ToggleLock(steps, i)
		require.NoError(t, err)
		assert.Equal(t, !steps[i].Locked, once[i].Locked)

		twice, err := c.ToggleLock(once, i)
		require.NoError(t, err)
		assert.Equal(t, steps, twice)
	}

	_, err := c.ToggleLock(steps, 5)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestRegenerateWrapsCursor(t *testing.T) {
	c := newTestComposer(t)
	steps, err := c.Scratch()
	require.NoError(t, err)

	// Food & Drink has two candidates: resolved index follows cursor mod 2.
	wantCursor := []int{1, 2, 3}
	wantPlace := []types.Place{placeB, placeA, placeB}
	for i := range wantCursor {
		steps, err = c.Regenerate(steps, 0)
		require.NoError(t, err)
		assert.Equal(t, wantCursor[i], steps[0].Cursor)
		p, ok := c.Resolve(steps[0])
		require.True(t, ok)
		assert.Equal(t, wantPlace[i], p)
	}
}

func TestRegeneratePeriodIsSubsetLength(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	c := New(cat)

	for _, category := range cat.Categories() {
		n := cat.CategorySize(category)
		if n == 0 {
			continue
		}
		for k := 0; k < 5; k++ {
			a := types.StepList{{Category: category}}
			b := types.StepList{{Category: category}}
			for i := 0; i < k; i++ {
				a, err = c.Regenerate(a, 0)
				require.NoError(t, err)
			}
			for i := 0; i < k+n; i++ {
				b, err = c.Regenerate(b, 0)
				require.NoError(t, err)
			}
			pa, _ := c.Resolve(a[0])
			pb, _ := c.Resolve(b[0])
			assert.Equal(t, pa, pb, "%s k=%d", category, k)
		}
	}
}

func TestRegenerateKeepsLock(t *testing.T) {
	c := newTestComposer(t)
	steps := threeSteps()

	out, err := c.Regenerate(steps, 1)
	require.NoError(t, err)
	assert.True(t, out[1].Locked)
	assert.Equal(t, 5, out[1].Cursor)

	_, err = c.Regenerate(steps, 3)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestRegenerateAt(t *testing.T) {
	c := newTestComposer(t)
	steps := threeSteps()

	out, err := c.RegenerateAt(steps, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, out[2].Cursor)
	assert.False(t, out[2].Locked)
	assert.Equal(t, 1, steps[2].Cursor, "input must not change")

	_, err = c.RegenerateAt(steps, 2, -1)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
	_, err = c.RegenerateAt(steps, -1, 0)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestAssignPlace(t *testing.T) {
	c := newTestComposer(t)
	steps := threeSteps()

	out, err := c.AssignPlace(steps, 0, placeC)
	require.NoError(t, err)
	assert.Equal(t, types.Step{Category: types.CategoryMuseums, Cursor: 0, Locked: true}, out[0])

	out, err = c.AssignPlace(out, 1, placeB)
	require.NoError(t, err)
	assert.Equal(t, types.Step{Category: types.CategoryFoodDrink, Cursor: 1, Locked: true}, out[1])

	_, err = c.AssignPlace(steps, 0, types.Place{ID: 50, Category: types.CategoryMuseums})
	assert.ErrorIs(t, err, types.ErrPlaceNotFound)
	_, err = c.AssignPlace(steps, 9, placeA)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestRemoveThenMoveDownScenario(t *testing.T) {
	c := newTestComposer(t)
	steps, err := c.Scratch()
	require.NoError(t, err)

	steps, err = c.RemoveStep(steps, 1)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	out, err := c.MoveDown(steps, 0)
	require.NoError(t, err)
	assert.Equal(t, steps, out)
}
