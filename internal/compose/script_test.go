package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curate/internal/catalog"
	"github.com/mesh-intelligence/curate/pkg/types"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		in   string
		want Op
	}{
		{"add", Op{Name: OpAdd}},
		{" ADD ", Op{Name: OpAdd}},
		{"remove:2", Op{Name: OpRemove, Step: 2}},
		{"up:1", Op{Name: OpUp, Step: 1}},
		{"down:3", Op{Name: OpDown, Step: 3}},
		{"lock:1", Op{Name: OpLock, Step: 1}},
		{"next:2", Op{Name: OpNext, Step: 2}},
		{"pick:1=4", Op{Name: OpPick, Step: 1, Value: 4}},
		{"assign:2=12", Op{Name: OpAssign, Step: 2, Value: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOp(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOp_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"shuffle:1",
		"add:1",
		"remove",
		"remove:x",
		"remove:1=2",
		"pick:1",
		"pick:1=x",
		"assign:=3",
	} {
		_, err := ParseOp(in)
		assert.ErrorIs(t, err, types.ErrInvalidOp, in)
	}
}

func TestParseScript(t *testing.T) {
	ops, err := ParseScript([]string{"add", "lock:3"})
	require.NoError(t, err)
	assert.Equal(t, []Op{{Name: OpAdd}, {Name: OpLock, Step: 3}}, ops)

	_, err = ParseScript([]string{"add", "nope"})
	assert.ErrorIs(t, err, types.ErrInvalidOp)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "add", Op{Name: OpAdd}.String())
	assert.Equal(t, "lock:2", Op{Name: OpLock, Step: 2}.String())
	assert.Equal(t, "pick:1=3", Op{Name: OpPick, Step: 1, Value: 3}.String())
}

func scriptCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]types.Place{placeA, placeB, placeC}, nil)
	require.NoError(t, err)
	return cat
}

func TestRun(t *testing.T) {
	cat := scriptCatalog(t)
	c := New(cat)

	ops, err := ParseScript([]string{"next:1", "assign:2=2", "pick:1=1", "lock:1"})
	require.NoError(t, err)
	out, err := c.Run(Plan{
		Entry:   Entry{Mode: ModeScratch},
		Ops:     ops,
		Details: Details{Title: "Two delis"},
	}, cat)
	require.NoError(t, err)

	assert.Equal(t, types.StepList{
		{Category: types.CategoryFoodDrink, Cursor: 0, Locked: true},
		{Category: types.CategoryFoodDrink, Cursor: 1, Locked: true},
	}, out.Steps)
	assert.Equal(t, []string{"A", "B"}, out.Experience.PlaceNames())
	assert.Equal(t, "Two delis", out.Experience.Title)
}

func TestRun_Errors(t *testing.T) {
	cat := scriptCatalog(t)
	c := New(cat)

	tests := []struct {
		name string
		ops  []Op
		want error
	}{
		{"step out of range", []Op{{Name: OpRemove, Step: 3}}, types.ErrIndexOutOfRange},
		{"step zero", []Op{{Name: OpLock, Step: 0}}, types.ErrIndexOutOfRange},
		{"candidate zero", []Op{{Name: OpPick, Step: 1, Value: 0}}, types.ErrIndexOutOfRange},
		{"unknown place", []Op{{Name: OpAssign, Step: 1, Value: 99}}, types.ErrUnknownPlace},
		{"unknown op", []Op{{Name: "shuffle", Step: 1}}, types.ErrInvalidOp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Run(Plan{Entry: Entry{Mode: ModeScratch}, Ops: tt.ops}, cat)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := New(emptyCatalog(t)).Run(Plan{Entry: Entry{Mode: ModeScratch}}, cat)
	assert.ErrorIs(t, err, types.ErrEmptyCatalog)
}

func TestApply_AssignWithoutLookup(t *testing.T) {
	c := New(scriptCatalog(t))
	steps, err := c.Scratch()
	require.NoError(t, err)

	_, err = c.Apply(steps, Op{Name: OpAssign, Step: 1, Value: 1}, nil)
	assert.ErrorIs(t, err, types.ErrInvalidOp)

	next, err := c.Apply(steps, Op{Name: OpNext, Step: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, next[0].Cursor)
}

func emptyCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(nil, nil)
	require.NoError(t, err)
	return cat
}

func TestViews(t *testing.T) {
	cat, err := catalog.New([]types.Place{placeA}, []string{types.CategoryFoodDrink, types.CategoryMuseums})
	require.NoError(t, err)
	c := New(cat)

	views := c.Views(types.StepList{
		{Category: types.CategoryFoodDrink, Cursor: 5, Locked: true},
		{Category: types.CategoryMuseums},
	})
	require.Len(t, views, 2)
	require.NotNil(t, views[0].Place)
	assert.Equal(t, "A", views[0].Place.Name)
	assert.True(t, views[0].Locked)
	assert.Nil(t, views[1].Place)
}
