package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepListClone(t *testing.T) {
	orig := StepList{
		{Category: CategoryFoodDrink, Cursor: 2},
		{Category: CategoryMuseums, Locked: true},
	}

	cp := orig.Clone()
	cp[0].Cursor = 9
	cp[1].Locked = false

	assert.Equal(t, 2, orig[0].Cursor, "clone must not share storage")
	assert.True(t, orig[1].Locked)
}

func TestStepListCloneNil(t *testing.T) {
	var l StepList
	cp := l.Clone()
	assert.NotNil(t, cp)
	assert.Empty(t, cp)
}

func TestStepListValid(t *testing.T) {
	l := StepList{{}, {}}
	tests := []struct {
		index int
		want  bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{2, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.Valid(tt.index), "index %d", tt.index)
	}
}

func TestStepBrowsable(t *testing.T) {
	assert.True(t, Step{}.Browsable())
	assert.False(t, Step{Locked: true}.Browsable())
}

func TestStepListCategories(t *testing.T) {
	l := StepList{{Category: CategoryParks}, {Category: CategoryFoodDrink}}
	assert.Equal(t, []string{CategoryParks, CategoryFoodDrink}, l.Categories())
}
