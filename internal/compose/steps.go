package compose

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// AddStep appends an unlocked step on the first enumerated category no
// step uses yet, or on the first category when all are taken.
func (c *Composer) AddStep(steps types.StepList) (types.StepList, error) {
	if err := c.requireCategories(); err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(steps))
	for _, s := range steps {
		used[s.Category] = true
	}
	category := c.firstCategory()
	for _, cat := range c.catalog.Categories() {
		if !used[cat] {
			category = cat
			break
		}
	}

	out := append(steps.Clone(), types.Step{Category: category})
	c.logger.Debug("step added", zap.Int("index", len(out)-1), zap.String("category", category))
	return out, nil
}

// RemoveStep deletes the step at index; later steps shift down by one.
func (c *Composer) RemoveStep(steps types.StepList, index int) (types.StepList, error) {
	if !steps.Valid(index) {
		return nil, indexError(index, len(steps))
	}
	out := make(types.StepList, 0, len(steps)-1)
	out = append(out, steps[:index]...)
	out = append(out, steps[index+1:]...)
	c.logger.Debug("step removed", zap.Int("index", index), zap.Int("remaining", len(out)))
	return out, nil
}

// MoveUp swaps the step at index with its predecessor. Index 0 is a no-op.
func (c *Composer) MoveUp(steps types.StepList, index int) (types.StepList, error) {
	if !steps.Valid(index) {
		return nil, indexError(index, len(steps))
	}
	if index == 0 {
		return steps.Clone(), nil
	}
	out := steps.Clone()
	out[index-1], out[index] = out[index], out[index-1]
	c.logger.Debug("step moved", zap.Int("from", index), zap.Int("to", index-1))
	return out, nil
}

// MoveDown swaps the step at index with its successor. The last index is a
// no-op.
func (c *Composer) MoveDown(steps types.StepList, index int) (types.StepList, error) {
	if !steps.Valid(index) {
		return nil, indexError(index, len(steps))
	}
	if index == len(steps)-1 {
		return steps.Clone(), nil
	}
	out := steps.Clone()
	out[index], out[index+1] = out[index+1], out[index]
	c.logger.Debug("step moved", zap.Int("from", index), zap.Int("to", index+1))
	return out, nil
}

// ToggleLock flips the locked flag of the step at index.
func (c *Composer) ToggleLock(steps types.StepList, index int) (types.StepList, error) {
	if !steps.Valid(index) {
		return nil, indexError(index, len(steps))
	}
	out := steps.Clone()
	out[index].Locked = !out[index].Locked
	c.logger.Debug("step lock toggled", zap.Int("index", index), zap.Bool("locked", out[index].Locked))
	return out, nil
}

// Regenerate advances the cursor of the step at index by one. The cursor
// is not wrapped here; resolution applies the modulo.
func (c *Composer) Regenerate(steps types.StepList, index int) (types.StepList, error) {
	if !steps.Valid(index) {
		return nil, indexError(index, len(steps))
	}
	out := steps.Clone()
	out[index].Cursor++
	c.logger.Debug("step regenerated", zap.Int("index", index), zap.Int("cursor", out[index].Cursor))
	return out, nil
}

// RegenerateAt sets the cursor of the step at index to cursor, as when the
// user taps a specific candidate in the browse list.
func (c *Composer) RegenerateAt(steps types.StepList, index, cursor int) (types.StepList, error) {
	if !steps.Valid(index) {
		return nil, indexError(index, len(steps))
	}
	if cursor < 0 {
		return nil, fmt.Errorf("%w: cursor %d is negative", types.ErrIndexOutOfRange, cursor)
	}
	out := steps.Clone()
	out[index].Cursor = cursor
	c.logger.Debug("step regenerated", zap.Int("index", index), zap.Int("cursor", cursor))
	return out, nil
}

// AssignPlace points the step at index at place, moving it to the place's
// category, and locks it. This follows a place-search selection.
func (c *Composer) AssignPlace(steps types.StepList, index int, place types.Place) (types.StepList, error) {
	if !steps.Valid(index) {
		return nil, indexError(index, len(steps))
	}
	idx, ok := c.catalog.IndexInCategory(place)
	if !ok {
		return nil, fmt.Errorf("%w: %d %q in %q", types.ErrPlaceNotFound, place.ID, place.Name, place.Category)
	}
	out := steps.Clone()
	out[index] = types.Step{Category: place.Category, Cursor: idx, Locked: true}
	c.logger.Debug("place assigned",
		zap.Int("index", index),
		zap.Int("place_id", place.ID),
		zap.String("category", place.Category),
	)
	return out, nil
}
