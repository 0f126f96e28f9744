package compose

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// Details are the user-entered fields of an experience.
type Details struct {
	Title       string
	Description string
	Date        string
	Time        string
}

// Resolution is a step paired with the place it currently selects.
// OK is false when the step's category has no candidates.
type Resolution struct {
	Step  types.Step
	Place types.Place
	OK    bool
}

// wrap reduces cursor into [0, n). n must be positive.
func wrap(cursor, n int) int {
	i := cursor % n
	if i < 0 {
		i += n
	}
	return i
}

// Resolve returns the place selected by step: the candidate at
// cursor mod len(candidates). It reports false for an empty subset.
func (c *Composer) Resolve(step types.Step) (types.Place, bool) {
	subset := c.catalog.InCategory(step.Category)
	if len(subset) == 0 {
		return types.Place{}, false
	}
	return subset[wrap(step.Cursor, len(subset))], true
}

// Candidates returns the browse list for step and the position of the
// active candidate within it. Active is -1 for an empty list.
func (c *Composer) Candidates(step types.Step) (places []types.Place, active int) {
	subset := c.catalog.InCategory(step.Category)
	if len(subset) == 0 {
		return subset, -1
	}
	return subset, wrap(step.Cursor, len(subset))
}

// ResolveAll resolves every step in order, keeping unresolved steps as
// explicit empty entries.
func (c *Composer) ResolveAll(steps types.StepList) []Resolution {
	out := make([]Resolution, len(steps))
	for i, s := range steps {
		p, ok := c.Resolve(s)
		out[i] = Resolution{Step: s, Place: p, OK: ok}
	}
	return out
}

// Finalize converts steps into an Experience. Steps without a candidate are
// dropped, so the result may have no places; callers check Empty. Each call
// mints a fresh ID and CreatedAt and leaves steps unchanged.
func (c *Composer) Finalize(steps types.StepList, details Details) types.Experience {
	places := make([]types.Place, 0, len(steps))
	for _, s := range steps {
		if p, ok := c.Resolve(s); ok {
			places = append(places, p)
		}
	}

	exp := types.Experience{
		ExperienceID: c.newID(),
		Title:        details.Title,
		Description:  details.Description,
		Date:         details.Date,
		Time:         details.Time,
		Places:       places,
		CreatedAt:    c.now().UTC(),
	}
	c.logger.Debug("experience finalized",
		zap.String("experience_id", exp.ExperienceID),
		zap.Int("steps", len(steps)),
		zap.Int("places", len(places)),
	)
	return exp
}
