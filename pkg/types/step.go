package types

// Step is one slot of a composition: a category, a cursor into that
// category's places, and whether the user has pinned the current selection.
//
// Cursor is never clamped. Resolution reduces it modulo the number of
// candidates, so repeated regeneration cycles through the category.
type Step struct {
	Category string `json:"category"`
	Cursor   int    `json:"cursor"`
	Locked   bool   `json:"locked"`
}

// Browsable reports whether browsing controls (regenerate, carousel) apply
// to the step. Locked steps hide them.
func (s Step) Browsable() bool {
	return !s.Locked
}

// StepList is the ordered state of a composition session. Engine operations
// take a StepList and return a new one; the argument is never modified.
type StepList []Step

// Clone returns a copy that shares no backing array with l.
// A nil list clones to an empty, non-nil list.
func (l StepList) Clone() StepList {
	out := make(StepList, len(l))
	copy(out, l)
	return out
}

// Valid reports whether i addresses a step in l.
func (l StepList) Valid(i int) bool {
	return i >= 0 && i < len(l)
}

// Categories returns the category of every step, in order.
func (l StepList) Categories() []string {
	out := make([]string, len(l))
	for i, s := range l {
		out[i] = s.Category
	}
	return out
}
