// Package compose implements the experience composition engine: an ordered
// list of steps, each bound to a category and a wrapping cursor into that
// category's places, and the transitions a user applies to it before
// finalizing it into an Experience.
//
// Step lists are plain values. Every operation takes a types.StepList and
// returns a new one, leaving its argument untouched, so callers may keep
// earlier lists for undo or comparison.
package compose
