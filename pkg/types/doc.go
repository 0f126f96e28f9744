// Package types defines the catalog entities, the composition step model,
// the finalized Experience, the Store and Table interfaces, and the standard
// error values shared by the curate packages.
package types
