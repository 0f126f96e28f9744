package types

import "errors"

// Composition errors.
var (
	ErrIndexOutOfRange = errors.New("step index out of range")
	ErrPlaceNotFound   = errors.New("place not found in its category")
	ErrEmptyCatalog    = errors.New("catalog has no categories")
	ErrUnknownMode     = errors.New("unknown composition mode")
)

// Catalog errors.
var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrUnknownPlace   = errors.New("unknown place")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)

// Table operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrNoPlaces    = errors.New("experience has no places")
)

// ErrInvalidOp is returned for a compose op that cannot be parsed.
var ErrInvalidOp = errors.New("invalid compose op")
