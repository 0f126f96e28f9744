// Package sqlite provides the public API for the SQLite experience store.
// It exposes the factory while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/internal/sqlite"
	"github.com/mesh-intelligence/curate/pkg/types"
)

// NewBackend creates a new SQLite store. The store is not attached; call
// Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend(zap.NewNop())
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".curate",
//	})
//	defer store.Detach()
func NewBackend(logger *zap.Logger) types.Store {
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
