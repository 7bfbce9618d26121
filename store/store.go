// Package store defines the backing store interface and implementations.
package store

import (
	"context"

	"github.com/stevemurr/simple-items-server/model"
)

// Store loads and saves the whole item collection. There is no per-item
// access: callers read everything, mutate in memory, and write everything
// back. Implementations do not coordinate concurrent writers.
type Store interface {
	// Load returns the stored collection. A store that has never been
	// written returns an empty, non-nil collection.
	Load(ctx context.Context) (model.Collection, error)

	// Save replaces the stored collection with items.
	Save(ctx context.Context, items model.Collection) error
}
