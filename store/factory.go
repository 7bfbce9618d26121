package store

import (
	"fmt"
	"path/filepath"
)

// File names used inside the data directory.
const (
	JSONFileName   = "items.json"
	SqliteFileName = "items.db"
)

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"json"   - dataDir/items.json (default)
//	"sqlite" - SQLite database at dataDir/items.db
//	"memory" - In-memory (ephemeral, for testing)
func New(backend, dataDir string) (Store, error) {
	switch backend {
	case "json", "":
		return NewJsonFileStore(filepath.Join(dataDir, JSONFileName))
	case "sqlite":
		return NewSqliteStore(filepath.Join(dataDir, SqliteFileName))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, sqlite, memory)", backend)
	}
}
