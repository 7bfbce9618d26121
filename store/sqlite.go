package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/stevemurr/simple-items-server/model"
)

// SqliteStore stores the collection in a single SQLite table. Rows carry
// their position so Load returns items in insertion order.
//
// Tables:
//
//	items(position, id, name, price, size)  PRIMARY KEY (position)
type SqliteStore struct {
	db   *sql.DB
	path string
}

func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: filepath.Dir(dbPath), Err: err}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, &IOError{Op: "open", Path: dbPath, Err: err}
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, &IOError{Op: "open", Path: dbPath, Err: err}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS items (
		position INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		size TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, &IOError{Op: "migrate", Path: dbPath, Err: err}
	}
	return &SqliteStore{db: db, path: dbPath}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) Load(ctx context.Context) (model.Collection, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, price, size FROM items ORDER BY position")
	if err != nil {
		return nil, &IOError{Op: "query", Path: s.path, Err: err}
	}
	defer rows.Close()
	items := model.Collection{}
	for rows.Next() {
		var (
			it   model.Item
			size string
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &size); err != nil {
			return nil, &DecodeError{Path: s.path, Err: err}
		}
		it.Size = model.Size(size)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "query", Path: s.path, Err: err}
	}
	return items, nil
}

// Save rewrites the table in one transaction.
func (s *SqliteStore) Save(ctx context.Context, items model.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &IOError{Op: "begin", Path: s.path, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO items (position, id, name, price, size) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	defer stmt.Close()
	for i, it := range items {
		if _, err := stmt.ExecContext(ctx, i, it.ID, it.Name, it.Price, string(it.Size)); err != nil {
			return &IOError{Op: "write", Path: s.path, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &IOError{Op: "commit", Path: s.path, Err: err}
	}
	return nil
}
