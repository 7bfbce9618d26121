package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/stevemurr/simple-items-server/model"
)

// JsonFileStore keeps the collection as one JSON array in a single file.
//
// Layout:
//
//	data_dir/
//	  items.json   # [ {"id": 1, ...}, ... ]
type JsonFileStore struct {
	path string
}

func NewJsonFileStore(path string) (*JsonFileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	return &JsonFileStore{path: path}, nil
}

// Path returns the backing file.
func (s *JsonFileStore) Path() string {
	return s.path
}

func (s *JsonFileStore) Load(_ context.Context) (model.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Collection{}, nil
		}
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	// A zero-length file reads as an empty array. Whitespace alone is not JSON.
	if len(data) == 0 {
		return model.Collection{}, nil
	}
	var items model.Collection
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &DecodeError{Path: s.path, Err: err}
	}
	if items == nil {
		items = model.Collection{}
	}
	return items, nil
}

func (s *JsonFileStore) Save(_ context.Context, items model.Collection) error {
	if items == nil {
		items = model.Collection{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &IOError{Op: "encode", Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
