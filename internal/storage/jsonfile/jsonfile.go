// Package jsonfile implements the server-side persistence: one JSON array
// per resource, stored as a flat file and rewritten whole on every change.
// The dataset is small enough that this stays simpler and more debuggable
// than a database.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
)

// collection is a JSON-array-in-a-file with whole-file rewrites. All stores
// in this package are thin typed wrappers around it.
type collection[T any] struct {
	mu   sync.Mutex
	path string
}

func newCollection[T any](dir, name string) (*collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &collection[T]{path: filepath.Join(dir, name+".json")}, nil
}

// load reads the whole collection. A missing or corrupt file reads as empty
// so a bad deploy never takes the API down.
func (c *collection[T]) load() ([]T, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read %s", c.path)
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, nil
	}
	return items, nil
}

// save rewrites the whole collection through a temp file and rename, so a
// crash mid-write never leaves a truncated array behind.
func (c *collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", c.path)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return errors.Wrapf(err, "replace %s", c.path)
	}
	return nil
}

// List returns all items in the collection.
func (c *collection[T]) List() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// update applies fn to the loaded items under the lock and saves the result.
// fn returning an error aborts without writing.
func (c *collection[T]) update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(next)
}
