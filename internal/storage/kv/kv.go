// Package kv defines the small key-value persistence contract the client
// side state (cart, order log, discount usage) is stored behind, so the
// business logic can be exercised without a real storage medium.
package kv

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
)

// Backend is a minimal persistent key-value store. A missing key reads as
// (nil, nil).
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Clear(key string) error
}

// Memory is an in-memory Backend, used in tests and as a default.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Memory) Clear(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Dir is a file-per-key Backend rooted at a directory. Keys map to file
// names; writes replace the whole file.
type Dir struct {
	root string
	mu   sync.Mutex
}

// NewDir creates the root directory if needed and returns a Dir backend.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "create kv root")
	}
	return &Dir{root: root}, nil
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.root, key+".json")
}

func (d *Dir) Get(key string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, err := os.ReadFile(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read key %q", key)
	}
	return b, nil
}

func (d *Dir) Set(key string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	tmp := d.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return errors.Wrapf(err, "write key %q", key)
	}
	if err := os.Rename(tmp, d.path(key)); err != nil {
		return errors.Wrapf(err, "replace key %q", key)
	}
	return nil
}

func (d *Dir) Clear(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := os.Remove(d.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "clear key %q", key)
	}
	return nil
}
