// Package storage is the client-side persistence boundary: a small key-value
// surface matching what the apps keep between launches (session, admin token,
// cart snapshot).
package storage

import (
	"os"
	"path/filepath"
	"sync"
)

// Keys owned by the client stores. Each store writes only its own key.
const (
	KeyTableSession = "table_session"
	KeyAdminToken   = "admin_token"
	KeyCartItems    = "cart_items"
)

type Storage interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Remove(key string)
}

// FileStore persists each key as a JSON file under a directory
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStore) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (f *FileStore) Set(key string, value []byte) error {
	return os.WriteFile(f.path(key), value, 0o644)
}

func (f *FileStore) Remove(key string) {
	os.Remove(f.path(key))
}

// MemoryStore keeps values in a map. Used in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
