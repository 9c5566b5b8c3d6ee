package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Medium is the durable key-value layer underneath the snapshot store. It is
// deliberately dumb: bytes in, bytes out, no schema, no versioning.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryMedium keeps snapshots in a map. Used by tests and as the degraded
// mode when no durable medium is configured.
type MemoryMedium struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{data: make(map[string][]byte)}
}

func (m *MemoryMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MemoryMedium) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryMedium) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FileMedium persists each key as one JSON file under a directory.
type FileMedium struct {
	dir string
}

func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileMedium{dir: dir}, nil
}

func (m *FileMedium) path(key string) string {
	// Keys may contain separators (e.g. "session:user"); keep filenames flat.
	name := strings.NewReplacer("/", "_", ":", "_").Replace(key)
	return filepath.Join(m.dir, name+".json")
}

func (m *FileMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, err := os.ReadFile(m.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (m *FileMedium) Set(_ context.Context, key string, value []byte) error {
	tmp := m.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path(key))
}

func (m *FileMedium) Delete(_ context.Context, key string) error {
	err := os.Remove(m.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
