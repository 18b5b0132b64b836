// Package prefs persists the admin filter selection per award program.
package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/redstonehub/laurel/internal/domain/model"
)

// Store loads and saves admin filters keyed by program.
type Store interface {
	// Load returns the saved filters and whether any were saved.
	Load(ctx context.Context, kind model.Kind) (model.AdminFilters, bool, error)
	// Save replaces the saved filters for kind.
	Save(ctx context.Context, kind model.Kind, f model.AdminFilters) error
}

// Memory keeps preferences for the life of the process.
type Memory struct {
	mu    sync.RWMutex
	items map[model.Kind]model.AdminFilters
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[model.Kind]model.AdminFilters)}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, kind model.Kind) (model.AdminFilters, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.items[kind]
	return f, ok, nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, kind model.Kind, f model.AdminFilters) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[kind] = f
	return nil
}

// document is the on-disk layout.
type document struct {
	Filters map[model.Kind]model.AdminFilters `yaml:"filters"`
}

// File stores preferences in a YAML document.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a store backed by path. The file is created on first save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Load implements Store. A missing file means nothing was saved.
func (f *File) Load(ctx context.Context, kind model.Kind) (model.AdminFilters, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.AdminFilters{}, false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return model.AdminFilters{}, false, err
	}
	v, ok := doc.Filters[kind]
	return v, ok, nil
}

// Save implements Store. The document is rewritten through a temp file.
func (f *File) Save(ctx context.Context, kind model.Kind, v model.AdminFilters) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.Filters[kind] = v

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (f *File) read() (document, error) {
	doc := document{Filters: make(map[model.Kind]model.AdminFilters)}
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%w: decode %s: %w", ErrPersist, f.path, err)
	}
	if doc.Filters == nil {
		doc.Filters = make(map[model.Kind]model.AdminFilters)
	}
	return doc, nil
}
