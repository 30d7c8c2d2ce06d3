package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nikolayk812/storefront/internal/port"
)

// fileStorage keeps every record of an owner in a single JSON document of
// string values, the way a browser keeps localStorage.
type fileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFile(dir, ownerID string) (port.StateStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}
	// ownerID names a file directly inside dir
	if ownerID == "." || strings.Contains(ownerID, "..") || strings.ContainsAny(ownerID, `/\`+string(filepath.Separator)) {
		return nil, fmt.Errorf("ownerID[%s] is not a valid file name", ownerID)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &fileStorage{
		path: filepath.Join(dir, ownerID+".json"),
	}, nil
}

func (r *fileStorage) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("r.load: %w", err)
	}

	value, ok := records[key]
	if !ok {
		return nil, port.ErrNotFound
	}

	return []byte(value), nil
}

func (r *fileStorage) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return fmt.Errorf("r.load: %w", err)
	}

	records[key] = string(value)

	if err := r.store(records); err != nil {
		return fmt.Errorf("r.store: %w", err)
	}

	return nil
}

func (r *fileStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return fmt.Errorf("r.load: %w", err)
	}

	if _, ok := records[key]; !ok {
		return nil
	}
	delete(records, key)

	if err := r.store(records); err != nil {
		return fmt.Errorf("r.store: %w", err)
	}

	return nil
}

func (r *fileStorage) load() (map[string]string, error) {
	records := make(map[string]string)

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	if len(data) == 0 {
		return records, nil
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("json.Unmarshal[%s]: %w", r.path, err)
	}

	return records, nil
}

// store replaces the document through a rename so readers never see a partial write.
func (r *fileStorage) store(records map[string]string) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
