package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/storefront/internal/port"
)

type memoryStorage struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() port.StateStorage {
	return &memoryStorage{
		records: make(map[string][]byte),
	}
}

func (r *memoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.records[key]
	if !ok {
		return nil, port.ErrNotFound
	}

	return slices.Clone(value), nil
}

func (r *memoryStorage) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[key] = slices.Clone(value)

	return nil
}

func (r *memoryStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, key)

	return nil
}
