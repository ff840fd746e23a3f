package storage

import (
	"context"
	"sync"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryPhotoStorage keeps photos in process memory
type MemoryPhotoStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryPhotoStorage creates an empty in-memory photo store
func NewMemoryPhotoStorage() *MemoryPhotoStorage {
	return &MemoryPhotoStorage{objects: make(map[string]memoryObject)}
}

// Put implements catalog.PhotoStorage
func (m *MemoryPhotoStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	m.objects[key] = memoryObject{data: cp, contentType: contentType}
	m.mu.Unlock()
	return nil
}

// Get implements catalog.PhotoStorage
func (m *MemoryPhotoStorage) Get(_ context.Context, key string) ([]byte, string, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, "", shared.ErrNotFound
	}
	return obj.data, obj.contentType, nil
}

// Delete implements catalog.PhotoStorage
func (m *MemoryPhotoStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored photos
func (m *MemoryPhotoStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ catalog.PhotoStorage = (*MemoryPhotoStorage)(nil)
