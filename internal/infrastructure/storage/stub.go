package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	prescriptionapp "github.com/medistore/backend/internal/application/prescription"
)

// Ensure InMemoryObjectStorage implements ObjectStorageService
var _ prescriptionapp.ObjectStorageService = (*InMemoryObjectStorage)(nil)

// InMemoryObjectStorage keeps uploaded objects in a map. Use it for
// development and tests when no S3-compatible backend is available.
type InMemoryObjectStorage struct {
	// BaseURL is the base URL used for generated object URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewInMemoryObjectStorage creates a new InMemoryObjectStorage
func NewInMemoryObjectStorage() *InMemoryObjectStorage {
	return &InMemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores the object in memory
func (s *InMemoryObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = buf
	return nil
}

// GenerateDownloadURL returns a fake signed URL for a stored object
func (s *InMemoryObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// DeleteObject removes a stored object. Deleting a missing key succeeds.
func (s *InMemoryObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// PublicURL returns the stable URL of a stored object
func (s *InMemoryObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}

// Get returns a stored object's contents
func (s *InMemoryObjectStorage) Get(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}

// Len returns the number of stored objects
func (s *InMemoryObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
