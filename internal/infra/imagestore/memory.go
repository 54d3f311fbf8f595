package imagestore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

// MemoryStore keeps blobs in memory. Useful for tests and local dev.
type MemoryStore struct {
	mu            sync.RWMutex
	blobs         map[string][]byte
	publicBaseURL string
}

// NewMemoryStore constructs the store.
func NewMemoryStore(publicBaseURL string) *MemoryStore {
	return &MemoryStore{
		blobs:         make(map[string][]byte),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Save records the blob and returns its reference.
func (s *MemoryStore) Save(_ context.Context, key string, data []byte, _ string) (outfit.StoredImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	s.blobs[key] = copied
	return outfit.StoredImage{
		Key:  key,
		URL:  s.publicBaseURL + "/" + key,
		Size: int64(len(data)),
	}, nil
}

// Get returns the stored bytes.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", key)
	}
	return blob, nil
}

// Delete removes the blob.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

var _ outfit.ImageStore = (*MemoryStore)(nil)
