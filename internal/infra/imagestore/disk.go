package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

// DiskStore writes image blobs under a local uploads directory which the
// HTTP layer serves as a static resource.
type DiskStore struct {
	root          string
	publicBaseURL string
}

// NewDiskStore constructs the store, creating the root directory if needed.
func NewDiskStore(root, publicBaseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Root returns the directory served as static uploads.
func (s *DiskStore) Root() string {
	return s.root
}

// Save writes the blob and returns its public reference.
func (s *DiskStore) Save(_ context.Context, key string, data []byte, _ string) (outfit.StoredImage, error) {
	path, err := s.resolve(key)
	if err != nil {
		return outfit.StoredImage{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return outfit.StoredImage{}, fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return outfit.StoredImage{}, fmt.Errorf("write image: %w", err)
	}
	return outfit.StoredImage{
		Key:  key,
		URL:  s.publicBaseURL + "/" + key,
		Size: int64(len(data)),
	}, nil
}

// Delete removes the blob; a missing file is not an error.
func (s *DiskStore) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve rejects keys escaping the uploads root.
func (s *DiskStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

var _ outfit.ImageStore = (*DiskStore)(nil)
