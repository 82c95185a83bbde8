package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore holds rendered documents under opaque generated keys.
// The filesystem implementation below is the only one shipped; an
// object-store backed implementation satisfies the same interface.
type BlobStore interface {
	// Put stores data and returns the generated key.
	Put(data []byte) (string, error)
	// Get returns the blob for a key.
	Get(key string) ([]byte, error)
}

// FSStore writes blobs as files under a root directory, one file per key.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) Put(data []byte) (string, error) {
	key := uuid.NewString()
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return key, nil
}

func (s *FSStore) Get(key string) ([]byte, error) {
	// keys are uuids we issued; reject anything that could escape the root
	if strings.ContainsAny(key, `/\`) || key == "" {
		return nil, fmt.Errorf("invalid blob key %q", key)
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *FSStore) path(key string) string { return filepath.Join(s.root, key) }
