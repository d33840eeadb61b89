package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSStorage stores document bytes on the local filesystem.
//
// Used in development and single-node deployments; the returned reference is
// the path relative to the storage root.
type FSStorage struct {
	root string
}

// NewFSStorage creates the storage root directory if needed.
func NewFSStorage(root string) (*FSStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("docstore: failed to create root %s: %w", root, err)
	}
	return &FSStorage{root: root}, nil
}

// Store writes the document under <root>/<registrationID>/<slot>.jpg.
//
// Write-once: an existing reference is never overwritten.
func (storage *FSStorage) Store(_ context.Context, registrationID, slot string, data []byte) (string, error) {
	dir := filepath.Join(storage.root, registrationID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("docstore: failed to create directory: %w", err)
	}

	relative := filepath.Join(registrationID, slot+".jpg")
	path := filepath.Join(storage.root, relative)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("docstore: reference %s already exists", relative)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("docstore: failed to write document: %w", err)
	}
	return relative, nil
}
