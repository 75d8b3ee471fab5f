// auction/store/file_store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each resource in <dir>/<key>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing resource.
func (fs *FileStore) Path(resource Resource) string {
	return filepath.Join(fs.dir, resource.Key()+".json")
}

func (fs *FileStore) Load(ctx context.Context, resource Resource) ([]byte, error) {
	if err := checkResource(resource); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fs.Path(resource))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, resource)
		}
		return nil, fmt.Errorf("failed to read %s: %w", fs.Path(resource), err)
	}
	return checkLoaded(resource, data)
}

// Save writes through a temp file and renames it over the old document,
// so readers never see a half-written file.
func (fs *FileStore) Save(ctx context.Context, resource Resource, doc []byte) error {
	data, err := formatDocument(resource, doc)
	if err != nil {
		return err
	}
	target := fs.Path(resource)

	tmp, err := os.CreateTemp(fs.dir, "."+resource.Key()+"-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", resource, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", resource, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", resource, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp file for %s: %w", resource, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}
	return nil
}

func (fs *FileStore) Exists(ctx context.Context, resource Resource) (bool, error) {
	if err := checkResource(resource); err != nil {
		return false, err
	}
	_, err := os.Stat(fs.Path(resource))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", fs.Path(resource), err)
}

func (fs *FileStore) Close() error { return nil }
