package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File persists one JSON document per key under a directory, so state
// survives process restarts without any external service.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Load(ctx context.Context, key string) ([]byte, error) {
	payload, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading snapshot %q: %w", key, err)
	}
	return payload, nil
}

func (f *File) Save(ctx context.Context, key string, payload []byte) error {
	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %q: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replacing snapshot %q: %w", key, err)
	}
	return nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

// sanitizeKey keeps snapshot filenames flat regardless of key separators.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer("/", "_", string(filepath.Separator), "_", ":", "_")
	return replacer.Replace(key)
}
