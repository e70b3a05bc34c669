package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"utilitycompare-backend/internal/shared/storage/object"
)

const defaultBucketDir = "default"

// Store implements ObjectStore on the local filesystem for development.
type Store struct {
	root string
}

// New creates a filesystem-backed object store rooted at dir.
func New(dir string) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = "./data"
	}
	return &Store{root: dir}
}

// Put writes the object under root/default/key.
func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, int64, error) {
	_ = contentType
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	path, err := s.resolve(defaultBucketDir, key)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", 0, fmt.Errorf("local store mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("local store create: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("local store write: %w", err)
	}
	return "file://" + path, n, nil
}

// Fetch reads the object from root/bucket/key.
func (s *Store) Fetch(ctx context.Context, bucket string, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bucket == "" {
		bucket = defaultBucketDir
	}

	path, err := s.resolve(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("local store read bucket=%s key=%s: %w", bucket, key, err)
	}
	return data, nil
}

// Delete removes the object; missing objects are ignored.
func (s *Store) Delete(ctx context.Context, bucket string, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bucket == "" {
		bucket = defaultBucketDir
	}

	path, err := s.resolve(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local store delete bucket=%s key=%s: %w", bucket, key, err)
	}
	return nil
}

func (s *Store) resolve(bucket, key string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(s.root, bucket, filepath.FromSlash(key)))
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	pathAbs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", err
	}
	if pathAbs != rootAbs && !strings.HasPrefix(pathAbs, rootAbs+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid object key: %s", key)
	}
	return cleaned, nil
}

var _ object.ObjectStore = (*Store)(nil)
