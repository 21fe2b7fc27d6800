package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore implements KeyValueStore with one YAML file per key.
type FileStore struct {
	directory string
}

// NewFileStore creates a new FileStore. The directory is created on the first write.
func NewFileStore(directory string) *FileStore {
	return &FileStore{directory: directory}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.directory, key+".yml")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("os.ReadFile(%s) > %w", s.path(key), err)
	}
	return data, true, nil
}

// Set replaces the file through a rename so readers never see a partial value.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", s.directory, err)
	}

	file, err := os.CreateTemp(s.directory, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", s.directory, err)
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		return fmt.Errorf("file.Write(%s) > %w", file.Name(), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s) > %w", file.Name(), err)
	}
	if err := os.Rename(file.Name(), s.path(key)); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", s.path(key), err)
	}
	return nil
}

func (s *FileStore) SetAll(ctx context.Context, entries []Entry) error {
	for _, entry := range entries {
		if err := s.Set(ctx, entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}
