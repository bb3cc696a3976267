package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage persists the session record to a single file. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// half-written record. The file is created 0600: it holds live credentials.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage returns an adapter writing to path. The parent directory
// must exist.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load implements [Storage].
func (f *FileStorage) Load(_ context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoState
		}
		return nil, err
	}
	return data, nil
}

// Save implements [Storage].
func (f *FileStorage) Save(_ context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
