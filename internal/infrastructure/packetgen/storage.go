package packetgen

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage writes rendered packets to a directory on the local
// filesystem and reports the stored location and size.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) Store(filename string, data []byte) (string, int64, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create packet directory: %w", err)
	}

	location := filepath.Join(s.dir, filename)
	if err := os.WriteFile(location, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to write packet file: %w", err)
	}

	return location, int64(len(data)), nil
}
