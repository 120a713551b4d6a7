package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nexa-assets/nexa/pkg/fsutil"
)

// TmpPrefix marks in-flight writes; leftovers are reported by the doctor.
const TmpPrefix = fsutil.TmpPrefix

// FileStore keeps one JSON document per key under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, unavailable("open", "", fmt.Errorf("no data directory"))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, unavailable("open", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file a key is stored in.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get", key, err)
	}
	return data, nil
}

func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := fsutil.AtomicWrite(s.Path(key), data, 0600); err != nil {
		return unavailable("put", key, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := os.Remove(s.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return unavailable("delete", key, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Keys lists stored keys, skipping temp files.
func (s *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, unavailable("list", s.dir, err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || fsutil.IsTmp(name) || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}
