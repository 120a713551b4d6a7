// Package kvstore is the persistence port: a small key-value contract with
// file, memory and redis backends.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/nexa-assets/nexa/pkg/errclass"
)

// ErrNotFound reports a key that has never been written or was deleted.
var ErrNotFound = errors.New("kvstore: key not found")

// Store persists whole documents under fixed keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string
	Redis   RedisOptions
}

// Open constructs the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateKey rejects keys that could escape a backend's namespace.
func ValidateKey(key string) error {
	if !keyRegex.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q: must match [a-zA-Z0-9._-]+", key)
	}
	return nil
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", errclass.ErrPersistenceUnavailable, op, key, err)
}

// UnavailableStore fails every operation with the error it was created with.
// It stands in for a backend that could not be opened so callers can degrade
// to memory-only operation.
type UnavailableStore struct {
	err error
}

// NewUnavailableStore wraps err as a persistence failure.
func NewUnavailableStore(err error) *UnavailableStore {
	if !errors.Is(err, errclass.ErrPersistenceUnavailable) {
		err = unavailable("open", "", err)
	}
	return &UnavailableStore{err: err}
}

func (s *UnavailableStore) Get(context.Context, string) ([]byte, error) { return nil, s.err }
func (s *UnavailableStore) Put(context.Context, string, []byte) error   { return s.err }
func (s *UnavailableStore) Delete(context.Context, string) error        { return s.err }
func (s *UnavailableStore) Close() error                                { return nil }
