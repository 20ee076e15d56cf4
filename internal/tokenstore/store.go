package tokenstore

import (
	"errors"
	"fmt"
)

// Token is the opaque capability token sent with every translate request.
type Token string

// Store loads and saves the cached token.
type Store interface {
	// Get returns the cached token, or false when none is cached.
	Get() (Token, bool)
	// Put replaces the cached token.
	Put(Token) error
	// Invalidate drops the cached token.
	Invalidate() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for unsupported backend names.
var ErrUnknownBackend = errors.New("unknown token store backend")

// Open creates the store for the given backend. path is ignored by the
// memory backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		s, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
