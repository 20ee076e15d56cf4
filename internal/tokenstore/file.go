package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// Record is the on-disk format of the token cache.
type Record struct {
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

// FileStore persists the token as a small JSON record.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the location of the cache file.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the cached token. Unreadable or corrupt cache files are
// treated as an empty cache.
func (f *FileStore) Get() (Token, bool) {
	rec, err := f.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warnf("tokenstore: ignoring unreadable cache %s: %v", f.path, err)
		}
		return "", false
	}
	if rec.Token == "" {
		return "", false
	}
	return Token(rec.Token), true
}

// Load reads the raw record from disk.
func (f *FileStore) Load() (Record, error) {
	var rec Record
	data, err := os.ReadFile(f.path)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode token cache: %w", err)
	}
	return rec, nil
}

// Put writes the token together with its acquisition time. The file is
// replaced atomically.
func (f *FileStore) Put(t Token) error {
	rec := Record{Token: string(t), Timestamp: f.now().Unix()}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token cache: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write token to file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write token to file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}

	log.Debugf("tokenstore: token cached in %s", f.path)
	return nil
}

// Invalidate removes the cache file.
func (f *FileStore) Invalidate() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
