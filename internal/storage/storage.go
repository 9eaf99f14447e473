package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/brew-math/internal/validate"
)

// Backend names accepted by Open.
const (
	BackendJSON = "json"
	BackendBolt = "bolt"
)

// Default storage locations per backend.
const (
	DefaultJSONPath = "~/.config/brew-math/preferences.json"
	DefaultBoltPath = "~/.config/brew-math/preferences.db"
)

// ErrUnknownBackend is returned by Open for a backend name it does not know.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a durable key-value store for user preferences.
// Values are JSON-encoded; a Set is visible to every later Lookup.
type Store interface {
	// Lookup decodes the value stored under key into dst. It reports false when the key is absent.
	Lookup(key string, dst any) (bool, error)
	// Set stores value under key and persists it before returning.
	Set(key string, value any) error
	Close() error
}

// Get returns the value stored under key, or def when the key is missing or cannot be decoded.
func Get[T any](s Store, key string, def T) T {
	var v T
	found, err := s.Lookup(key, &v)
	if err != nil {
		logrus.Warnf("Ignoring unreadable preference %q: %v", key, err)
		return def
	}
	if !found {
		return def
	}
	return v
}

// Options selects and locates a Store.
type Options struct {
	Backend string `validate:"omitempty,oneof=json bolt"`
	// Path to the store; empty means the backend default.
	Path string
}

// Open opens the store described by opts, creating it when it does not exist yet.
func Open(opts Options) (Store, error) { //nolint:ireturn // Backend is chosen at runtime.
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	switch opts.Backend {
	case "", BackendJSON:
		path := opts.Path
		if path == "" {
			path = DefaultJSONPath
		}
		return NewOrExistingFileStore(path)
	case BackendBolt:
		path := opts.Path
		if path == "" {
			path = DefaultBoltPath
		}
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// FileStore keeps preferences in a single JSON document on disk.
type FileStore struct {
	Path string `validate:"required,filepath"`
	Data map[string]json.RawMessage
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore for path and loads it if the file exists.
func NewFileStore(path string) (*FileStore, error) {
	expandedPath, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	s := &FileStore{
		Path: expandedPath,
		Data: make(map[string]json.RawMessage),
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid preferences path %q: %w", expandedPath, err)
	}

	if err := s.Load(); err != nil {
		// If the file doesn't exist, we can ignore the error.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return s, nil
}

// NewOrExistingFileStore returns the existing store if the file exists, or creates a new one otherwise.
// When creating a new store, it writes the empty document to disk immediately.
func NewOrExistingFileStore(path string) (*FileStore, error) {
	expandedPath, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(expandedPath); err == nil {
		return NewFileStore(path)
	} else if os.IsNotExist(err) {
		s, err := NewFileStore(path)
		if err != nil {
			return nil, err
		}
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, err
}

// Load reads the document from disk. A document that is not a JSON object is discarded.
func (s *FileStore) Load() error {
	logrus.Debug("Loading preferences from: ", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}

	loaded := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &loaded); err != nil {
		logrus.Warnf("Preferences file %s is corrupt; starting fresh: %v", s.Path, err)
		return s.reset()
	}
	// A bare `null` decodes without error but leaves the map nil.
	if loaded == nil {
		logrus.Warnf("Preferences file %s holds no object; starting fresh", s.Path)
		return s.reset()
	}
	s.Data = loaded
	return nil
}

func (s *FileStore) reset() error {
	s.Data = make(map[string]json.RawMessage)
	return s.Save()
}

// Save writes the document to disk atomically.
func (s *FileStore) Save() error {
	logrus.Debug("Saving preferences to: ", s.Path)
	// Ensure parent directory exists.
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.Path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Lookup implements Store.
func (s *FileStore) Lookup(key string, dst any) (bool, error) {
	raw, ok := s.Data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// Set implements Store. On a failed write the in-memory document is left unchanged.
func (s *FileStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	prev, had := s.Data[key]
	s.Data[key] = raw
	if err := s.Save(); err != nil {
		// Keep memory in step with what is on disk.
		if had {
			s.Data[key] = prev
		} else {
			delete(s.Data, key)
		}
		return err
	}
	return nil
}

// Close implements Store. Every Set is already on disk.
func (s *FileStore) Close() error { return nil }

// ExpandPath expands a leading tilde in path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
