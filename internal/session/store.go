package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
)

// Storage keys, kept identical to the mobile client's AsyncStorage keys so
// the two clients stay interchangeable in docs and bug reports.
const (
	KeyToken = "userToken"
	KeyUser  = "userData"
)

// Store persists small string values across process restarts. Exactly two
// keys are used: the auth token and the serialized user profile.
type Store interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// FileStore keeps each key in its own file under dir, mode 0600. The token
// is a credential; nothing under dir should be group- or world-readable.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) GetItem(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *FileStore) SetItem(key, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0600)
}

func (s *FileStore) RemoveItem(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) GetItem(key string) (string, bool) {
	v, ok := s.items[key]
	return v, ok
}

func (s *MemoryStore) SetItem(key, value string) error {
	s.items[key] = value
	return nil
}

func (s *MemoryStore) RemoveItem(key string) error {
	delete(s.items, key)
	return nil
}

type storeTokens struct {
	store Store
}

func (t storeTokens) Token() string {
	v, _ := t.store.GetItem(KeyToken)
	return v
}

// Tokens adapts a Store to api.TokenProvider. The token is read from the
// store on every request, mirroring how the mobile client reads AsyncStorage
// per request, so a freshly persisted login is picked up with no rewiring.
func Tokens(s Store) api.TokenProvider {
	return storeTokens{store: s}
}
