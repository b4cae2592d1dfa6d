// ABOUTME: Token slot implementations for persisting the bearer token
// ABOUTME: File slot lives in the XDG config directory; memory slot is process-local

package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// AppName names the config directory
const AppName = "hotelbook"

// TokenFile is the file name of the persisted token slot
const TokenFile = "token.json"

// Store is a single persistent slot holding the bearer token.
// Load returns "" with a nil error when the slot is empty.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// DefaultConfigDir returns the config directory following the XDG base dir layout
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// FileStore keeps the token in a JSON file
type FileStore struct {
	dir string
	mu  sync.Mutex
}

type tokenData struct {
	Token string `json:"token"`
}

// NewFileStore creates a file-backed slot in dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the token file location
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, TokenFile)
}

// Load reads the token. Missing or unreadable JSON counts as no token.
func (s *FileStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		// Corrupt slot, treat as anonymous
		return "", nil
	}
	return td.Token, nil
}

// Save writes the token with owner-only permissions
func (s *FileStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(tokenData{Token: token})
	if err != nil {
		return err
	}

	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path())
}

// Clear removes the token file. Removing a missing file is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore keeps the token for the life of the process
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty in-process slot
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
