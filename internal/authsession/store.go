package authsession

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore is the durable home of the bearer token. Absence of a token
// means unauthenticated.
type TokenStore interface {
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token as a plain string in a single file, the client
// analogue of the fixed localStorage key the API's web frontend uses.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the given path. The parent
// directory is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token reads the persisted token. False when the file is missing or empty.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Save persists the token with owner-only permissions.
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("authsession: create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("authsession: write token: %w", err)
	}
	return nil
}

// Clear removes the token file. Removing an absent file is not an error;
// logout is idempotent.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("authsession: remove token: %w", err)
	}
	return nil
}
