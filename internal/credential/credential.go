// ABOUTME: Persisted bearer credential for the job board API
// ABOUTME: File-backed store in the XDG config directory plus an in-memory store

package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FileName is the fixed name of the persisted credential inside the config directory
const FileName = "token"

// Store holds the single opaque bearer credential
type Store interface {
	Token() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore persists the credential as a single file readable only by the owner
type FileStore struct {
	configDir string
	mu        sync.Mutex
}

// NewFileStore creates a FileStore rooted at configDir
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// Path returns the location of the credential file
func (s *FileStore) Path() string {
	return filepath.Join(s.configDir, FileName)
}

// Token reads the credential. A missing file is an empty credential.
func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading credential: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the credential, replacing any previous one
func (s *FileStore) Save(token string) error {
	if token == "" {
		return errors.New("refusing to save an empty credential")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.configDir == "" {
		return errors.New("no config directory available")
	}
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write to a temp file and rename so a crash never leaves a partial token
	tmp, err := os.CreateTemp(s.configDir, FileName+".*")
	if err != nil {
		return fmt.Errorf("writing credential: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing credential: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing credential: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing credential: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing credential: %w", err)
	}
	return nil
}

// Clear removes the credential. Clearing an absent credential is a no-op.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credential: %w", err)
	}
	return nil
}

// MemoryStore keeps the credential in process memory only
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a MemoryStore holding token (may be empty)
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	if token == "" {
		return errors.New("refusing to save an empty credential")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Expiry returns the exp claim when the token happens to be a JWT.
// The signature is not verified; the result is for display only.
func Expiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
