// Package credentials stores the admin session token handed out by the
// backend's login endpoint. The token is only read and written here; issuing
// and verifying it is the backend's job.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrNoToken is returned when no session token is available.
var ErrNoToken = errors.New("no session token; run 'ffadmin login'")

// Provider supplies the token attached to every admin request.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// Static is a Provider backed by a fixed token, typically from a flag or
// environment variable.
type Static string

// Token returns the static token or ErrNoToken when it is empty.
func (s Static) Token(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// Session is the persisted login state.
type Session struct {
	Token   string    `json:"token"`
	User    string    `json:"user,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// FileStore persists a Session as JSON at a fixed path.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

var _ Provider = (*FileStore)(nil)

// NewFileStore creates a store at path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Token returns the stored token or ErrNoToken.
func (s *FileStore) Token(context.Context) (string, error) {
	sess, err := s.Load()
	if err != nil {
		return "", err
	}
	if sess.Token == "" {
		return "", ErrNoToken
	}
	return sess.Token, nil
}

// Load reads the stored session. A missing file yields an empty Session.
func (s *FileStore) Load() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, err
	}

	if len(data) == 0 {
		return Session{}, nil
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Save writes sess to disk atomically with owner-only permissions.
func (s *FileStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// Clear removes the stored session. Clearing a missing session is not an
// error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Chain returns a Provider that tries each provider in order and returns the
// first token found.
func Chain(providers ...Provider) Provider {
	return chain(providers)
}

type chain []Provider

func (c chain) Token(ctx context.Context) (string, error) {
	for _, p := range c {
		tok, err := p.Token(ctx)
		if err == nil {
			return tok, nil
		}
		if !errors.Is(err, ErrNoToken) {
			return "", err
		}
	}
	return "", ErrNoToken
}
