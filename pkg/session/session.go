package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// ErrNoSession gates access at startup: no stored session means the user must
// sign in through the web flow before the client is usable.
var ErrNoSession = errors.New("session: not signed in")

// Session is the persisted identity record for the signed-in user.
type Session struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
}

// Store is the injected session capability; the core never touches ambient
// storage directly so it stays testable without a real backend.
type Store interface {
	Current() (*Session, error)
	Save(Session) error
	Clear() error
}

// DefaultPath returns the session file location under the home directory.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("session: resolve home: %w", err)
	}
	return filepath.Join(home, ".mindbox", "session.json"), nil
}

// FileStore persists the session record as a JSON file.
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed store at path; empty path falls back to
// DefaultPath.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{Path: path}, nil
}

func (s *FileStore) Current() (*Session, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("session: read %s: %w", s.Path, err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", s.Path, err)
	}
	if sess.UserID == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *FileStore) Save(sess Session) error {
	if sess.UserID == "" {
		return errors.New("session: user id required")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("session: ensure directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
