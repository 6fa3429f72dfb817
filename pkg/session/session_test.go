package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCurrentWithoutFileIsNoSession(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "session.json")}
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSaveThenCurrentRoundTrips(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "nested", "session.json")}

	if err := s.Save(Session{UserID: "owner-1", Username: "scott"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if got.UserID != "owner-1" || got.Username != "scott" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session file mode = %v", info.Mode().Perm())
	}
}

func TestSaveRequiresUserID(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "session.json")}
	if err := s.Save(Session{Username: "no-id"}); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestEmptyUserIDOnDiskIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"username":"ghost"}`), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	s := &FileStore{Path: path}
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := &FileStore{Path: filepath.Join(t.TempDir(), "session.json")}
	if err := s.Save(Session{UserID: "owner-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}
