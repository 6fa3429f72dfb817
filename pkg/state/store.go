package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindbox/pkg/element"
	"tableflip.dev/mindbox/pkg/journal"
)

// API is the slice of the sync client the store reads through.
type API interface {
	ListFiles(ctx context.Context, ownerID string) ([]journal.File, error)
	ListEntries(ctx context.Context, ownerID string) ([]journal.Entry, error)
}

// Snapshot is a consistent copy of the cached collections.
type Snapshot struct {
	Files   []journal.File
	Entries []journal.Entry
}

// ReloadedMsg is emitted on the event channel after every successful reload
// so Bubble Tea consumers re-render from fresh state.
type ReloadedMsg struct {
	Files   int
	Entries int
}

// Store is the single source of truth for the signed-in owner's files and
// entries. Reloads replace both collections under one lock; a failed reload
// leaves the previous snapshot untouched so readers always see a consistent,
// possibly stale, view.
type Store struct {
	api     API
	ownerID string

	mu      sync.RWMutex
	files   []journal.File
	entries []journal.Entry
	loaded  bool

	eventCh chan tea.Msg
}

// New creates an empty store for ownerID backed by api.
func New(api API, ownerID string) *Store {
	return &Store{
		api:     api,
		ownerID: ownerID,
		eventCh: make(chan tea.Msg, 16),
	}
}

// Events exposes the change channel for Bubble Tea subscriptions.
func (s *Store) Events() <-chan tea.Msg {
	return s.eventCh
}

// OwnerID returns the owner this store was built for.
func (s *Store) OwnerID() string {
	return s.ownerID
}

// Loaded reports whether at least one reload has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Reload fetches both collections fresh and swaps them in atomically. Either
// both collections update or neither does; incremental patching is avoided on
// purpose to keep cache drift impossible at the cost of an O(records) refetch
// after every mutation.
func (s *Store) Reload(ctx context.Context) error {
	if s.api == nil {
		return errors.New("state: no api configured")
	}
	files, err := s.api.ListFiles(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("state: reload files: %w", err)
	}
	entries, err := s.api.ListEntries(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("state: reload entries: %w", err)
	}

	s.mu.Lock()
	s.files = cloneFiles(files)
	s.entries = cloneEntries(entries)
	s.loaded = true
	s.mu.Unlock()

	s.emit(ReloadedMsg{Files: len(files), Entries: len(entries)})
	return nil
}

// Snapshot returns a copy of the current collections. Callers should treat
// the result as immutable.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Files:   cloneFiles(s.files),
		Entries: cloneEntries(s.entries),
	}
}

// Files returns the cached files in store order.
func (s *Store) Files() []journal.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFiles(s.files)
}

// FileByID looks up one cached file.
func (s *Store) FileByID(id string) (journal.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f.ID == id {
			return f, true
		}
	}
	return journal.File{}, false
}

// EntriesFor derives the per-file view: entries scoped to fileID, newest
// first, ties kept in insertion order. The view is computed on every call and
// never materialized.
func (s *Store) EntriesFor(fileID string) []journal.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]journal.Entry, 0)
	for _, e := range s.entries {
		if e.FileID == fileID {
			out = append(out, cloneEntry(e))
		}
	}
	journal.SortEntries(out)
	return out
}

// EntryCount reports how many cached entries belong to fileID.
func (s *Store) EntryCount(fileID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if e.FileID == fileID {
			n++
		}
	}
	return n
}

func (s *Store) emit(msg tea.Msg) {
	select {
	case s.eventCh <- msg:
	default:
	}
}

func cloneFiles(files []journal.File) []journal.File {
	if files == nil {
		return nil
	}
	return append([]journal.File(nil), files...)
}

func cloneEntries(entries []journal.Entry) []journal.Entry {
	if entries == nil {
		return nil
	}
	out := make([]journal.Entry, len(entries))
	for i := range entries {
		out[i] = cloneEntry(entries[i])
	}
	return out
}

func cloneEntry(e journal.Entry) journal.Entry {
	e.Elements = append(element.List(nil), e.Elements...)
	return e
}
