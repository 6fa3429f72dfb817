package state

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/mindbox/pkg/journal"
)

// fakeAPI serves canned collections and can be flipped to fail.
type fakeAPI struct {
	files   []journal.File
	entries []journal.Entry
	fail    bool
}

func (f *fakeAPI) ListFiles(ctx context.Context, ownerID string) ([]journal.File, error) {
	if f.fail {
		return nil, errors.New("boom")
	}
	return f.files, nil
}

func (f *fakeAPI) ListEntries(ctx context.Context, ownerID string) ([]journal.Entry, error) {
	if f.fail {
		return nil, errors.New("boom")
	}
	return f.entries, nil
}

func stamp(offset time.Duration) journal.Timestamp {
	base := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	return journal.Timestamp{Time: base.Add(offset)}
}

func TestReloadSwapsBothCollections(t *testing.T) {
	api := &fakeAPI{
		files:   []journal.File{{ID: "f1", Name: "Work"}},
		entries: []journal.Entry{{ID: "e1", FileID: "f1"}},
	}
	s := New(api, "owner-1")

	if s.Loaded() {
		t.Fatalf("store loaded before first reload")
	}
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !s.Loaded() {
		t.Fatalf("store not loaded after reload")
	}

	snap := s.Snapshot()
	if len(snap.Files) != 1 || len(snap.Entries) != 1 {
		t.Fatalf("snapshot = %d files, %d entries", len(snap.Files), len(snap.Entries))
	}

	select {
	case msg := <-s.Events():
		reloaded, ok := msg.(ReloadedMsg)
		if !ok {
			t.Fatalf("expected ReloadedMsg, got %T", msg)
		}
		if reloaded.Files != 1 || reloaded.Entries != 1 {
			t.Fatalf("event counts = %+v", reloaded)
		}
	default:
		t.Fatalf("expected an event after reload")
	}
}

// A failed reload must leave the previous snapshot untouched; a stale view
// beats a torn one.
func TestFailedReloadKeepsLastKnownGood(t *testing.T) {
	api := &fakeAPI{
		files:   []journal.File{{ID: "f1", Name: "Work"}},
		entries: []journal.Entry{{ID: "e1", FileID: "f1"}},
	}
	s := New(api, "owner-1")
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("seed reload: %v", err)
	}

	api.fail = true
	if err := s.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload failure")
	}

	if !s.Loaded() {
		t.Fatalf("failure cleared loaded flag")
	}
	if files := s.Files(); len(files) != 1 || files[0].ID != "f1" {
		t.Fatalf("failure disturbed files: %+v", files)
	}
	if n := s.EntryCount("f1"); n != 1 {
		t.Fatalf("failure disturbed entries: %d", n)
	}
}

// Reloading against unchanged collections must be a no-op for readers.
func TestReloadTwiceYieldsIdenticalSnapshots(t *testing.T) {
	api := &fakeAPI{
		files: []journal.File{{ID: "f1", Name: "Work"}, {ID: "f2", Name: "Home"}},
		entries: []journal.Entry{
			{ID: "e1", FileID: "f1", Created: stamp(-time.Hour)},
			{ID: "e2", FileID: "f2", Created: stamp(0)},
		},
	}
	s := New(api, "owner-1")

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("first reload: %v", err)
	}
	first := s.Snapshot()

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("second reload: %v", err)
	}
	second := s.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reload is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEntriesForScopesAndSorts(t *testing.T) {
	api := &fakeAPI{
		files: []journal.File{{ID: "f1"}, {ID: "f2"}},
		entries: []journal.Entry{
			{ID: "old", FileID: "f1", Created: stamp(-2 * time.Hour)},
			{ID: "other", FileID: "f2", Created: stamp(0)},
			{ID: "new", FileID: "f1", Created: stamp(-1 * time.Hour)},
		},
	}
	s := New(api, "owner-1")
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	got := s.EntriesFor("f1")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for f1, got %d", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("order = %q, %q", got[0].ID, got[1].ID)
	}

	if _, ok := s.FileByID("f2"); !ok {
		t.Fatalf("FileByID missed f2")
	}
	if _, ok := s.FileByID("nope"); ok {
		t.Fatalf("FileByID invented a file")
	}
}

func TestReloadReplacesRemovedRecords(t *testing.T) {
	api := &fakeAPI{
		files:   []journal.File{{ID: "f1"}, {ID: "f2"}},
		entries: []journal.Entry{{ID: "e1", FileID: "f1"}},
	}
	s := New(api, "owner-1")
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	// server deleted f2 and every entry
	api.files = []journal.File{{ID: "f1"}}
	api.entries = nil
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("second reload: %v", err)
	}

	if _, ok := s.FileByID("f2"); ok {
		t.Fatalf("deleted file survived the reload")
	}
	if n := s.EntryCount("f1"); n != 0 {
		t.Fatalf("deleted entries survived the reload: %d", n)
	}
}
