package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindbox/pkg/glyph"
	"tableflip.dev/mindbox/pkg/journal"
	"tableflip.dev/mindbox/pkg/state"
)

// fakeBackend implements both the store's read API and the UI's mutation API.
type fakeBackend struct {
	files   []journal.File
	entries []journal.Entry

	createdFiles   int
	createdEntries int
}

func (f *fakeBackend) ListFiles(ctx context.Context, ownerID string) ([]journal.File, error) {
	return f.files, nil
}

func (f *fakeBackend) ListEntries(ctx context.Context, ownerID string) ([]journal.Entry, error) {
	return f.entries, nil
}

func (f *fakeBackend) CreateFile(ctx context.Context, file journal.File) (*journal.File, error) {
	f.createdFiles++
	file.ID = "created"
	f.files = append(f.files, file)
	return &file, nil
}

func (f *fakeBackend) UpdateFile(ctx context.Context, file journal.File) (*journal.File, error) {
	return &file, nil
}

func (f *fakeBackend) DeleteFile(ctx context.Context, id string) error {
	for i, file := range f.files {
		if file.ID == id {
			f.files = append(f.files[:i], f.files[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeBackend) CreateEntry(ctx context.Context, e journal.Entry) (*journal.Entry, error) {
	f.createdEntries++
	e.ID = fmt.Sprintf("e-created-%d", f.createdEntries)
	e.Created = journal.Timestamp{Time: time.Now()}
	f.entries = append(f.entries, e)
	return &e, nil
}

func (f *fakeBackend) UpdateEntry(ctx context.Context, e journal.Entry) (*journal.Entry, error) {
	return &e, nil
}

func (f *fakeBackend) DeleteEntry(ctx context.Context, id string) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	return nil
}

func newTestModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	st := state.New(backend, "owner-1")
	if err := st.Reload(context.Background()); err != nil {
		t.Fatalf("seed reload: %v", err)
	}
	m := New(backend, st)
	m.syncFromStore()
	return m
}

func press(t *testing.T, m Model, msg tea.KeyPressMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: s, Code: rune(s[0])}
}

// runCmd presses a key that must queue exactly one command, executes it, and
// feeds the resulting message back through Update.
func runCmd(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	if cmd == nil {
		t.Fatalf("expected a command from %T", msg)
	}
	next, _ = got.Update(cmd())
	return next.(Model)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyPressMsg{Text: string(r), Code: r})
	}
	return m
}

func testEntry(id, fileID string, age time.Duration) journal.Entry {
	return journal.Entry{
		ID:      id,
		FileID:  fileID,
		Created: journal.Timestamp{Time: time.Now().Add(-age)},
	}
}

func TestEnterOpensSelectedFile(t *testing.T) {
	backend := &fakeBackend{
		files:   []journal.File{{ID: "f1", Name: "Work", Icon: "📁", Color: "#9d4edd"}},
		entries: []journal.Entry{testEntry("e1", "f1", time.Hour)},
	}
	m := newTestModel(t, backend)

	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.screen != screenFile {
		t.Fatalf("enter did not open the file")
	}
	if m.currentFileID != "f1" {
		t.Fatalf("currentFileID = %q", m.currentFileID)
	}

	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.screen != screenFiles {
		t.Fatalf("esc did not return to the grid")
	}
	if m.currentFileID != "" {
		t.Fatalf("file selection survived the back navigation")
	}
}

func TestEnterOnTrailingItemOpensFileModal(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	// the only row is the "new file" affordance
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeFileModal {
		t.Fatalf("expected file modal, mode = %d", m.mode)
	}
}

func TestFileModalBlocksEmptyName(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	m = press(t, m, key("o"))
	if m.mode != modeFileModal {
		t.Fatalf("o did not open the file modal")
	}

	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeFileModal {
		t.Fatalf("empty name should keep the modal open")
	}
	if m.status != "File name required" {
		t.Fatalf("status = %q", m.status)
	}
	if backend.createdFiles != 0 {
		t.Fatalf("blocking validation still hit the network")
	}
}

func TestEntryModalBlocksSaveWithoutElements(t *testing.T) {
	backend := &fakeBackend{
		files: []journal.File{{ID: "f1", Name: "Work"}},
	}
	m := newTestModel(t, backend)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter}) // open file
	m = press(t, m, key("o"))                            // compose
	if m.mode != modeEntryModal {
		t.Fatalf("o did not open the entry modal")
	}

	m = press(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if m.mode != modeEntryModal {
		t.Fatalf("save with no valid elements should keep the modal open")
	}
	if m.status != "Add at least one element" {
		t.Fatalf("status = %q", m.status)
	}
	if backend.createdEntries != 0 {
		t.Fatalf("blocking validation still hit the network")
	}
}

func TestDeletedOpenFileFallsBackToGrid(t *testing.T) {
	backend := &fakeBackend{
		files: []journal.File{{ID: "f1", Name: "Work"}},
	}
	m := newTestModel(t, backend)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.screen != screenFile {
		t.Fatalf("setup: file not open")
	}

	// server side: the file is gone
	backend.files = nil
	if err := m.store.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	next, _ := m.Update(fileDeletedMsg{id: "f1"})
	m = next.(Model)
	if m.screen != screenFiles {
		t.Fatalf("deleting the open file should land on the grid")
	}
	if m.status != "File deleted" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestEntryCursorMovesAndClamps(t *testing.T) {
	backend := &fakeBackend{
		files: []journal.File{{ID: "f1", Name: "Work"}},
		entries: []journal.Entry{
			testEntry("e1", "f1", 1*time.Hour),
			testEntry("e2", "f1", 2*time.Hour),
		},
	}
	m := newTestModel(t, backend)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	m = press(t, m, key("j"))
	if m.entryIdx != 1 {
		t.Fatalf("j did not advance, idx = %d", m.entryIdx)
	}
	m = press(t, m, key("j"))
	if m.entryIdx != 1 {
		t.Fatalf("cursor ran past the last entry, idx = %d", m.entryIdx)
	}
	m = press(t, m, key("k"))
	if m.entryIdx != 0 {
		t.Fatalf("k did not move back, idx = %d", m.entryIdx)
	}
	m = press(t, m, key("G"))
	if m.entryIdx != 1 {
		t.Fatalf("G did not jump to the end, idx = %d", m.entryIdx)
	}
	m = press(t, m, key("g"))
	if m.entryIdx != 0 {
		t.Fatalf("g did not jump to the top, idx = %d", m.entryIdx)
	}
}

func TestConfirmCancelKeepsRecord(t *testing.T) {
	backend := &fakeBackend{
		files: []journal.File{{ID: "f1", Name: "Work"}},
	}
	m := newTestModel(t, backend)

	m = press(t, m, key("x"))
	if m.mode != modeConfirm || m.confirmTarget != confirmFile {
		t.Fatalf("x did not open the confirm modal")
	}
	m = press(t, m, key("n"))
	if m.mode != modeBrowse {
		t.Fatalf("n did not close the confirm modal")
	}
	if m.status != "Delete cancelled" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestEditOpenFileFromHeader(t *testing.T) {
	backend := &fakeBackend{
		files: []journal.File{{ID: "f1", Name: "Work", Icon: "📁", Color: "#9d4edd"}},
	}
	m := newTestModel(t, backend)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	m = press(t, m, key("e"))
	if m.mode != modeFileModal {
		t.Fatalf("e did not open the file modal, mode = %d", m.mode)
	}
	if m.fileModal.editID != "f1" {
		t.Fatalf("modal edits %q, want the open file", m.fileModal.editID)
	}
	if m.fileModal.name.Value() != "Work" {
		t.Fatalf("name not pre-populated: %q", m.fileModal.name.Value())
	}
}

func TestDeleteOpenFileFromHeader(t *testing.T) {
	backend := &fakeBackend{
		files:   []journal.File{{ID: "f1", Name: "Work"}},
		entries: []journal.Entry{testEntry("e1", "f1", time.Hour)},
	}
	m := newTestModel(t, backend)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	m = press(t, m, key("D"))
	if m.mode != modeConfirm || m.confirmTarget != confirmFile || m.confirmID != "f1" {
		t.Fatalf("D did not target the open file: mode=%d target=%d id=%q",
			m.mode, m.confirmTarget, m.confirmID)
	}

	m = runCmd(t, m, key("y"))
	if m.screen != screenFiles {
		t.Fatalf("deleting the open file should land on the grid")
	}
	if m.status != "File deleted" {
		t.Fatalf("status = %q", m.status)
	}
}

// Full flow: make a file, open it, compose an entry, and see it rendered.
func TestCreateFileThenEntryShowsContent(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	m = press(t, m, key("o"))
	m = typeText(t, m, "Work")
	m = runCmd(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if backend.createdFiles != 1 {
		t.Fatalf("file never reached the backend")
	}

	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.screen != screenFile || m.currentFileID != "created" {
		t.Fatalf("created file not open: screen=%d id=%q", m.screen, m.currentFileID)
	}

	m = press(t, m, key("o"))
	if m.mode != modeEntryModal {
		t.Fatalf("o did not open the entry modal")
	}
	m = typeText(t, m, "hello")
	m = runCmd(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if backend.createdEntries != 1 {
		t.Fatalf("entry never reached the backend")
	}

	if out := m.View(); !strings.Contains(out, "hello") {
		t.Fatalf("saved entry not rendered:\n%s", out)
	}
}

func TestEntryModalShowsMoodMeaning(t *testing.T) {
	backend := &fakeBackend{
		files: []journal.File{{ID: "f1", Name: "Work"}},
	}
	m := newTestModel(t, backend)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = press(t, m, key("o"))

	if out := m.View(); !strings.Contains(out, glyph.Happy.Glyph().Meaning) {
		t.Fatalf("mood meaning missing from modal:\n%s", out)
	}
}

func TestEntryStampDropsDateForToday(t *testing.T) {
	now := time.Now()
	old := now.Add(-72 * time.Hour)
	backend := &fakeBackend{
		files: []journal.File{{ID: "f1", Name: "Work", Color: "#9d4edd"}},
		entries: []journal.Entry{
			{ID: "today", FileID: "f1", Created: journal.Timestamp{Time: now}},
			{ID: "older", FileID: "f1", Created: journal.Timestamp{Time: old}},
		},
	}
	m := newTestModel(t, backend)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	out := m.View()
	if !strings.Contains(out, old.Local().Format("Jan 2 15:04")) {
		t.Fatalf("older entry should keep its date:\n%s", out)
	}
	if strings.Contains(out, now.Local().Format("Jan 2 15:04")) {
		t.Fatalf("today's entry should drop the date:\n%s", out)
	}
	if !strings.Contains(out, now.Local().Format("15:04")) {
		t.Fatalf("today's entry should show its time:\n%s", out)
	}
}

func TestViewShowsEmptyFileState(t *testing.T) {
	backend := &fakeBackend{
		files: []journal.File{{ID: "f1", Name: "Work", Icon: "📁", Color: "#9d4edd"}},
	}
	m := newTestModel(t, backend)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	out := m.View()
	if !strings.Contains(out, "No entries yet") {
		t.Fatalf("empty state missing from view:\n%s", out)
	}
	if !strings.Contains(out, "Work") {
		t.Fatalf("file header missing from view:\n%s", out)
	}
}
