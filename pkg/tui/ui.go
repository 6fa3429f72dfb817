package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindbox/pkg/journal"
	"tableflip.dev/mindbox/pkg/state"
)

// API is the slice of the sync client the UI mutates through. Reads go
// through the state store only.
type API interface {
	CreateFile(ctx context.Context, f journal.File) (*journal.File, error)
	UpdateFile(ctx context.Context, f journal.File) (*journal.File, error)
	DeleteFile(ctx context.Context, id string) error
	CreateEntry(ctx context.Context, e journal.Entry) (*journal.Entry, error)
	UpdateEntry(ctx context.Context, e journal.Entry) (*journal.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// screen is the selection state machine: the file grid or one open file.
type screen int

const (
	screenFiles screen = iota
	screenFile
)

// mode layers the modal subsystem over the current screen. Only one modal is
// open at a time by construction.
type mode int

const (
	modeBrowse mode = iota
	modeFileModal
	modeEntryModal
	modeConfirm
	modeHelp
)

type confirmTarget int

const (
	confirmNone confirmTarget = iota
	confirmFile
	confirmEntry
)

// file list rows
type fileItem struct {
	file  journal.File
	count int
}

func (it fileItem) Title() string { return fmt.Sprintf("%s %s", it.file.Icon, it.file.Name) }
func (it fileItem) Description() string {
	label := entryCountLabel(it.count)
	if it.count > 0 {
		label += " • active"
	}
	return label
}
func (it fileItem) FilterValue() string { return it.file.Name }

// addFileItem is the trailing "new file" affordance.
type addFileItem struct{}

func (addFileItem) Title() string       { return "＋ New file" }
func (addFileItem) Description() string { return "create a folder for entries" }
func (addFileItem) FilterValue() string { return "new file" }

func entryCountLabel(count int) string {
	if count == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", count)
}

// Model contains UI state.
type Model struct {
	api   API
	store *state.Store
	ctx   context.Context

	screen screen
	mode   mode

	fileList      list.Model
	currentFileID string
	entryIdx      int

	fileModal  fileModalState
	entryModal entryModalState

	confirmTarget confirmTarget
	confirmID     string
	confirmLabel  string

	status string

	awaitingDD bool
	lastDTime  time.Time

	termWidth  int
	termHeight int
}

// New creates a UI model over the injected store and client.
func New(api API, store *state.Store) Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 48, 20)
	l.Title = "Files"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	ti := textinput.New()
	ti.Placeholder = "Type here"
	ti.CharLimit = 256
	ti.Prompt = ""

	return Model{
		api:      api,
		store:    store,
		ctx:      context.Background(),
		screen:   screenFiles,
		mode:     modeBrowse,
		fileList: l,
		fileModal: fileModalState{
			name: ti,
		},
		entryModal: newEntryModalState(),
		status:     browseHelpFiles,
	}
}

const (
	browseHelpFiles = "j/k move, enter open, o new file, i edit, dd delete, r reload, ? help, q quit"
	browseHelpFile  = "j/k move, o new entry, i edit, dd delete, e edit file, D delete file, esc back, ? help"
)

// Init loads initial data and starts the store event subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reloadCmd(), m.waitForStoreEvent())
}

// waitForStoreEvent re-arms the informer subscription on every event.
func (m *Model) waitForStoreEvent() tea.Cmd {
	ch := m.store.Events()
	return func() tea.Msg {
		return storeEventMsg{inner: <-ch}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()

	case errMsg:
		m.status = friendly(msg.err)

	case noticeMsg:
		m.status = msg.text

	case storeEventMsg:
		m.syncFromStore()
		cmds = append(cmds, m.waitForStoreEvent())

	case reloadedMsg:
		m.syncFromStore()
		if msg.notice != "" {
			m.status = msg.notice
		}

	case fileDeletedMsg:
		// Deleting the open file lands back on the grid.
		if m.screen == screenFile && m.currentFileID == msg.id {
			m.backToFiles()
		}
		m.syncFromStore()
		m.status = "File deleted"

	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeBrowse
				skipListRouting = true
			}
		case modeConfirm:
			skipListRouting = true
			switch msg.String() {
			case "y", "enter":
				cmds = append(cmds, m.confirmedDeleteCmd())
				m.mode = modeBrowse
				m.confirmTarget = confirmNone
			case "n", "esc", "q":
				m.mode = modeBrowse
				m.confirmTarget = confirmNone
				m.status = "Delete cancelled"
			}
		case modeFileModal:
			skipListRouting = true
			cmds = append(cmds, m.updateFileModal(msg)...)
		case modeEntryModal:
			skipListRouting = true
			cmds = append(cmds, m.updateEntryModal(msg)...)
		case modeBrowse:
			skip, browseCmds := m.updateBrowse(msg)
			skipListRouting = skip
			cmds = append(cmds, browseCmds...)
		}
	}

	// non-key messages (cursor blink, etc.) still reach the focused input
	if _, isKey := msg.(tea.KeyPressMsg); !isKey {
		switch m.mode {
		case modeFileModal:
			var cmd tea.Cmd
			m.fileModal.name, cmd = m.fileModal.name.Update(msg)
			cmds = append(cmds, cmd)
		case modeEntryModal:
			var cmd tea.Cmd
			m.entryModal.input, cmd = m.entryModal.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.mode == modeBrowse && m.screen == screenFiles && !skipListRouting {
		var cmd tea.Cmd
		m.fileList, cmd = m.fileList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateBrowse handles normal-mode navigation for both screens.
func (m *Model) updateBrowse(msg tea.KeyPressMsg) (bool, []tea.Cmd) {
	var cmds []tea.Cmd
	switch msg.String() {
	case "?":
		m.mode = modeHelp
		return true, cmds
	case "r":
		cmds = append(cmds, m.reloadCmd())
		return true, cmds
	case "q":
		if m.screen == screenFile {
			m.backToFiles()
			return true, cmds
		}
		cmds = append(cmds, tea.Quit)
		return true, cmds
	case "esc", "h", "left":
		if m.screen == screenFile {
			m.backToFiles()
			return true, cmds
		}
	case "j", "down":
		if m.screen == screenFile {
			if m.entryIdx < len(m.currentEntries())-1 {
				m.entryIdx++
			}
			return true, cmds
		}
	case "k", "up":
		if m.screen == screenFile {
			if m.entryIdx > 0 {
				m.entryIdx--
			}
			return true, cmds
		}
	case "enter", "l", "right":
		if m.screen == screenFiles {
			switch it := m.fileList.SelectedItem().(type) {
			case fileItem:
				m.openFile(it.file)
			case addFileItem:
				m.showFileModal(nil)
			}
			return true, cmds
		}
	case "o", "O":
		if m.screen == screenFiles {
			m.showFileModal(nil)
		} else {
			cmds = append(cmds, m.showEntryModal(nil)...)
		}
		return true, cmds
	case "i":
		if m.screen == screenFiles {
			if it, ok := m.fileList.SelectedItem().(fileItem); ok {
				f := it.file
				m.showFileModal(&f)
			}
		} else if e := m.currentEntry(); e != nil {
			cmds = append(cmds, m.showEntryModal(e)...)
		}
		return true, cmds
	case "e":
		if m.screen == screenFile {
			if f, ok := m.currentFile(); ok {
				m.showFileModal(&f)
			}
			return true, cmds
		}
	case "D":
		if m.screen == screenFile {
			if f, ok := m.currentFile(); ok {
				m.askDeleteFile(f)
			}
			return true, cmds
		}
	case "d":
		if m.awaitingDD && time.Since(m.lastDTime) < 600*time.Millisecond {
			m.awaitingDD = false
			m.askDelete()
		} else {
			m.awaitingDD = true
			m.lastDTime = time.Now()
		}
		return true, cmds
	case "x":
		m.askDelete()
		return true, cmds
	case "g":
		if m.screen == screenFile {
			m.entryIdx = 0
			return true, cmds
		}
	case "G":
		if m.screen == screenFile {
			if n := len(m.currentEntries()); n > 0 {
				m.entryIdx = n - 1
			}
			return true, cmds
		}
	}
	return false, cmds
}

// askDelete opens the confirm modal for the current selection. Deleting the
// open file itself is a separate keybinding, D.
func (m *Model) askDelete() {
	if m.screen == screenFiles {
		if it, ok := m.fileList.SelectedItem().(fileItem); ok {
			m.askDeleteFile(it.file)
		}
		return
	}
	if m.screen == screenFile {
		if m.currentEntry() != nil {
			m.mode = modeConfirm
			m.confirmTarget = confirmEntry
			m.confirmID = m.currentEntry().ID
			m.confirmLabel = "Delete this entry?"
		}
	}
}

func (m *Model) askDeleteFile(f journal.File) {
	m.mode = modeConfirm
	m.confirmTarget = confirmFile
	m.confirmID = f.ID
	m.confirmLabel = fmt.Sprintf("Delete file %q and all of its entries?", f.Name)
}

func (m *Model) openFile(f journal.File) {
	m.screen = screenFile
	m.currentFileID = f.ID
	m.entryIdx = 0
	m.status = browseHelpFile
}

func (m *Model) backToFiles() {
	m.screen = screenFiles
	m.currentFileID = ""
	m.entryIdx = 0
	m.status = browseHelpFiles
}

// currentFile resolves the open file from the store; ok is false when a
// reload dropped it.
func (m *Model) currentFile() (journal.File, bool) {
	if m.currentFileID == "" {
		return journal.File{}, false
	}
	return m.store.FileByID(m.currentFileID)
}

func (m *Model) currentEntries() []journal.Entry {
	if m.currentFileID == "" {
		return nil
	}
	return m.store.EntriesFor(m.currentFileID)
}

func (m *Model) currentEntry() *journal.Entry {
	entries := m.currentEntries()
	if m.entryIdx < 0 || m.entryIdx >= len(entries) {
		return nil
	}
	return &entries[m.entryIdx]
}

// syncFromStore rebuilds view state after the cache changed underneath us.
func (m *Model) syncFromStore() {
	files := m.store.Files()
	items := make([]list.Item, 0, len(files)+1)
	for _, f := range files {
		items = append(items, fileItem{file: f, count: m.store.EntryCount(f.ID)})
	}
	items = append(items, addFileItem{})
	m.fileList.SetItems(items)
	if m.fileList.Index() < 0 && len(items) > 0 {
		m.fileList.Select(0)
	}

	if m.screen == screenFile {
		if _, ok := m.currentFile(); !ok {
			m.backToFiles()
			return
		}
		if n := len(m.currentEntries()); m.entryIdx >= n && n > 0 {
			m.entryIdx = n - 1
		} else if n == 0 {
			m.entryIdx = 0
		}
	}
}

// applySizes recalculates layout bounds from the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	width := m.termWidth - 4
	if width < 30 {
		width = 30
	}
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.fileList.SetSize(width, height)
}

// View renders the current screen plus any open modal and the status line.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeFileModal:
		body = m.viewFileModal()
	case modeEntryModal:
		body = m.viewEntryModal()
	default:
		if m.screen == screenFiles {
			body = m.viewFiles()
		} else {
			body = m.viewFile()
		}
		if m.mode == modeConfirm {
			panel := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2)
			body += "\n\n" + panel.Render(m.confirmLabel+"\n\ny confirm / n cancel")
		}
		if m.mode == modeHelp {
			body += "\n\n" + lipgloss.NewStyle().Italic(true).Render(helpText)
		}
	}

	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.status)
	return body + "\n\n" + status
}

const helpText = `Files:   enter open, o new, i edit, dd delete
Entries: o new, i edit, dd delete, e edit file, D delete file, esc back
Modals:  tab/shift+tab fields, ctrl+t switch block type, ctrl+s save, esc cancel
Blocks:  ctrl+a add block, ctrl+x remove block, ctrl+n/ctrl+r add/remove item, ctrl+y toggle item`

// Run starts the full-screen program.
func Run(api API, store *state.Store) error {
	p := tea.NewProgram(New(api, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
