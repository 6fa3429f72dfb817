package tui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindbox/pkg/journal"
	"tableflip.dev/mindbox/pkg/remote"
)

// messages
type errMsg struct{ err error }
type noticeMsg struct{ text string }
type reloadedMsg struct{ notice string }
type storeEventMsg struct{ inner tea.Msg }
type fileDeletedMsg struct{ id string }

// reloadCmd refreshes the store. A failed reload keeps the last snapshot, so
// the view stays stale-but-valid and only the status line changes.
func (m *Model) reloadCmd() tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		if err := store.Reload(ctx); err != nil {
			return errMsg{err}
		}
		return reloadedMsg{}
	}
}

// saveFileCmd persists a file create/update, then refetches everything.
func (m *Model) saveFileCmd(f journal.File) tea.Cmd {
	api, store, ctx := m.api, m.store, m.ctx
	return func() tea.Msg {
		var err error
		if f.ID == "" {
			_, err = api.CreateFile(ctx, f)
		} else {
			_, err = api.UpdateFile(ctx, f)
		}
		if err != nil {
			return errMsg{err}
		}
		if err := store.Reload(ctx); err != nil {
			return errMsg{err}
		}
		return reloadedMsg{notice: "File saved"}
	}
}

// saveEntryCmd persists an entry create/update, then refetches everything.
func (m *Model) saveEntryCmd(e journal.Entry) tea.Cmd {
	api, store, ctx := m.api, m.store, m.ctx
	return func() tea.Msg {
		var err error
		if e.ID == "" {
			_, err = api.CreateEntry(ctx, e)
		} else {
			_, err = api.UpdateEntry(ctx, e)
		}
		if err != nil {
			return errMsg{err}
		}
		if err := store.Reload(ctx); err != nil {
			return errMsg{err}
		}
		return reloadedMsg{notice: "Entry saved"}
	}
}

// confirmedDeleteCmd executes the pending delete from the confirm modal.
func (m *Model) confirmedDeleteCmd() tea.Cmd {
	api, store, ctx := m.api, m.store, m.ctx
	target, id := m.confirmTarget, m.confirmID
	return func() tea.Msg {
		switch target {
		case confirmFile:
			if err := api.DeleteFile(ctx, id); err != nil {
				return errMsg{err}
			}
			if err := store.Reload(ctx); err != nil {
				return errMsg{err}
			}
			return fileDeletedMsg{id: id}
		case confirmEntry:
			if err := api.DeleteEntry(ctx, id); err != nil {
				return errMsg{err}
			}
			if err := store.Reload(ctx); err != nil {
				return errMsg{err}
			}
			return reloadedMsg{notice: "Entry deleted"}
		}
		return nil
	}
}

// friendly renders application rejections with the server's message and keeps
// transport failures terse.
func friendly(err error) string {
	if remote.IsRejected(err) {
		return err.Error()
	}
	return "ERR: " + err.Error()
}
