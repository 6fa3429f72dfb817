package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindbox/pkg/editor"
	"tableflip.dev/mindbox/pkg/element"
	"tableflip.dev/mindbox/pkg/glyph"
	"tableflip.dev/mindbox/pkg/journal"
)

// moodFocus marks the mood selector row; drafts are 0-based below it.
const moodFocus = -1

type entryModalState struct {
	session *editor.Session
	fileID  string

	draft int
	field int

	input textinput.Model
}

func newEntryModalState() entryModalState {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Prompt = ""
	return entryModalState{input: ti, draft: moodFocus}
}

// showEntryModal opens the compose modal for a new entry (e nil) or an edit.
func (m *Model) showEntryModal(e *journal.Entry) []tea.Cmd {
	if m.currentFileID == "" {
		return nil
	}
	em := &m.entryModal
	em.fileID = m.currentFileID
	if e != nil {
		em.session = editor.EditSession(*e)
	} else {
		em.session = editor.NewSession()
	}
	if em.session.Len() == 0 {
		em.session.AddDraft(element.KindText)
	}
	em.draft = 0
	em.field = 0

	m.mode = modeEntryModal
	m.status = "tab fields, ctrl+t block type, ctrl+a add block, ctrl+s save, esc cancel"

	var cmds []tea.Cmd
	cmds = append(cmds, m.loadEntryFocus()...)
	return cmds
}

// fieldsFor reports how many focusable fields a draft exposes. A checklist
// with zero rows still exposes one slot so it stays reachable for ctrl+n and
// ctrl+t.
func fieldsFor(d *editor.Draft) int {
	switch d.Kind() {
	case element.KindProblem:
		return 2
	case element.KindChecklist:
		if n := d.ItemCount(); n > 0 {
			return n
		}
		return 1
	default:
		return 1
	}
}

// commitEntryFocus writes the shared input back into the focused field.
func (m *Model) commitEntryFocus() {
	em := &m.entryModal
	if em.draft == moodFocus {
		return
	}
	d := em.session.Draft(em.draft)
	if d == nil {
		return
	}
	value := em.input.Value()
	switch d.Kind() {
	case element.KindProblem:
		if em.field == 0 {
			d.SetProblem(value)
		} else {
			d.SetSolution(value)
		}
	case element.KindChecklist:
		if em.field < d.ItemCount() {
			d.SetItemText(em.field, value)
		}
	default:
		d.SetContent(value)
	}
}

// loadEntryFocus points the shared input at the focused field.
func (m *Model) loadEntryFocus() []tea.Cmd {
	em := &m.entryModal
	em.input.Reset()
	if em.draft == moodFocus {
		em.input.Blur()
		return nil
	}
	d := em.session.Draft(em.draft)
	if d == nil {
		em.input.Blur()
		return nil
	}
	switch d.Kind() {
	case element.KindProblem:
		if em.field == 0 {
			em.input.SetValue(d.Problem())
			em.input.Placeholder = "What went wrong?"
		} else {
			em.input.SetValue(d.Solution())
			em.input.Placeholder = "Solution (optional)"
		}
	case element.KindChecklist:
		if em.field < d.ItemCount() {
			em.input.SetValue(d.Items()[em.field].Text)
		}
		em.input.Placeholder = "Checklist item"
	default:
		em.input.SetValue(d.Content())
		em.input.Placeholder = "Write something…"
	}
	em.input.CursorEnd()

	var cmds []tea.Cmd
	if cmd := em.input.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, textinput.Blink)
	return cmds
}

// moveEntryFocus walks the focus order: mood, then every field of every draft.
func (m *Model) moveEntryFocus(delta int) []tea.Cmd {
	em := &m.entryModal
	m.commitEntryFocus()

	type slot struct{ draft, field int }
	slots := []slot{{moodFocus, 0}}
	for i, d := range em.session.Drafts() {
		for f := 0; f < fieldsFor(d); f++ {
			slots = append(slots, slot{i, f})
		}
	}

	current := 0
	for i, s := range slots {
		if s.draft == em.draft && s.field == em.field {
			current = i
			break
		}
	}
	next := (current + delta + len(slots)) % len(slots)
	em.draft = slots[next].draft
	em.field = slots[next].field
	return m.loadEntryFocus()
}

func (m *Model) updateEntryModal(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd
	em := &m.entryModal

	switch msg.String() {
	case "esc":
		m.closeEntryModal("Entry cancelled")
		return cmds

	case "ctrl+s":
		m.commitEntryFocus()
		e, err := em.session.Entry(m.store.OwnerID(), em.fileID)
		if err != nil {
			if errors.Is(err, editor.ErrNoElements) {
				m.status = "Add at least one element"
			} else {
				m.status = friendly(err)
			}
			return cmds
		}
		m.closeEntryModal("Saving…")
		cmds = append(cmds, m.saveEntryCmd(e))
		return cmds

	case "tab", "enter", "down":
		return m.moveEntryFocus(1)

	case "shift+tab", "up":
		return m.moveEntryFocus(-1)

	case "left", "right":
		if em.draft == moodFocus {
			moods := glyph.Moods()
			idx := 0
			for i, mood := range moods {
				if mood == em.session.Mood() {
					idx = i
					break
				}
			}
			if msg.String() == "left" {
				idx = (idx + len(moods) - 1) % len(moods)
			} else {
				idx = (idx + 1) % len(moods)
			}
			em.session.SetMood(moods[idx])
			return cmds
		}

	case "ctrl+t":
		if d := em.session.Draft(em.draft); d != nil {
			kinds := element.Kinds()
			next := 0
			for i, k := range kinds {
				if k == d.Kind() {
					next = (i + 1) % len(kinds)
					break
				}
			}
			// Switching variants drops the draft's values on purpose.
			d.SetKind(kinds[next])
			em.field = 0
			return append(cmds, m.loadEntryFocus()...)
		}

	case "ctrl+a":
		m.commitEntryFocus()
		em.session.AddDraft(element.KindText)
		em.draft = em.session.Len() - 1
		em.field = 0
		return append(cmds, m.loadEntryFocus()...)

	case "ctrl+x":
		if d := em.session.Draft(em.draft); d != nil {
			em.session.RemoveDraft(d.ID())
			if em.draft >= em.session.Len() {
				em.draft = em.session.Len() - 1
			}
			em.field = 0
			if em.session.Len() == 0 {
				em.draft = moodFocus
			}
			return append(cmds, m.loadEntryFocus()...)
		}

	case "ctrl+n":
		if d := em.session.Draft(em.draft); d != nil && d.Kind() == element.KindChecklist {
			m.commitEntryFocus()
			em.field = d.AddItem()
			return append(cmds, m.loadEntryFocus()...)
		}

	case "ctrl+r":
		if d := em.session.Draft(em.draft); d != nil && d.Kind() == element.KindChecklist {
			// Removing the last row is allowed; the empty checklist is
			// caught at collection time, not here.
			d.RemoveItem(em.field)
			if em.field >= d.ItemCount() && em.field > 0 {
				em.field--
			}
			return append(cmds, m.loadEntryFocus()...)
		}

	case "ctrl+y":
		if d := em.session.Draft(em.draft); d != nil && d.Kind() == element.KindChecklist {
			m.commitEntryFocus()
			d.ToggleItem(em.field)
			return cmds
		}
	}

	if em.draft != moodFocus {
		var cmd tea.Cmd
		em.input, cmd = em.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m *Model) closeEntryModal(status string) {
	m.entryModal.session = nil
	m.entryModal.input.Blur()
	m.mode = modeBrowse
	m.status = status
}

func (m *Model) viewEntryModal() string {
	em := &m.entryModal
	if em.session == nil {
		return ""
	}

	title := "New entry"
	if em.session.Editing() {
		title = "Edit entry"
	}
	if f, ok := m.store.FileByID(em.fileID); ok {
		title += " · " + f.Icon + " " + f.Name
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")

	// mood selector
	mark := "  "
	if em.draft == moodFocus {
		mark = "→ "
	}
	moods := make([]string, 0, len(glyph.Moods()))
	for _, mood := range glyph.Moods() {
		if mood == em.session.Mood() {
			moods = append(moods, "["+mood.String()+"]")
		} else {
			moods = append(moods, " "+mood.String()+" ")
		}
	}
	meaning := lipgloss.NewStyle().Faint(true).Render(em.session.Mood().Glyph().Meaning)
	b.WriteString(fmt.Sprintf("%sMood  %s %s\n\n", mark, strings.Join(moods, ""), meaning))

	for i, d := range em.session.Drafts() {
		b.WriteString(m.viewDraft(i, d))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("ctrl+s save · esc cancel · ctrl+t type · ctrl+a/ctrl+x block"))

	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	return panel.Render(b.String())
}

func (m *Model) viewDraft(idx int, d *editor.Draft) string {
	em := &m.entryModal
	focused := em.draft == idx

	mark := "  "
	if focused {
		mark = "→ "
	}
	header := fmt.Sprintf("%s%s %s", mark, glyph.MarkerFor(string(d.Kind())), d.Kind())

	fieldView := func(field int, label, value string) string {
		if focused && em.field == field {
			return fmt.Sprintf("    %s %s", label, em.input.View())
		}
		if value == "" {
			value = lipgloss.NewStyle().Faint(true).Render("(empty)")
		}
		return fmt.Sprintf("    %s %s", label, value)
	}

	var body []string
	switch d.Kind() {
	case element.KindProblem:
		body = append(body,
			fieldView(0, "Problem: ", d.Problem()),
			fieldView(1, "Solution:", d.Solution()),
		)
	case element.KindChecklist:
		items := d.Items()
		if len(items) == 0 {
			body = append(body, "    "+lipgloss.NewStyle().Faint(true).Render("(no items — ctrl+n adds one)"))
		}
		for i, item := range items {
			box := "[ ]"
			if item.Checked {
				box = "[x]"
			}
			body = append(body, fieldView(i, box, item.Text))
		}
	default:
		body = append(body, fieldView(0, "", d.Content()))
	}

	return header + "\n" + strings.Join(body, "\n") + "\n"
}
