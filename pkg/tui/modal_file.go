package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/mindbox/pkg/journal"
)

// palettes shown in the file modal; an edited file with styling outside the
// palette keeps its values by prepending them.
var (
	iconOptions = []string{"📁", "📝", "💼", "🏠", "💡", "🎯", "📚", "❤️"}

	colorOptions = []string{
		"#9d4edd", "#f72585", "#4cc9f0", "#4895ef",
		"#43aa8b", "#f9c74f", "#f8961e", "#ef476f",
	}
)

const (
	fileFieldName = iota
	fileFieldIcon
	fileFieldColor
)

type fileModalState struct {
	editID string
	name   textinput.Model
	icons  []string
	colors []string
	icon   int
	color  int
	focus  int
}

// showFileModal opens the modal empty (create) or pre-populated (edit).
func (m *Model) showFileModal(f *journal.File) {
	fm := &m.fileModal
	fm.editID = ""
	fm.icons = append([]string(nil), iconOptions...)
	fm.colors = append([]string(nil), colorOptions...)
	fm.icon = 0
	fm.color = 0
	fm.focus = fileFieldName
	fm.name.Reset()
	fm.name.Placeholder = "File name"

	if f != nil {
		fm.editID = f.ID
		fm.name.SetValue(f.Name)
		fm.name.CursorEnd()
		fm.icon = indexOrPrepend(&fm.icons, f.Icon)
		fm.color = indexOrPrepend(&fm.colors, normalizeHex(f.Color))
	}

	fm.name.Focus()
	m.mode = modeFileModal
	m.status = "tab fields, ←/→ pick, enter save, esc cancel"
}

func indexOrPrepend(options *[]string, value string) int {
	if value == "" {
		return 0
	}
	for i, opt := range *options {
		if opt == value {
			return i
		}
	}
	*options = append([]string{value}, *options...)
	return 0
}

// normalizeHex keeps only colors go-colorful can parse; anything else falls
// back to the default so rendering never chokes on store data.
func normalizeHex(hex string) string {
	if c, err := colorful.Hex(hex); err == nil {
		return c.Hex()
	}
	return journal.DefaultColor
}

func (m *Model) updateFileModal(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd
	fm := &m.fileModal

	switch msg.String() {
	case "esc":
		m.closeFileModal("File cancelled")
		return cmds
	case "enter", "ctrl+s":
		name := strings.TrimSpace(fm.name.Value())
		if name == "" {
			m.status = "File name required"
			return cmds
		}
		f := journal.File{
			ID:      fm.editID,
			OwnerID: m.store.OwnerID(),
			Name:    name,
			Icon:    fm.icons[fm.icon],
			Color:   fm.colors[fm.color],
		}.Normalize()
		m.closeFileModal("Saving…")
		cmds = append(cmds, m.saveFileCmd(f))
		return cmds
	case "tab", "down":
		fm.setFocus((fm.focus + 1) % 3)
		return cmds
	case "shift+tab", "up":
		fm.setFocus((fm.focus + 2) % 3)
		return cmds
	case "left":
		switch fm.focus {
		case fileFieldIcon:
			fm.icon = (fm.icon + len(fm.icons) - 1) % len(fm.icons)
		case fileFieldColor:
			fm.color = (fm.color + len(fm.colors) - 1) % len(fm.colors)
		}
		if fm.focus != fileFieldName {
			return cmds
		}
	case "right":
		switch fm.focus {
		case fileFieldIcon:
			fm.icon = (fm.icon + 1) % len(fm.icons)
		case fileFieldColor:
			fm.color = (fm.color + 1) % len(fm.colors)
		}
		if fm.focus != fileFieldName {
			return cmds
		}
	}

	if fm.focus == fileFieldName {
		var cmd tea.Cmd
		fm.name, cmd = fm.name.Update(msg)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (fm *fileModalState) setFocus(focus int) {
	fm.focus = focus
	if focus == fileFieldName {
		fm.name.Focus()
	} else {
		fm.name.Blur()
	}
}

func (m *Model) closeFileModal(status string) {
	m.fileModal.name.Blur()
	m.mode = modeBrowse
	m.status = status
}

func (m *Model) viewFileModal() string {
	fm := &m.fileModal

	title := "New file"
	if fm.editID != "" {
		title = "Edit file"
	}

	focusMark := func(field int) string {
		if fm.focus == field {
			return "→ "
		}
		return "  "
	}

	icons := make([]string, 0, len(fm.icons))
	for i, icon := range fm.icons {
		if i == fm.icon {
			icons = append(icons, "["+icon+"]")
		} else {
			icons = append(icons, " "+icon+" ")
		}
	}

	colors := make([]string, 0, len(fm.colors))
	for i, hex := range fm.colors {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
		if i == fm.color {
			colors = append(colors, "["+swatch+"]")
		} else {
			colors = append(colors, " "+swatch+" ")
		}
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(title),
		"",
		fmt.Sprintf("%sName  %s", focusMark(fileFieldName), fm.name.View()),
		fmt.Sprintf("%sIcon  %s", focusMark(fileFieldIcon), strings.Join(icons, "")),
		fmt.Sprintf("%sColor %s", focusMark(fileFieldColor), strings.Join(colors, "")),
		"",
		lipgloss.NewStyle().Faint(true).Render("enter save · esc cancel"),
	}

	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	return panel.Render(strings.Join(lines, "\n"))
}
