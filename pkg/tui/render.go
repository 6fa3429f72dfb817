package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mindbox/pkg/element"
	"tableflip.dev/mindbox/pkg/glyph"
	"tableflip.dev/mindbox/pkg/journal"
)

func (m Model) contentWidth() int {
	width := m.termWidth - 8
	if width < 30 {
		width = 60
	}
	return width
}

func (m Model) viewFiles() string {
	header := lipgloss.NewStyle().Bold(true).Render("MindBox")
	date := lipgloss.NewStyle().Faint(true).Render(time.Now().Format("Monday, January 2, 2006"))
	return header + "  " + date + "\n\n" + m.fileList.View()
}

func (m Model) viewFile() string {
	f, ok := m.currentFile()
	if !ok {
		return m.viewFiles()
	}

	accent := lipgloss.Color(normalizeHex(f.Color))
	name := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(f.Icon + " " + f.Name)
	hints := lipgloss.NewStyle().Foreground(lipgloss.Color(blend(f.Color, 0.55))).
		Render("o new entry · e edit file · D delete file · esc back")
	header := name + "  " + hints

	entries := m.currentEntries()
	if len(entries) == 0 {
		empty := lipgloss.NewStyle().Faint(true).Italic(true).
			Render("📝 No entries yet.\nAdd the first one with o!")
		return header + "\n\n" + empty
	}

	cards := make([]string, 0, len(entries))
	for i, e := range entries {
		cards = append(cards, m.renderEntryCard(e, i == m.entryIdx, accent))
	}
	return header + "\n\n" + strings.Join(cards, "\n")
}

// renderEntryCard draws one entry: stamp and mood on top, elements below.
// Entries from today drop the date part of the stamp.
func (m Model) renderEntryCard(e journal.Entry, selected bool, accent color.Color) string {
	width := m.contentWidth()

	stamp := ""
	if !e.Created.IsZero() {
		stamp = e.Created.Local().Format("Jan 2 15:04")
		if e.Created.SameDay(time.Now()) {
			stamp = e.Created.Local().Format("15:04")
		}
	}
	head := lipgloss.NewStyle().Faint(true).Render("🕒 "+stamp) + "  " + e.Mood.String()

	v := &blockVisitor{width: width - 4}
	for _, el := range e.Elements {
		el.Accept(v)
	}

	body := head
	if len(v.lines) > 0 {
		body += "\n" + strings.Join(v.lines, "\n")
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width)
	if selected {
		border = border.BorderForeground(accent)
	}
	return border.Render(body)
}

// blockVisitor renders each element variant with its fixed template; variants
// this client does not recognize render nothing.
type blockVisitor struct {
	width int
	lines []string
}

func (v *blockVisitor) wrap(s string) string {
	if v.width <= 0 {
		return s
	}
	return wordwrap.String(s, v.width)
}

func (v *blockVisitor) VisitText(t element.Text) {
	v.lines = append(v.lines, v.wrap(t.Content))
}

func (v *blockVisitor) VisitChecklist(c element.Checklist) {
	for _, item := range c.Items {
		box := "☐"
		if item.Checked {
			box = "☑"
		}
		v.lines = append(v.lines, v.wrap(fmt.Sprintf("%s %s", box, item.Text)))
	}
}

func (v *blockVisitor) VisitHighlight(h element.Highlight) {
	line := fmt.Sprintf("%s %s", glyph.MarkerFor(string(element.KindHighlight)), h.Content)
	v.lines = append(v.lines, lipgloss.NewStyle().Bold(true).Render(v.wrap(line)))
}

func (v *blockVisitor) VisitProblem(p element.Problem) {
	v.lines = append(v.lines, v.wrap(fmt.Sprintf("%s Problem: %s", glyph.MarkerFor(string(element.KindProblem)), p.Problem)))
	if strings.TrimSpace(p.Solution) != "" {
		v.lines = append(v.lines, v.wrap(fmt.Sprintf("   ✅ Solution: %s", p.Solution)))
	}
}

func (v *blockVisitor) VisitAchievement(a element.Achievement) {
	line := fmt.Sprintf("%s %s", glyph.MarkerFor(string(element.KindAchievement)), a.Content)
	v.lines = append(v.lines, v.wrap(line))
}

func (v *blockVisitor) VisitUnknown(element.Unknown) {}

// blend softens the accent for secondary chrome; falls back to the accent
// itself when the hex cannot be parsed.
func blend(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	white, _ := colorful.Hex("#ffffff")
	return c.BlendLab(white, amount).Hex()
}
