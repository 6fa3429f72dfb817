package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindbox/pkg/element"
	"tableflip.dev/mindbox/pkg/glyph"
	"tableflip.dev/mindbox/pkg/journal"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// Files prints one row per file with its entry count; counts > 0 get the
// active badge.
func (pp *PrettyPrint) Files(files []journal.File, counts map[string]int) {
	if len(files) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, f := range files {
		count := counts[f.ID]
		badge := ""
		if count > 0 {
			badge = "active"
		}
		if pp.ShowID {
			tbl.AddRow(f.ID, f.Icon, f.Name, entryCountLabel(count), badge)
		} else {
			tbl.AddRow(f.Icon, f.Name, entryCountLabel(count), badge)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Entries prints a file header followed by its entries, newest first.
func (pp *PrettyPrint) Entries(file journal.File, entries []journal.Entry) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Printf("%s %s", file.Icon, file.Name)
	_, _ = c.Printf(" - %s\n", entryCountLabel(len(entries)))

	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" no entries yet\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Print(e.ID)
			_, _ = y.Print(strings.Repeat(" ", max(len(spacing)-len(e.ID), 1)))
		}
		stamp := ""
		if !e.Created.IsZero() {
			stamp = e.Created.Local().Format("2006-01-02 15:04")
		}
		_, _ = y.Printf("🕒 %s %s\n", stamp, e.Mood)
		v := &lineVisitor{showID: pp.ShowID}
		for _, el := range e.Elements {
			el.Accept(v)
		}
		for _, line := range v.lines {
			fmt.Println(line)
		}
		fmt.Println("")
	}
}

func entryCountLabel(count int) string {
	switch count {
	case 1:
		return "1 entry"
	default:
		return fmt.Sprintf("%d entries", count)
	}
}

// lineVisitor flattens elements into indented terminal lines.
type lineVisitor struct {
	showID bool
	lines  []string
}

func (v *lineVisitor) add(line string) {
	indent := "  "
	if v.showID {
		indent = spacing + "  "
	}
	v.lines = append(v.lines, indent+line)
}

func (v *lineVisitor) VisitText(t element.Text) {
	v.add(fmt.Sprintf("%s %s", glyph.MarkerFor(string(element.KindText)), t.Content))
}

func (v *lineVisitor) VisitChecklist(c element.Checklist) {
	for _, item := range c.Items {
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		v.add(fmt.Sprintf("%s %s", box, item.Text))
	}
}

func (v *lineVisitor) VisitHighlight(h element.Highlight) {
	v.add(fmt.Sprintf("%s %s", glyph.MarkerFor(string(element.KindHighlight)), h.Content))
}

func (v *lineVisitor) VisitProblem(p element.Problem) {
	v.add(fmt.Sprintf("%s %s", glyph.MarkerFor(string(element.KindProblem)), p.Problem))
	if strings.TrimSpace(p.Solution) != "" {
		v.add(fmt.Sprintf("   ✅ %s", p.Solution))
	}
}

func (v *lineVisitor) VisitAchievement(a element.Achievement) {
	v.add(fmt.Sprintf("%s %s", glyph.MarkerFor(string(element.KindAchievement)), a.Content))
}

// Unrecognized variants print nothing.
func (v *lineVisitor) VisitUnknown(element.Unknown) {}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
