package editor

import (
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/mindbox/pkg/element"
)

// Item is one editable checklist row.
type Item struct {
	Text    string
	Checked bool
}

// Draft holds the transient editing state for a single element inside the
// compose modal. A draft belongs to exactly one editor session and is
// discarded on cancel or successful save.
type Draft struct {
	id   string
	kind element.Kind

	content  string
	problem  string
	solution string
	items    []Item
}

// NewDraft creates an empty draft of the given kind.
func NewDraft(kind element.Kind) *Draft {
	d := &Draft{id: uuid.NewString()}
	d.init(kind)
	return d
}

// DraftOf pre-populates a draft from an existing element (edit mode).
// Unknown elements produce no draft; they are not editable here.
func DraftOf(el element.Element) *Draft {
	b := &draftBuilder{}
	el.Accept(b)
	return b.draft
}

type draftBuilder struct {
	draft *Draft
}

func (b *draftBuilder) VisitText(t element.Text) {
	b.draft = NewDraft(element.KindText)
	b.draft.content = t.Content
}

func (b *draftBuilder) VisitChecklist(c element.Checklist) {
	b.draft = NewDraft(element.KindChecklist)
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, Item{Text: it.Text, Checked: it.Checked})
	}
	if len(items) == 0 {
		items = []Item{{}}
	}
	b.draft.items = items
}

func (b *draftBuilder) VisitHighlight(h element.Highlight) {
	b.draft = NewDraft(element.KindHighlight)
	b.draft.content = h.Content
}

func (b *draftBuilder) VisitProblem(p element.Problem) {
	b.draft = NewDraft(element.KindProblem)
	b.draft.problem = p.Problem
	b.draft.solution = p.Solution
}

func (b *draftBuilder) VisitAchievement(a element.Achievement) {
	b.draft = NewDraft(element.KindAchievement)
	b.draft.content = a.Content
}

func (b *draftBuilder) VisitUnknown(element.Unknown) {}

func (d *Draft) init(kind element.Kind) {
	d.kind = kind
	d.content = ""
	d.problem = ""
	d.solution = ""
	d.items = nil
	if kind == element.KindChecklist {
		d.items = []Item{{}}
	}
}

// ID is stable for the lifetime of the draft.
func (d *Draft) ID() string { return d.id }

// Kind returns the currently selected variant.
func (d *Draft) Kind() element.Kind { return d.kind }

// SetKind switches the draft to another variant, discarding every field value
// and reinitializing empty state for the new kind. Nothing carries over, even
// between variants that share a free-text field; users who switch lose what
// they typed.
func (d *Draft) SetKind(kind element.Kind) {
	if kind == d.kind {
		return
	}
	d.init(kind)
}

// Content is the free-text body for text, highlight and achievement drafts.
func (d *Draft) Content() string       { return d.content }
func (d *Draft) SetContent(s string)   { d.content = s }
func (d *Draft) Problem() string       { return d.problem }
func (d *Draft) SetProblem(s string)   { d.problem = s }
func (d *Draft) Solution() string      { return d.solution }
func (d *Draft) SetSolution(s string)  { d.solution = s }

// Items returns the checklist rows (checklist drafts only).
func (d *Draft) Items() []Item {
	return append([]Item(nil), d.items...)
}

// AddItem appends an empty checklist row and returns its index.
func (d *Draft) AddItem() int {
	d.items = append(d.items, Item{})
	return len(d.items) - 1
}

// RemoveItem deletes the row at idx. Removing the last row is allowed; the
// draft then simply fails validation when elements are collected.
func (d *Draft) RemoveItem(idx int) {
	if idx < 0 || idx >= len(d.items) {
		return
	}
	d.items = append(d.items[:idx], d.items[idx+1:]...)
}

// SetItemText updates the text of the row at idx.
func (d *Draft) SetItemText(idx int, text string) {
	if idx < 0 || idx >= len(d.items) {
		return
	}
	d.items[idx].Text = text
}

// ToggleItem flips the checked flag of the row at idx.
func (d *Draft) ToggleItem(idx int) {
	if idx < 0 || idx >= len(d.items) {
		return
	}
	d.items[idx].Checked = !d.items[idx].Checked
}

// ItemCount reports the current number of checklist rows.
func (d *Draft) ItemCount() int { return len(d.items) }

// Element builds the validated element this draft describes. ok is false when
// the draft fails its variant's persistence rules; such drafts are silently
// dropped at collection time.
func (d *Draft) Element() (element.Element, bool) {
	var el element.Element
	switch d.kind {
	case element.KindText:
		el = element.Text{Content: trimmed(d.content)}
	case element.KindHighlight:
		el = element.Highlight{Content: trimmed(d.content)}
	case element.KindAchievement:
		el = element.Achievement{Content: trimmed(d.content)}
	case element.KindProblem:
		el = element.Problem{Problem: trimmed(d.problem), Solution: trimmed(d.solution)}
	case element.KindChecklist:
		items := make([]element.ChecklistItem, 0, len(d.items))
		for _, it := range d.items {
			if text := trimmed(it.Text); text != "" {
				items = append(items, element.ChecklistItem{Text: text, Checked: it.Checked})
			}
		}
		el = element.Checklist{Items: items}
	default:
		return nil, false
	}
	if !el.Valid() {
		return nil, false
	}
	return el, true
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
