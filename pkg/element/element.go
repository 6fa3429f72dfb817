package element

import "strings"

// Kind discriminates element variants on the wire.
type Kind string

const (
	KindText        Kind = "text"
	KindChecklist   Kind = "checklist"
	KindHighlight   Kind = "highlight"
	KindProblem     Kind = "problem"
	KindAchievement Kind = "achievement"
)

// Kinds returns the editable variants in selector order.
func Kinds() []Kind {
	return []Kind{KindText, KindChecklist, KindHighlight, KindProblem, KindAchievement}
}

// Element is one typed content block inside an entry. The set of variants is
// closed; consumers dispatch through Visitor so a new variant is a
// compile-time change at every switch site.
type Element interface {
	Kind() Kind
	// Valid reports whether the element may be persisted per the
	// per-variant rules. Invalid elements are silently dropped when the
	// editor collects its drafts.
	Valid() bool
	Accept(v Visitor)
}

// Visitor has one method per element variant.
type Visitor interface {
	VisitText(Text)
	VisitChecklist(Checklist)
	VisitHighlight(Highlight)
	VisitProblem(Problem)
	VisitAchievement(Achievement)
	VisitUnknown(Unknown)
}

// Text is a free-form prose block.
type Text struct {
	Content string `json:"content"`
}

func (t Text) Kind() Kind       { return KindText }
func (t Text) Valid() bool      { return strings.TrimSpace(t.Content) != "" }
func (t Text) Accept(v Visitor) { v.VisitText(t) }

// ChecklistItem is one row of a checklist.
type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Checklist is an ordered list of checkable items.
type Checklist struct {
	Items []ChecklistItem `json:"items"`
}

func (c Checklist) Kind() Kind { return KindChecklist }

// Valid requires at least one item with non-empty text.
func (c Checklist) Valid() bool {
	for _, item := range c.Items {
		if strings.TrimSpace(item.Text) != "" {
			return true
		}
	}
	return false
}

func (c Checklist) Accept(v Visitor) { v.VisitChecklist(c) }

// Highlight marks something worth coming back to.
type Highlight struct {
	Content string `json:"content"`
}

func (h Highlight) Kind() Kind       { return KindHighlight }
func (h Highlight) Valid() bool      { return strings.TrimSpace(h.Content) != "" }
func (h Highlight) Accept(v Visitor) { v.VisitHighlight(h) }

// Problem records an issue and, optionally, how it was solved.
type Problem struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution,omitempty"`
}

func (p Problem) Kind() Kind { return KindProblem }

// Valid requires the problem text; the solution may stay empty.
func (p Problem) Valid() bool      { return strings.TrimSpace(p.Problem) != "" }
func (p Problem) Accept(v Visitor) { v.VisitProblem(p) }

// Achievement celebrates a win.
type Achievement struct {
	Content string `json:"content"`
}

func (a Achievement) Kind() Kind       { return KindAchievement }
func (a Achievement) Valid() bool      { return strings.TrimSpace(a.Content) != "" }
func (a Achievement) Accept(v Visitor) { v.VisitAchievement(a) }
