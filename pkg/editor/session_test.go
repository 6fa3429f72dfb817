package editor

import (
	"errors"
	"testing"

	"tableflip.dev/mindbox/pkg/element"
	"tableflip.dev/mindbox/pkg/glyph"
	"tableflip.dev/mindbox/pkg/journal"
)

// Switching a draft's variant throws away everything typed so far; nothing
// carries over, not even between variants that share a free-text field.
func TestSetKindDiscardsValues(t *testing.T) {
	d := NewDraft(element.KindText)
	d.SetContent("half a thought")

	d.SetKind(element.KindChecklist)
	if d.Content() != "" {
		t.Fatalf("content survived the switch: %q", d.Content())
	}
	if d.ItemCount() != 1 || d.Items()[0].Text != "" {
		t.Fatalf("checklist should start with one blank row: %+v", d.Items())
	}

	d.SetItemText(0, "buy milk")
	d.SetKind(element.KindText)
	if d.ItemCount() != 0 {
		t.Fatalf("items survived the switch back")
	}
	if d.Content() != "" {
		t.Fatalf("text restored from nowhere: %q", d.Content())
	}
}

func TestSetKindSameKindIsANoop(t *testing.T) {
	d := NewDraft(element.KindText)
	d.SetContent("keep me")
	d.SetKind(element.KindText)
	if d.Content() != "keep me" {
		t.Fatalf("same-kind switch lost content")
	}
}

func TestCollectDropsInvalidDraftsSilently(t *testing.T) {
	s := NewSession()
	s.AddDraft(element.KindText).SetContent("  ") // whitespace only, dropped
	s.AddDraft(element.KindText).SetContent("kept")
	s.AddDraft(element.KindChecklist) // one blank row, dropped

	list, err := s.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 element, got %d", len(list))
	}
	if text, ok := list[0].(element.Text); !ok || text.Content != "kept" {
		t.Fatalf("wrong survivor: %#v", list[0])
	}
}

func TestCollectEmptyIsBlocking(t *testing.T) {
	s := NewSession()
	s.AddDraft(element.KindText) // never typed into

	if _, err := s.Collect(); !errors.Is(err, ErrNoElements) {
		t.Fatalf("expected ErrNoElements, got %v", err)
	}
	if _, err := s.Entry("owner-1", "f1"); !errors.Is(err, ErrNoElements) {
		t.Fatalf("Entry should surface the collect error, got %v", err)
	}
}

func TestChecklistNeedsOneNonEmptyItem(t *testing.T) {
	s := NewSession()
	d := s.AddDraft(element.KindChecklist)
	d.SetItemText(0, "pack bags")
	d.AddItem() // stays blank, filtered out of the element

	list, err := s.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	cl, ok := list[0].(element.Checklist)
	if !ok {
		t.Fatalf("expected checklist, got %T", list[0])
	}
	if len(cl.Items) != 1 || cl.Items[0].Text != "pack bags" {
		t.Fatalf("blank rows should be filtered: %+v", cl.Items)
	}
}

func TestEntryBuildsPayload(t *testing.T) {
	s := NewSession()
	s.SetMood(glyph.Tired)
	s.AddDraft(element.KindAchievement).SetContent("shipped it")

	e, err := s.Entry(" owner-1 ", "f1")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if e.ID != "" {
		t.Fatalf("create session produced an id: %q", e.ID)
	}
	if e.OwnerID != "owner-1" || e.FileID != "f1" {
		t.Fatalf("scope = %q/%q", e.OwnerID, e.FileID)
	}
	if e.Mood != glyph.Tired {
		t.Fatalf("mood = %q", e.Mood)
	}
}

func TestEditSessionPopulatesDrafts(t *testing.T) {
	e := journal.Entry{
		ID:   "e1",
		Mood: glyph.Mood("🤖"), // not in the palette
		Elements: element.List{
			element.Text{Content: "original"},
			element.Unknown{Type: "sketch"},
			element.Problem{Problem: "broken", Solution: "fixed"},
		},
	}

	s := EditSession(e)
	if !s.Editing() || s.EntryID() != "e1" {
		t.Fatalf("edit session lost identity")
	}
	if s.Mood() != glyph.DefaultMood {
		t.Fatalf("invalid mood should fall back to the default, got %q", s.Mood())
	}
	// unknown elements are not editable and get no draft
	if s.Len() != 2 {
		t.Fatalf("expected 2 drafts, got %d", s.Len())
	}
	if s.Draft(1).Solution() != "fixed" {
		t.Fatalf("problem draft not populated: %+v", s.Draft(1))
	}
}

// Editing an entry must not eat variants this client cannot render: the
// session carries them through untouched and re-appends them on save.
func TestEditSessionKeepsUnknownElementsOnSave(t *testing.T) {
	e := journal.Entry{
		ID:   "e1",
		Mood: glyph.Happy,
		Elements: element.List{
			element.Text{Content: "still here"},
			element.Unknown{Type: "sketch", Raw: []byte(`{"type":"sketch","strokes":[1,2,3]}`)},
		},
	}

	s := EditSession(e)
	saved, err := s.Entry("owner-1", "f1")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if len(saved.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(saved.Elements))
	}
	u, ok := saved.Elements[1].(element.Unknown)
	if !ok {
		t.Fatalf("unknown element dropped, got %T", saved.Elements[1])
	}
	if string(u.Raw) != `{"type":"sketch","strokes":[1,2,3]}` {
		t.Fatalf("unknown payload changed: %s", u.Raw)
	}
}

// A user can delete every draft of an entry that still holds an unknown
// element; the save keeps that element instead of blocking.
func TestRetainedUnknownSatisfiesAtLeastOne(t *testing.T) {
	e := journal.Entry{
		ID:       "e1",
		Elements: element.List{element.Unknown{Type: "sketch"}},
	}
	s := EditSession(e)
	if s.Len() != 0 {
		t.Fatalf("unknown elements should produce no draft, got %d", s.Len())
	}
	list, err := s.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected the retained element, got %d", len(list))
	}
}

func TestSetMoodRejectsUnknownGlyphs(t *testing.T) {
	s := NewSession()
	s.SetMood(glyph.Mood("🤖"))
	if s.Mood() != glyph.DefaultMood {
		t.Fatalf("unknown mood accepted: %q", s.Mood())
	}
	s.SetMood(glyph.Sad)
	if s.Mood() != glyph.Sad {
		t.Fatalf("valid mood rejected")
	}
}

func TestRemoveDraft(t *testing.T) {
	s := NewSession()
	a := s.AddDraft(element.KindText)
	b := s.AddDraft(element.KindText)

	s.RemoveDraft(a.ID())
	if s.Len() != 1 || s.Draft(0).ID() != b.ID() {
		t.Fatalf("wrong draft removed")
	}
	s.RemoveDraft("not-there")
	if s.Len() != 1 {
		t.Fatalf("removing a missing id changed the list")
	}
}
