package editor

import (
	"errors"
	"strings"

	"tableflip.dev/mindbox/pkg/element"
	"tableflip.dev/mindbox/pkg/glyph"
	"tableflip.dev/mindbox/pkg/journal"
)

// ErrNoElements is the single blocking validation error of the compose modal:
// after per-draft filtering, nothing valid remained to save.
var ErrNoElements = errors.New("editor: entry needs at least one element")

// Session is the draft list behind one open compose/edit modal. Only one
// session exists at a time by construction; the UI is a modal singleton.
type Session struct {
	entryID  string
	mood     glyph.Mood
	drafts   []*Draft
	retained element.List
}

// NewSession starts a compose session for a brand new entry.
func NewSession() *Session {
	return &Session{mood: glyph.DefaultMood}
}

// EditSession starts a session pre-populated from an existing entry. Unknown
// elements get no draft, but the session retains them and re-appends them on
// save so an edit made here never eats a variant this client cannot render.
func EditSession(e journal.Entry) *Session {
	s := &Session{entryID: e.ID, mood: e.Mood}
	if !s.mood.Valid() {
		s.mood = glyph.DefaultMood
	}
	for _, el := range e.Elements {
		if d := DraftOf(el); d != nil {
			s.drafts = append(s.drafts, d)
		} else {
			s.retained = append(s.retained, el)
		}
	}
	return s
}

// EntryID is empty for create sessions and set when editing.
func (s *Session) EntryID() string { return s.entryID }

// Editing reports whether this session updates an existing entry.
func (s *Session) Editing() bool { return s.entryID != "" }

func (s *Session) Mood() glyph.Mood { return s.mood }

func (s *Session) SetMood(m glyph.Mood) {
	if m.Valid() {
		s.mood = m
	}
}

// Drafts returns the drafts in modal order.
func (s *Session) Drafts() []*Draft {
	return append([]*Draft(nil), s.drafts...)
}

// Len reports the number of open drafts.
func (s *Session) Len() int { return len(s.drafts) }

// AddDraft appends an empty draft of the given kind and returns it.
func (s *Session) AddDraft(kind element.Kind) *Draft {
	d := NewDraft(kind)
	s.drafts = append(s.drafts, d)
	return d
}

// RemoveDraft deletes the draft with the given id.
func (s *Session) RemoveDraft(id string) {
	for i, d := range s.drafts {
		if d.ID() == id {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			return
		}
	}
}

// Draft returns the draft at idx, or nil when out of range.
func (s *Session) Draft(idx int) *Draft {
	if idx < 0 || idx >= len(s.drafts) {
		return nil
	}
	return s.drafts[idx]
}

// Collect serializes the session into a validated element list. Drafts that
// fail their own variant's rules are dropped without feedback; only an empty
// result is a blocking error. Callers must not issue any network request when
// Collect fails. Retained unknown elements follow the drafts in their
// original relative order and count toward the at-least-one requirement.
func (s *Session) Collect() (element.List, error) {
	list := make(element.List, 0, len(s.drafts)+len(s.retained))
	for _, d := range s.drafts {
		if el, ok := d.Element(); ok {
			list = append(list, el)
		}
	}
	list = append(list, s.retained...)
	if len(list) == 0 {
		return nil, ErrNoElements
	}
	return list, nil
}

// Entry assembles the payload for the sync client. The file scope comes from
// the caller; an entry never moves between files.
func (s *Session) Entry(ownerID, fileID string) (journal.Entry, error) {
	elements, err := s.Collect()
	if err != nil {
		return journal.Entry{}, err
	}
	return journal.Entry{
		ID:       s.entryID,
		OwnerID:  strings.TrimSpace(ownerID),
		FileID:   strings.TrimSpace(fileID),
		Mood:     s.mood,
		Elements: elements,
	}, nil
}
