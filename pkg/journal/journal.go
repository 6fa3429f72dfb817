package journal

import (
	"sort"
	"strings"

	"tableflip.dev/mindbox/pkg/element"
	"tableflip.dev/mindbox/pkg/glyph"
)

// Defaults applied when a file is created without explicit styling.
const (
	DefaultIcon  = "📁"
	DefaultColor = "#9d4edd"
)

// File groups entries under a user-chosen name, icon glyph and hex color.
// Identity is ID; the client never enforces name uniqueness.
type File struct {
	ID      string `json:"id,omitempty"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}

// Normalize fills styling defaults and trims the name. It does not validate;
// an empty name is the caller's blocking error.
func (f File) Normalize() File {
	f.Name = strings.TrimSpace(f.Name)
	if f.Icon == "" {
		f.Icon = DefaultIcon
	}
	if f.Color == "" {
		f.Color = DefaultColor
	}
	return f
}

// Entry is one journal record, scoped to exactly one file for its lifetime.
type Entry struct {
	ID       string       `json:"id,omitempty"`
	OwnerID  string       `json:"owner_id"`
	FileID   string       `json:"file_id"`
	Mood     glyph.Mood   `json:"mood"`
	Elements element.List `json:"elements"`
	Created  Timestamp    `json:"created_at,omitempty"`
	Updated  Timestamp    `json:"updated_at,omitempty"`
}

// SortEntries orders entries newest-first. Stamps from the store have second
// granularity so ties happen; the stable sort keeps insertion order for them.
// Zero stamps sink to the end.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		lt := entries[i].Created.Time
		rt := entries[j].Created.Time
		switch {
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			return lt.After(rt)
		}
	})
}
