package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/mindbox/pkg/journal"
	"tableflip.dev/mindbox/pkg/printers"
	"tableflip.dev/mindbox/pkg/state"
)

// RecentLister serves the server-side "newest entries of one file" view.
type RecentLister interface {
	RecentEntries(ctx context.Context, fileID string) ([]journal.Entry, error)
}

// Get fetches the signed-in user's files, or the entries of one file when
// File names or identifies it. Recent asks the server for its capped
// newest-first slice instead of the full local view.
type Get struct {
	ShowID  bool
	JSON    bool
	File    string
	Recent  bool
	Store   *state.Store
	Recents RecentLister
}

func (g *Get) Do(ctx context.Context) error {
	if g.Store == nil {
		return errors.New("can not get, no store")
	}
	if err := g.Store.Reload(ctx); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: g.ShowID}

	if g.Recent && g.File == "" {
		return errors.New("--recent needs a file")
	}

	if g.File != "" {
		f, ok := g.findFile(g.File)
		if !ok {
			return fmt.Errorf("no file matching %q", g.File)
		}
		entries := g.Store.EntriesFor(f.ID)
		if g.Recent {
			if g.Recents == nil {
				return errors.New("can not get recent entries, no client")
			}
			recent, err := g.Recents.RecentEntries(ctx, f.ID)
			if err != nil {
				return err
			}
			entries = recent
		}
		if g.JSON {
			return printJSON(map[string]interface{}{"file": f, "entries": entries})
		}
		pp.NewLine()
		pp.Entries(f, entries)
		return nil
	}

	files := g.Store.Files()
	if g.JSON {
		return printJSON(map[string]interface{}{"files": files})
	}

	counts := make(map[string]int, len(files))
	for _, f := range files {
		counts[f.ID] = g.Store.EntryCount(f.ID)
	}
	pp.NewLine()
	pp.Title("Files")
	pp.Files(files, counts)
	return nil
}

// findFile matches by id first, then by case-insensitive name.
func (g *Get) findFile(q string) (journal.File, bool) {
	for _, f := range g.Store.Files() {
		if f.ID == q {
			return f, true
		}
	}
	for _, f := range g.Store.Files() {
		if strings.EqualFold(f.Name, q) {
			return f, true
		}
	}
	return journal.File{}, false
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
