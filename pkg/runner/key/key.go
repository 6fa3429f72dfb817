// Package key provides CLI helpers to display the journaling legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindbox/pkg/glyph"
)

// Key prints the marker and mood legend.
type Key struct{}

// Do renders the element marker and mood keys to stdout.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")

	all := glyph.DefaultGlyphs()

	markers := make([]glyph.Glyph, 0, len(all))
	moods := make([]glyph.Glyph, 0, len(all))
	for _, g := range all {
		if g.Mood {
			moods = append(moods, g)
		} else {
			markers = append(markers, g)
		}
	}

	k.Key(ctx, markers, false)
	_, _ = fmt.Fprintln(color.Output, "")

	k.Key(ctx, moods, true)

	fmt.Println("")
	return nil
}

// Key renders a glyph table; when mood is true, moods are shown.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, mood bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if mood {
		tbl.AddRow(bold.Sprint("  Moods"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Markers"), bold.Sprint("Meaning"))
	}
	for _, g := range glyfs {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
