package commands

import (
	"context"
	"errors"
	"os"

	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/mindbox/pkg/runner/ui"
	"tableflip.dev/mindbox/pkg/session"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
mindbox ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui requires a terminal")
			}
			st, client, err := loadStore()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					return errors.New("not signed in, run: mindbox session set --user <id>")
				}
				return err
			}
			i := ui.UI{API: client, Store: st}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
