package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/mindbox/pkg/commands/options"
	"tableflip.dev/mindbox/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:   "get [file]",
		Short: "get your files, or the entries of one file",
		Example: `
mindbox get
mindbox get "Work Notes"
mindbox get --file 171dff69f8b99dca --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				fo.File = args[0]
			}
			st, client, err := loadStore()
			if err != nil {
				return oo.HandleError(err)
			}
			g := get.Get{
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				File:    fo.File,
				Recent:  fo.Recent,
				Store:   st,
				Recents: client,
			}
			err = g.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddFileArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
