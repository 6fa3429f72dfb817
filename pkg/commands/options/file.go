package options

import (
	"github.com/spf13/cobra"
)

// FileOptions
type FileOptions struct {
	File   string
	Recent bool
}

func AddFileArgs(cmd *cobra.Command, o *FileOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		"Specify a file by name or id.")
	cmd.Flags().BoolVar(&o.Recent, "recent", false,
		"Only the newest entries of the file, as capped by the server.")
}
