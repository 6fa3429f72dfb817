package options

import (
	"github.com/spf13/cobra"
)

// CacheOptions
type CacheOptions struct {
	Version string
}

func AddCacheArgs(cmd *cobra.Command, o *CacheOptions) {
	cmd.Flags().StringVar(&o.Version, "version", "",
		"Override the configured cache version.")
}
