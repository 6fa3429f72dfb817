package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/mindbox/pkg/commands/options"
	"tableflip.dev/mindbox/pkg/config"
	"tableflip.dev/mindbox/pkg/runner/cache"
	"tableflip.dev/mindbox/pkg/shellcache"
)

func newCacheManager(version string) (*shellcache.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if version == "" {
		version = cfg.CacheVersion()
	}
	fetcher, err := shellcache.NewHTTPFetcher(cfg.ServerURL())
	if err != nil {
		return nil, err
	}
	return shellcache.New(cfg.CachePath(), version, nil, fetcher)
}

func addCache(topLevel *cobra.Command) {
	co := &options.CacheOptions{}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "manage the offline shell cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	install := &cobra.Command{
		Use:   "install",
		Short: "download the app shell into the configured version",
		Example: `
mindbox cache install
mindbox cache install --version mindbox-v2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newCacheManager(co.Version)
			if err != nil {
				return oo.HandleError(err)
			}
			i := cache.Install{Manager: m}
			return oo.HandleError(i.Do(context.Background()))
		},
	}

	activate := &cobra.Command{
		Use:   "activate",
		Short: "evict every cached version except the configured one",
		Example: `
mindbox cache activate
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newCacheManager(co.Version)
			if err != nil {
				return oo.HandleError(err)
			}
			a := cache.Activate{Manager: m}
			return oo.HandleError(a.Do(context.Background()))
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "list cached versions",
		Example: `
mindbox cache status
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newCacheManager(co.Version)
			if err != nil {
				return oo.HandleError(err)
			}
			s := cache.Status{Manager: m}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddCacheArgs(install, co)
	options.AddCacheArgs(activate, co)
	options.AddCacheArgs(status, co)
	cmd.AddCommand(install, activate, status)
	topLevel.AddCommand(cmd)
}
