// Package cache provides CLI helpers for the offline shell cache.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindbox/pkg/shellcache"
)

// Install downloads the shell manifest into the configured version.
type Install struct {
	Manager *shellcache.Manager
}

func (i *Install) Do(ctx context.Context) error {
	if i.Manager == nil {
		return errors.New("can not install, no cache manager")
	}
	if err := i.Manager.Install(ctx); err != nil {
		return err
	}
	fmt.Printf("installed %d assets into %s\n", len(i.Manager.Manifest()), i.Manager.Version())
	return nil
}

// Activate evicts every cached version except the configured one.
type Activate struct {
	Manager *shellcache.Manager
}

func (a *Activate) Do(ctx context.Context) error {
	if a.Manager == nil {
		return errors.New("can not activate, no cache manager")
	}
	if err := a.Manager.Activate(ctx); err != nil {
		return err
	}
	fmt.Printf("%s is now the only cached version\n", a.Manager.Version())
	return nil
}

// Status lists the cached versions and whether the configured one is complete.
type Status struct {
	Manager *shellcache.Manager
}

func (s *Status) Do(ctx context.Context) error {
	if s.Manager == nil {
		return errors.New("can not report status, no cache manager")
	}

	versions, err := s.Manager.Versions()
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Version"), bold.Sprint("State"))
	for _, v := range versions {
		state := "stale"
		if v == s.Manager.Version() {
			state = "current"
			if !s.Manager.Installed() {
				state = "current, incomplete"
			}
		}
		tbl.AddRow(v, state)
	}
	if len(versions) == 0 {
		tbl.AddRow(s.Manager.Version(), "not installed")
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}
