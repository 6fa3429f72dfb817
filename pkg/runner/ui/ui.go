package ui

import (
	"context"
	"errors"

	"tableflip.dev/mindbox/pkg/state"
	"tableflip.dev/mindbox/pkg/tui"
)

// UI launches the full-screen client.
type UI struct {
	API   tui.API
	Store *state.Store
}

func (u *UI) Do(ctx context.Context) error {
	if u.Store == nil {
		return errors.New("can not start ui, no store")
	}
	if u.API == nil {
		return errors.New("can not start ui, no api")
	}
	return tui.Run(u.API, u.Store)
}
