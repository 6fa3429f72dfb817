package commands

import (
	"tableflip.dev/mindbox/pkg/config"
	"tableflip.dev/mindbox/pkg/remote"
	"tableflip.dev/mindbox/pkg/session"
	"tableflip.dev/mindbox/pkg/state"
)

// sessionStore opens the configured session file.
func sessionStore() (session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(cfg.SessionPath())
}

// loadStore builds the remote client and state store for the signed-in user.
// session.ErrNoSession comes back untouched so callers can explain the fix.
func loadStore() (*state.Store, *remote.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	ss, err := session.NewFileStore(cfg.SessionPath())
	if err != nil {
		return nil, nil, err
	}
	sess, err := ss.Current()
	if err != nil {
		return nil, nil, err
	}

	client, err := remote.New(cfg.ServerURL())
	if err != nil {
		return nil, nil, err
	}

	return state.New(client, sess.UserID), client, nil
}
