package options

import (
	"github.com/spf13/cobra"
)

// SessionOptions
type SessionOptions struct {
	User string
	Name string
}

func AddSessionArgs(cmd *cobra.Command, o *SessionOptions) {
	cmd.Flags().StringVarP(&o.User, "user", "u", "",
		"The user id issued by the server.")
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"Display name for the session.")
}
