package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"tableflip.dev/mindbox/pkg/commands/options"
	"tableflip.dev/mindbox/pkg/session"
)

func addSession(topLevel *cobra.Command) {
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "manage the stored sign-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "print the signed-in user",
		Example: `
mindbox session show
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := sessionStore()
			if err != nil {
				return oo.HandleError(err)
			}
			sess, err := ss.Current()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					fmt.Println("not signed in, run: mindbox session set --user <id>")
					return nil
				}
				return oo.HandleError(err)
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("User", sess.UserID)
			if sess.Username != "" {
				tbl.AddRow("Name", sess.Username)
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "store the sign-in issued by the server",
		Example: `
mindbox session set --user 171dff69f8b99dca --name scott
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if so.User == "" {
				return errors.New("--user is required")
			}
			ss, err := sessionStore()
			if err != nil {
				return oo.HandleError(err)
			}
			err = ss.Save(session.Session{UserID: so.User, Username: so.Name})
			return oo.HandleError(err)
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "forget the stored sign-in",
		Example: `
mindbox session clear
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := sessionStore()
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(ss.Clear())
		},
	}

	options.AddSessionArgs(set, so)
	cmd.AddCommand(show, set, clear)
	topLevel.AddCommand(cmd)
}
