package cli

import (
	"errors"
	"fmt"
	"strconv"

	"taskdeck/internal/auth"
	"taskdeck/internal/model"

	"github.com/spf13/cobra"
)

func newSignupCmd(app *App) *cobra.Command {
	var (
		name     string
		email    string
		password string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a local account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			acc, err := auth.Signup(e.accounts, e.sessions, name, email, password, remember)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"id":    acc.ID,
				"name":  acc.Name,
				"email": acc.Email,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email (the account key, case-insensitive)")
	cmd.Flags().StringVar(&password, "password", "", "Password (stored locally, plaintext)")
	// Signup keeps you signed in unless you opt out, matching the
	// checked-by-default box this flag replaces.
	cmd.Flags().BoolVar(&remember, "remember", true, "Keep the session across reboots")

	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var (
		email    string
		password string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			acc, err := auth.Login(e.accounts, e.sessions, email, password, remember)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"id":   acc.ID,
				"name": acc.Name,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().BoolVar(&remember, "remember", false, "Keep the session across reboots")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out (task data is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			if _, ok := e.sessions.Current(); !ok {
				return writeErr(cmd, errors.New("not signed in"))
			}
			if !yes && !confirm(cmd, "Are you sure you want to logout?") {
				return nil
			}
			if err := e.sessions.Clear(); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"loggedOut": true})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			s, ok := e.sessions.Current()
			if !ok {
				return writeErr(cmd, errNotSignedIn)
			}
			return writeOut(cmd, app, map[string]any{
				"userId":   s.UserID,
				"userName": s.UserName,
				"scope":    s.Scope,
			})
		},
	}
}

var errNotSignedIn = errors.New("not signed in; run `taskdeck login` or `taskdeck signup`")

// requireSession resolves the current identity or fails with a uniform
// message.
func requireSession(e *env) (model.Session, error) {
	s, ok := e.sessions.Current()
	if !ok {
		return model.Session{}, errNotSignedIn
	}
	return s, nil
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
