package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"taskdeck/internal/accounts"
	"taskdeck/internal/format"
	"taskdeck/internal/kv"
	"taskdeck/internal/session"
	"taskdeck/internal/task"
	"taskdeck/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "taskdeck (local-first) personal task tracker: CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskdeck

  # Scriptable commands
  taskdeck signup --name "Ada" --email ada@example.com --password secret
  taskdeck add "Write the report" --priority high --category work
  taskdeck list --status active
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKDECK_DIR", ""), "Path to the data dir (default: ~/.taskdeck)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// env bundles the stores for one invocation. Nothing is module-global: the
// CLI builds this per command and the TUI holds its own.
type env struct {
	dir      string
	accounts *accounts.Directory
	sessions *session.Manager
	tasks    *task.Store
}

func (app *App) open() (*env, error) {
	dir := app.Dir
	if dir == "" {
		d, err := kv.DataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	durable := kv.Durable{Dir: dir}
	ephemeral := kv.Ephemeral{Dir: kv.RuntimeDir()}

	ts := task.NewStore(durable, &task.EventLog{Dir: dir})
	ts.Load()

	return &env{
		dir:      dir,
		accounts: accounts.NewDirectory(durable),
		sessions: session.NewManager(durable, ephemeral),
		tasks:    ts,
	}, nil
}

func runTUI(app *App) error {
	e, err := app.open()
	if err != nil {
		return err
	}
	return tui.Run(tui.Deps{
		Accounts: e.accounts,
		Sessions: e.sessions,
		Tasks:    e.tasks,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// confirm asks a destructive-action question on stdout and reads a y/N
// answer from stdin. Declining leaves state unchanged.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	r := bufio.NewReader(cmd.InOrStdin())
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
