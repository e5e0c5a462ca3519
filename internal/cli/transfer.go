package cli

import (
	"os"
	"path/filepath"
	"time"

	"taskdeck/internal/task"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your tasks to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			s, err := requireSession(e)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := e.tasks.ExportForUser(s.UserID)
			if err != nil {
				// Zero tasks is a user-visible failure; no file is produced.
				return writeErr(cmd, err)
			}
			path := filepath.Join(out, task.ExportFileName(s.UserName, time.Now()))
			if err := os.WriteFile(path, b, 0o644); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"file": path})
		},
	}

	cmd.Flags().StringVar(&out, "out", ".", "Directory to write the export file into")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks from a JSON array; records are re-keyed to you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			s, err := requireSession(e)
			if err != nil {
				return writeErr(cmd, err)
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := e.tasks.ImportMany(raw, s.UserID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"imported": n})
		},
	}
}
