package cli

import (
	"fmt"
	"strings"

	"taskdeck/internal/model"
	"taskdeck/internal/view"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		priority string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			s, err := requireSession(e)
			if err != nil {
				return writeErr(cmd, err)
			}
			pri, err := parsePriority(priority)
			if err != nil {
				return writeErr(cmd, err)
			}
			cat, err := parseCategory(category)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := e.tasks.Add(s.UserID, strings.Join(args, " "), pri, cat)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, t)
		},
	}

	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "Priority (high|medium|low)")
	cmd.Flags().StringVar(&category, "category", string(model.CategoryOther), "Category (work|personal|shopping|health|other)")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var (
		status   string
		category string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks (filtered and sorted like the TUI)",
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
			q, err := parseQuery(status, category, search)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks := view.Project(e.tasks.All(), s.UserID, q)
			if tasks == nil {
				tasks = []model.Task{}
			}
			return writeOut(cmd, app, map[string]any{"tasks": tasks})
		},
	}

	cmd.Flags().StringVar(&status, "status", string(view.StatusAll), "Status filter (all|active|completed)")
	cmd.Flags().StringVar(&category, "category", string(view.CategoryAll), "Category filter (all|work|personal|shopping|health|other)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring search")

	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Toggle completion of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			if _, err := requireSession(e); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok, err := e.tasks.Toggle(id)
			if err != nil {
				return err
			}
			if !ok {
				return writeErr(cmd, fmt.Errorf("no task with id %d", id))
			}
			return writeOut(cmd, app, t)
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.open()
			if err != nil {
				return err
			}
			if _, err := requireSession(e); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, found := e.tasks.Find(id); !found {
				return writeErr(cmd, fmt.Errorf("no task with id %d", id))
			}
			if !yes && !confirm(cmd, "Delete this task?") {
				return nil
			}
			if _, err := e.tasks.Delete(id); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals and completion rate for your tasks",
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
			return writeOut(cmd, app, view.Summarize(e.tasks.All(), s.UserID))
		},
	}
}

func parsePriority(s string) (model.Priority, error) {
	p := model.Priority(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range model.Priorities() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid priority %q (high|medium|low)", s)
}

func parseCategory(s string) (model.Category, error) {
	c := model.Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range model.Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q (work|personal|shopping|health|other)", s)
}

func parseQuery(status, category, search string) (view.Query, error) {
	q := view.DefaultQuery()
	switch view.StatusFilter(strings.ToLower(strings.TrimSpace(status))) {
	case view.StatusAll, "":
		q.Status = view.StatusAll
	case view.StatusActive:
		q.Status = view.StatusActive
	case view.StatusCompleted:
		q.Status = view.StatusCompleted
	default:
		return q, fmt.Errorf("invalid status filter %q (all|active|completed)", status)
	}
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat != "" && cat != string(view.CategoryAll) {
		c, err := parseCategory(cat)
		if err != nil {
			return q, err
		}
		q.Category = c
	}
	q.Search = search
	return q, nil
}
