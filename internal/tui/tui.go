package tui

import (
	"taskdeck/internal/accounts"
	"taskdeck/internal/session"
	"taskdeck/internal/task"

	tea "github.com/charmbracelet/bubbletea"
)

// Deps are the stores the TUI operates on. They are constructed by the CLI
// layer and owned by the app model for the lifetime of the program; nothing
// here is a package-level singleton.
type Deps struct {
	Accounts *accounts.Directory
	Sessions *session.Manager
	Tasks    *task.Store
}

func Run(deps Deps) error {
	applyColorProfilePreference()
	m := newAppModel(deps)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
