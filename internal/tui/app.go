package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
)

type screen int

const (
	screenLogin screen = iota
	screenSignup
	screenTasks
)

// noteRevertDelay is how long a transient status note stays up before
// reverting to the idle "Synced" message.
const noteRevertDelay = 2000 * time.Millisecond

// statusRevertMsg carries the sequence number of the note it should revert.
// A newer note bumps the sequence, so a stale timer firing late is ignored
// instead of clobbering the newer message.
type statusRevertMsg struct{ seq int }

type appModel struct {
	deps Deps

	width  int
	height int

	screen screen
	login  loginModel
	signup signupModel
	tasks  tasksModel
}

func newAppModel(deps Deps) appModel {
	m := appModel{deps: deps}
	m.login = newLoginModel(deps)
	m.signup = newSignupModel()
	if s, ok := deps.Sessions.Current(); ok {
		m.tasks = newTasksModel(deps, s)
		m.screen = screenTasks
	} else {
		m.screen = screenLogin
		m.login.focusFirst()
	}
	return m
}

func (m appModel) Init() tea.Cmd { return textinput.Blink }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusRevertMsg:
		if m.screen == screenTasks && msg.seq == m.tasks.noteSeq {
			m.tasks.note = noteSynced
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenSignup:
		return m.updateSignup(msg)
	default:
		return m.updateTasks(msg)
	}
}

func (m appModel) View() string {
	switch m.screen {
	case screenLogin:
		return m.login.view(m.width, m.height)
	case screenSignup:
		return m.signup.view(m.width, m.height)
	default:
		return m.viewTasks()
	}
}
