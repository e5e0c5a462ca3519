package tui

import (
	"strings"

	"taskdeck/internal/auth"
	"taskdeck/internal/session"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginModel struct {
	email    textinput.Model
	password textinput.Model
	remember bool
	focus    int
	errMsg   string
	welcome  string
}

func newLoginModel(deps Deps) loginModel {
	l := loginModel{
		email:    newField("email"),
		password: newPasswordField(),
		welcome:  lastUserName(deps.Sessions),
	}
	return l
}

func newField(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 32
	return ti
}

func newPasswordField() textinput.Model {
	ti := newField("password")
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

// lastUserName surfaces a remembered name on the login screen even when the
// session itself is incomplete.
func lastUserName(sess *session.Manager) string {
	if s, ok := sess.Current(); ok {
		return s.UserName
	}
	return ""
}

func (l *loginModel) focusFirst() {
	l.focus = 0
	l.email.Focus()
	l.password.Blur()
}

func (l *loginModel) fields() []*textinput.Model {
	return []*textinput.Model{&l.email, &l.password}
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			cycleFocus(m.login.fields(), &m.login.focus, +1)
			return m, nil
		case "shift+tab", "up":
			cycleFocus(m.login.fields(), &m.login.focus, -1)
			return m, nil
		case "ctrl+r":
			m.login.remember = !m.login.remember
			return m, nil
		case "ctrl+s":
			m.screen = screenSignup
			m.signup.focusFirst()
			return m, nil
		case "enter":
			_, err := auth.Login(m.deps.Accounts, m.deps.Sessions,
				m.login.email.Value(), m.login.password.Value(), m.login.remember)
			if err != nil {
				m.login.errMsg = err.Error()
				return m, nil
			}
			sess, _ := m.deps.Sessions.Current()
			m.tasks = newTasksModel(m.deps, sess)
			m.screen = screenTasks
			return m, nil
		}
	}

	var cmd tea.Cmd
	f := m.login.fields()[m.login.focus]
	*f, cmd = f.Update(msg)
	return m, cmd
}

func (l loginModel) view(width, height int) string {
	var b strings.Builder

	title := styleTitle().Render("TaskDeck — sign in")
	b.WriteString(title + "\n\n")
	if l.welcome != "" {
		b.WriteString(styleMuted().Render("Welcome back, "+l.welcome) + "\n\n")
	}
	b.WriteString("Email:    " + l.email.View() + "\n")
	b.WriteString("Password: " + l.password.View() + "\n\n")
	b.WriteString(checkbox("Keep me signed in", l.remember) + "\n")
	if l.errMsg != "" {
		b.WriteString("\n" + styleError().Render(l.errMsg) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("enter: sign in   ctrl+s: create an account   ctrl+r: toggle remember   ctrl+c: quit"))

	return centered(width, height, b.String())
}

type signupModel struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	remember bool
	focus    int
	errMsg   string
}

func newSignupModel() signupModel {
	return signupModel{
		name:     newField("name"),
		email:    newField("email"),
		password: newPasswordField(),
		// Checked by default: new accounts stay signed in unless opted out.
		remember: true,
	}
}

func (s *signupModel) focusFirst() {
	s.focus = 0
	s.name.Focus()
	s.email.Blur()
	s.password.Blur()
}

func (s *signupModel) fields() []*textinput.Model {
	return []*textinput.Model{&s.name, &s.email, &s.password}
}

func (m appModel) updateSignup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			cycleFocus(m.signup.fields(), &m.signup.focus, +1)
			return m, nil
		case "shift+tab", "up":
			cycleFocus(m.signup.fields(), &m.signup.focus, -1)
			return m, nil
		case "ctrl+r":
			m.signup.remember = !m.signup.remember
			return m, nil
		case "ctrl+s":
			m.screen = screenLogin
			m.login.focusFirst()
			return m, nil
		case "enter":
			_, err := auth.Signup(m.deps.Accounts, m.deps.Sessions,
				m.signup.name.Value(), m.signup.email.Value(), m.signup.password.Value(), m.signup.remember)
			if err != nil {
				m.signup.errMsg = err.Error()
				return m, nil
			}
			sess, _ := m.deps.Sessions.Current()
			m.tasks = newTasksModel(m.deps, sess)
			m.screen = screenTasks
			return m, nil
		}
	}

	var cmd tea.Cmd
	f := m.signup.fields()[m.signup.focus]
	*f, cmd = f.Update(msg)
	return m, cmd
}

func (s signupModel) view(width, height int) string {
	var b strings.Builder

	title := styleTitle().Render("TaskDeck — create an account")
	b.WriteString(title + "\n\n")
	b.WriteString("Name:     " + s.name.View() + "\n")
	b.WriteString("Email:    " + s.email.View() + "\n")
	b.WriteString("Password: " + s.password.View() + "\n\n")
	b.WriteString(checkbox("Keep me signed in", s.remember) + "\n")
	if s.errMsg != "" {
		b.WriteString("\n" + styleError().Render(s.errMsg) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("enter: sign up   ctrl+s: back to sign in   ctrl+r: toggle remember   ctrl+c: quit"))

	return centered(width, height, b.String())
}

func cycleFocus(fields []*textinput.Model, focus *int, delta int) {
	n := len(fields)
	*focus = (*focus + delta + n) % n
	for i, f := range fields {
		if i == *focus {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

func checkbox(label string, checked bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	return box + " " + label
}

func centered(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
