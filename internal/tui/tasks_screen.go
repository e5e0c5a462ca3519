package tui

import (
	"fmt"
	"os"
	"time"

	"taskdeck/internal/model"
	"taskdeck/internal/task"
	"taskdeck/internal/view"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const noteSynced = "✅ Synced"

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmLogout
)

type tasksModel struct {
	sess model.Session

	input  textinput.Model
	search textinput.Model

	// Priority/category applied to the next added task.
	addPriority model.Priority
	addCategory model.Category

	query view.Query
	rows  []model.Task
	stats view.Stats

	selected int

	note    string
	noteSeq int

	confirm      confirmKind
	confirmFocus confirmModalFocus
	deleteTarget int64

	showHelp bool
}

func newTasksModel(deps Deps, sess model.Session) tasksModel {
	t := tasksModel{
		sess:        sess,
		input:       newField("What needs to be done?"),
		search:      newField("search"),
		addPriority: model.PriorityMedium,
		addCategory: model.CategoryOther,
		query:       view.DefaultQuery(),
		note:        noteSynced,
	}
	t.input.Width = 48
	t.search.Width = 24
	t.refresh(deps)
	return t
}

// refresh re-derives the projection and stats, keeping the selection on the
// same task when it survives the new filter.
func (t *tasksModel) refresh(deps Deps) {
	var selectedID int64
	if t.selected >= 0 && t.selected < len(t.rows) {
		selectedID = t.rows[t.selected].ID
	}

	all := deps.Tasks.All()
	t.rows = view.Project(all, t.sess.UserID, t.query)
	t.stats = view.Summarize(all, t.sess.UserID)

	t.selected = clamp(t.selected, 0, len(t.rows)-1)
	if selectedID != 0 {
		for i, row := range t.rows {
			if row.ID == selectedID {
				t.selected = i
				break
			}
		}
	}
}

// setNote shows a transient status note and schedules its revert. The seq
// token makes a newer note cancel the pending revert of an older one.
func (t *tasksModel) setNote(text string) tea.Cmd {
	t.note = text
	t.noteSeq++
	seq := t.noteSeq
	return tea.Tick(noteRevertDelay, func(time.Time) tea.Msg { return statusRevertMsg{seq: seq} })
}

func (m appModel) updateTasks(msg tea.Msg) (tea.Model, tea.Cmd) {
	t := &m.tasks

	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m.forwardToInputs(msg)
	}

	if t.showHelp {
		t.showHelp = false
		return m, nil
	}

	if t.confirm != confirmNone {
		return m.updateConfirm(key)
	}

	if t.input.Focused() {
		return m.updateAddInput(key)
	}
	if t.search.Focused() {
		return m.updateSearchInput(key)
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "a", "i":
		t.input.Focus()
		return m, textinput.Blink
	case "/":
		t.search.Focus()
		return m, textinput.Blink
	case "up", "k":
		t.selected = clamp(t.selected-1, 0, len(t.rows)-1)
		return m, nil
	case "down", "j":
		t.selected = clamp(t.selected+1, 0, len(t.rows)-1)
		return m, nil
	case " ":
		return m.toggleSelected()
	case "d", "ctrl+d", "delete", "backspace":
		if t.selected < len(t.rows) {
			t.deleteTarget = t.rows[t.selected].ID
			t.confirm = confirmDelete
			t.confirmFocus = confirmFocusCancel
		}
		return m, nil
	case "f":
		t.query.Status = nextStatusFilter(t.query.Status)
		t.refresh(m.deps)
		return m, nil
	case "c":
		t.query.Category = nextCategoryFilter(t.query.Category)
		t.refresh(m.deps)
		return m, nil
	case "e":
		return m.exportTasks()
	case "r":
		// Reload from disk (so CLI commands in another terminal are
		// reflected).
		m.deps.Tasks.Load()
		t.refresh(m.deps)
		return m, nil
	case "?":
		t.showHelp = true
		return m, nil
	case "ctrl+l":
		t.confirm = confirmLogout
		t.confirmFocus = confirmFocusCancel
		return m, nil
	}
	return m, nil
}

func (m appModel) updateAddInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := &m.tasks
	switch key.String() {
	case "esc":
		t.input.Blur()
		return m, nil
	case "ctrl+p":
		t.addPriority = nextPriority(t.addPriority)
		return m, nil
	case "ctrl+t":
		t.addCategory = nextCategory(t.addCategory)
		return m, nil
	case "enter":
		_, err := m.deps.Tasks.Add(t.sess.UserID, t.input.Value(), t.addPriority, t.addCategory)
		if err != nil {
			return m, t.setNote(err.Error())
		}
		// Keep focus for rapid entry, like the Enter-key handler this
		// replaces.
		t.input.SetValue("")
		t.refresh(m.deps)
		return m, t.setNote("Saved ✅")
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(key)
	return m, cmd
}

func (m appModel) updateSearchInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := &m.tasks
	switch key.String() {
	case "esc":
		t.search.SetValue("")
		t.search.Blur()
		t.query.Search = ""
		t.refresh(m.deps)
		return m, nil
	case "enter":
		t.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	t.search, cmd = t.search.Update(key)
	// Search is live: every keystroke re-derives the projection.
	t.query.Search = t.search.Value()
	t.refresh(m.deps)
	return m, cmd
}

func (m appModel) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := &m.tasks
	switch key.String() {
	case "tab", "left", "right":
		if t.confirmFocus == confirmFocusConfirm {
			t.confirmFocus = confirmFocusCancel
		} else {
			t.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "esc", "n":
		t.confirm = confirmNone
		return m, nil
	case "y":
		return m.acceptConfirm()
	case "enter":
		if t.confirmFocus == confirmFocusConfirm {
			return m.acceptConfirm()
		}
		t.confirm = confirmNone
		return m, nil
	}
	return m, nil
}

func (m appModel) acceptConfirm() (tea.Model, tea.Cmd) {
	t := &m.tasks
	kind := t.confirm
	t.confirm = confirmNone

	switch kind {
	case confirmDelete:
		if _, err := m.deps.Tasks.Delete(t.deleteTarget); err != nil {
			return m, t.setNote(err.Error())
		}
		t.refresh(m.deps)
		return m, t.setNote("Deleted ✅")
	case confirmLogout:
		if err := m.deps.Sessions.Clear(); err != nil {
			return m, t.setNote(err.Error())
		}
		m.login = newLoginModel(m.deps)
		m.login.focusFirst()
		m.screen = screenLogin
		return m, nil
	}
	return m, nil
}

func (m appModel) toggleSelected() (tea.Model, tea.Cmd) {
	t := &m.tasks
	if t.selected >= len(t.rows) {
		return m, nil
	}
	id := t.rows[t.selected].ID
	if _, _, err := m.deps.Tasks.Toggle(id); err != nil {
		return m, t.setNote(err.Error())
	}
	t.refresh(m.deps)
	return m, t.setNote("Updated ✅")
}

func (m appModel) exportTasks() (tea.Model, tea.Cmd) {
	t := &m.tasks
	b, err := m.deps.Tasks.ExportForUser(t.sess.UserID)
	if err != nil {
		return m, t.setNote(err.Error())
	}
	name := task.ExportFileName(t.sess.UserName, time.Now())
	if err := os.WriteFile(name, b, 0o644); err != nil {
		return m, t.setNote(err.Error())
	}
	return m, t.setNote(fmt.Sprintf("Exported ✅ %s", name))
}

func (m appModel) forwardToInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	t := &m.tasks
	var cmds []tea.Cmd
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	cmds = append(cmds, cmd)
	t.search, cmd = t.search.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func nextPriority(p model.Priority) model.Priority {
	order := model.Priorities()
	for i, v := range order {
		if v == p {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

func nextCategory(c model.Category) model.Category {
	order := model.Categories()
	for i, v := range order {
		if v == c {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

func nextStatusFilter(s view.StatusFilter) view.StatusFilter {
	switch s {
	case view.StatusAll:
		return view.StatusActive
	case view.StatusActive:
		return view.StatusCompleted
	default:
		return view.StatusAll
	}
}

func nextCategoryFilter(c model.Category) model.Category {
	order := append([]model.Category{view.CategoryAll}, model.Categories()...)
	for i, v := range order {
		if v == c {
			return order[(i+1)%len(order)]
		}
	}
	return view.CategoryAll
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
