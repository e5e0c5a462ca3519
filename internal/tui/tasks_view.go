package tui

import (
	"fmt"
	"strings"

	"taskdeck/internal/docs"
)

func (m appModel) viewTasks() string {
	t := m.tasks
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	if t.showHelp {
		body, ok := docs.Get("keys")
		if !ok {
			body = "No help available."
		}
		w := width - 4
		if w > 72 {
			w = 72
		}
		return centered(width, height, renderMarkdown(body, w))
	}

	if t.confirm != confirmNone {
		title, body := "Delete task", "Delete this task?"
		if t.confirm == confirmLogout {
			title, body = "Logout", "Are you sure you want to logout?\nYour tasks stay saved on this machine."
		}
		return centered(width, height, renderConfirmModal(title, body, "OK", "Cancel", t.confirmFocus))
	}

	header := styleTitle().Render("TaskDeck — " + t.sess.UserName)
	stats := styleMuted().Render(fmt.Sprintf("Total %d · Done %d · Pending %d · %d%%",
		t.stats.Total, t.stats.Completed, t.stats.Pending, t.stats.CompletionRate))

	filters := styleMuted().Render(fmt.Sprintf("filter: %s   category: %s   search: ", t.query.Status, t.query.Category)) +
		t.search.View()

	addHint := ""
	if t.input.Focused() {
		addHint = styleMuted().Render(fmt.Sprintf("  (%s · %s)", t.addPriority, t.addCategory))
	}
	inputLine := "add> " + t.input.View() + addHint

	rowsHeight := height - 8
	rows := renderTaskRows(t.rows, t.selected, width, rowsHeight)

	footer := styleMuted().Render("a: add  /: search  space: toggle  d: delete  f/c: filters  e: export  r: reload  ?: help  ctrl+l: logout  q: quit")

	return strings.Join([]string{
		header + "  " + stats + "  " + styleNote(t.note),
		filters,
		inputLine,
		"",
		rows,
		"",
		footer,
	}, "\n")
}

func styleNote(note string) string {
	switch {
	case note == noteSynced:
		return styleMuted().Render(note)
	case strings.Contains(note, "✅"):
		return styleSuccess().Render(note)
	default:
		return styleError().Render(note)
	}
}
