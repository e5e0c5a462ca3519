package tui

import (
	"fmt"
	"strings"

	"taskdeck/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderTaskRow renders one task line: checkbox, text, category badge,
// priority label, creation date. Text is shown as stored (escaped at
// creation).
func renderTaskRow(t model.Task, width int, selected bool) string {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	text := t.Text
	textStyle := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if t.Completed {
		textStyle = styleMuted().Strikethrough(true)
	}

	priStyle := lipgloss.NewStyle().Foreground(priorityColor(model.PriorityRank(t.Priority)))

	date := "-"
	if ts := t.CreatedTime(); !ts.IsZero() {
		date = ts.Local().Format("1/2/2006")
	}

	line := fmt.Sprintf("%s %s  %s %s  %s  %s",
		checkbox,
		textStyle.Render(text),
		model.CategoryIcon(t.Category),
		styleMuted().Render(string(t.Category)),
		priStyle.Render(string(t.Priority)),
		styleMuted().Render(date),
	)

	if selected {
		line = "› " + line
		line = lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Render(line)
	} else {
		line = "  " + line
	}

	if width > 0 && xansi.StringWidth(line) > width {
		// Never exceed the row width; terminate ANSI styling to prevent bleed.
		line = xansi.Cut(line, 0, width) + "\x1b[0m"
	}
	return line
}

// renderTaskRows renders the visible window of rows, scrolling to keep the
// selection in view. An empty result set yields a single placeholder.
func renderTaskRows(rows []model.Task, selected, width, height int) string {
	if height < 1 {
		height = 1
	}
	if len(rows) == 0 {
		return styleMuted().Render("  No tasks found")
	}

	top := 0
	if selected >= height {
		top = selected - height + 1
	}
	end := top + height
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	for i := top; i < end; i++ {
		if i > top {
			b.WriteByte('\n')
		}
		b.WriteString(renderTaskRow(rows[i], width, i == selected))
	}
	return b.String()
}
