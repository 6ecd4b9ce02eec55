package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bunchhieng/bark/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	notesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

func (m appModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.form != nil {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderMenu())
	}
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m appModel) renderHeader() string {
	order := "date added"
	if m.listOrder == model.ColumnTitle {
		order = "title"
	}
	return headerStyle.Render(fmt.Sprintf("bark - Bookmarks  [Sorted by %s]  [%d bookmarks]", order, len(m.bookmarks)))
}

func (m appModel) renderMenu() string {
	var b strings.Builder
	for _, o := range options {
		fmt.Fprintf(&b, "%s %s\n", keyStyle.Render(strings.ToUpper(o.key)), o.name)
	}
	return b.String()
}

func (m appModel) renderForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.form.title))
	b.WriteString("\n")
	for i, in := range m.form.inputs {
		if i > m.form.focus {
			break
		}
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.form.err != nil {
		b.WriteString(errorStyle.Render(m.form.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter: next  esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m appModel) renderList() string {
	if len(m.bookmarks) == 0 {
		return dimStyle.Render("No bookmarks yet. Press 'a' to add one or 'g' to import GitHub stars.") + "\n"
	}

	// Leave room for the header, menu and status bar.
	visible := m.height - len(options) - 6
	if visible < 3 {
		visible = 3
	}
	visible /= 2

	var b strings.Builder
	for i, bm := range m.bookmarks {
		if i >= visible {
			fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("... and %d more", len(m.bookmarks)-visible)))
			break
		}
		fmt.Fprintf(&b, "%s %s  %s\n",
			dimStyle.Render(fmt.Sprintf("%4d", bm.ID)),
			titleStyle.Render(bm.Title),
			dimStyle.Render(formatTime(bm.DateAdded)))

		line := urlStyle.Render(bm.URL)
		if bm.Notes != "" {
			line += "  " + notesStyle.Render(bm.Notes)
		}
		fmt.Fprintf(&b, "     %s\n", line)
	}
	return b.String()
}

func (m appModel) renderStatusBar() string {
	text := m.status
	if m.err != nil {
		text = errorStyle.Render("Error: "+m.err.Error()) + "  " + text
	}
	if text == "" {
		text = "Press a key to choose an action"
	}
	width := m.width - 2
	if width < 0 {
		width = 0
	}
	return statusBarStyle.Width(width).Render(text)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}
