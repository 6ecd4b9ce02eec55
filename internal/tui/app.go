package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/bunchhieng/bark/internal/cli"
	"github.com/bunchhieng/bark/internal/commands"
	"github.com/bunchhieng/bark/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// option is one menu entry bound to a shortcut key.
type option struct {
	key  string
	name string
}

var options = []option{
	{"a", "Add a bookmark"},
	{"l", "List bookmarks by date"},
	{"t", "List bookmarks by title"},
	{"e", "Edit a bookmark"},
	{"d", "Delete a bookmark"},
	{"g", "Import GitHub stars"},
	{"q", "Quit"},
}

type appModel struct {
	cmds      *commands.Set
	form      *form
	busy      bool
	status    string
	err       error
	bookmarks []*model.Bookmark
	listOrder model.Column
	width     int
	height    int
	quitting  bool
}

type resultMsg struct {
	res    commands.Result
	err    error
	listed bool
}

func initialModel(cmds *commands.Set) appModel {
	return appModel{
		cmds:      cmds,
		listOrder: model.ColumnDateAdded,
		width:     80,
		height:    24,
	}
}

func (m appModel) Init() tea.Cmd {
	return m.list(m.cmds.ListByDate)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resultMsg:
		m.busy = false
		m.err = msg.err
		m.status = msg.res.Message
		if msg.err != nil && msg.res.Imported > 0 {
			m.status = fmt.Sprintf("%d bookmarks were imported before the failure", msg.res.Imported)
		}
		if msg.listed {
			m.bookmarks = msg.res.Bookmarks
		}
		if msg.res.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.busy {
			return m, nil
		}
		if m.form != nil {
			return m.handleFormKey(msg)
		}
		return m.handleMenuKey(msg)
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m appModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "a":
		return m.openForm(m.addForm())
	case "l":
		m.listOrder = m.cmds.ListByDate.OrderBy()
		return m.start(m.list(m.cmds.ListByDate))
	case "t":
		m.listOrder = m.cmds.ListByTitle.OrderBy()
		return m.start(m.list(m.cmds.ListByTitle))
	case "e":
		return m.openForm(m.editForm())
	case "d":
		return m.openForm(m.deleteForm())
	case "g":
		return m.openForm(m.importForm())
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
		m.status = "Cancelled"
		m.err = nil
		return m, nil
	case tea.KeyEnter:
		cmd, done := m.form.next()
		if done {
			m.form = nil
			return m.start(cmd)
		}
		return m, cmd
	}
	return m, m.form.update(msg)
}

func (m appModel) openForm(f *form) (tea.Model, tea.Cmd) {
	m.form = f
	m.err = nil
	m.status = ""
	return m, nil
}

func (m appModel) start(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy = true
	m.err = nil
	m.status = "Working..."
	return m, cmd
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	res := m.cmds.Quit.Execute()
	return m.Update(resultMsg{res: res})
}

func (m appModel) list(c *commands.List) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Execute(context.Background())
		return resultMsg{res: res, err: err, listed: true}
	}
}

// then runs a mutating command and, on success, refreshes the list in the
// current order so the screen reflects the change.
func (m appModel) then(run func(ctx context.Context) (commands.Result, error)) tea.Cmd {
	lister := m.cmds.ListByDate
	if m.listOrder == model.ColumnTitle {
		lister = m.cmds.ListByTitle
	}
	return func() tea.Msg {
		ctx := context.Background()
		res, runErr := run(ctx)
		// A failed import may still have written bookmarks worth showing.
		if runErr != nil && res.Imported == 0 {
			return resultMsg{res: res, err: runErr}
		}
		listed, err := lister.Execute(ctx)
		if err != nil {
			return resultMsg{res: res, err: err}
		}
		res.Bookmarks = listed.Bookmarks
		return resultMsg{res: res, err: runErr, listed: true}
	}
}

func (m appModel) addForm() *form {
	return newForm("Add a bookmark", []field{
		{label: "Title", required: true},
		{label: "URL", required: true},
		{label: "Notes"},
	}, func(v []string) tea.Cmd {
		in := commands.AddInput{Title: v[0], URL: v[1], Notes: v[2]}
		return m.then(func(ctx context.Context) (commands.Result, error) {
			return m.cmds.Add.Execute(ctx, in)
		})
	})
}

func (m appModel) editForm() *form {
	return newForm("Edit a bookmark", []field{
		{label: "Bookmark ID", required: true, validate: validateID},
		{label: "Field (title, url, notes)", required: true, validate: validateEditable},
		{label: "New value", requiredWhen: requiredUnlessNotes},
	}, func(v []string) tea.Cmd {
		id, _ := cli.ParseID(v[0])
		col, _ := model.ParseColumn(v[1])
		in := commands.UpdateInput{ID: id, Update: map[model.Column]string{col: v[2]}}
		return m.then(func(ctx context.Context) (commands.Result, error) {
			return m.cmds.Update.Execute(ctx, in)
		})
	})
}

func (m appModel) deleteForm() *form {
	return newForm("Delete a bookmark", []field{
		{label: "Bookmark ID", required: true, validate: validateID},
	}, func(v []string) tea.Cmd {
		id, _ := cli.ParseID(v[0])
		return m.then(func(ctx context.Context) (commands.Result, error) {
			return m.cmds.Delete.Execute(ctx, id)
		})
	})
}

func (m appModel) importForm() *form {
	return newForm("Import GitHub stars", []field{
		{label: "GitHub username", required: true},
		{label: "Preserve star timestamps? (y/N)", validate: validateYesNo},
	}, func(v []string) tea.Cmd {
		keep, _ := parseYesNo(v[1])
		in := commands.ImportInput{Username: v[0], KeepTimestamps: keep}
		return m.then(func(ctx context.Context) (commands.Result, error) {
			return m.cmds.Import.Execute(ctx, in)
		})
	})
}

// Run starts the menu and blocks until the user quits.
func Run(cmds *commands.Set) error {
	p := tea.NewProgram(initialModel(cmds), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
