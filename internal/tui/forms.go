package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bunchhieng/bark/internal/cli"
	"github.com/bunchhieng/bark/internal/model"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errRequired = errors.New("this field is required")

type field struct {
	label    string
	required bool

	// requiredWhen makes the field required depending on earlier answers.
	requiredWhen func(earlier []string) bool
	validate     func(string) error
}

// form collects one value per field, one prompt at a time.
type form struct {
	title  string
	fields []field
	inputs []textinput.Model
	focus  int
	err    error
	submit func(values []string) tea.Cmd
}

func newForm(title string, fields []field, submit func([]string) tea.Cmd) *form {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.label + ": "
		ti.CharLimit = 512
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[0].Focus()
	return &form{title: title, fields: fields, inputs: inputs, submit: submit}
}

// next validates the focused value and moves on. done is true once the last
// field is accepted, and cmd is then the submit command.
func (f *form) next() (cmd tea.Cmd, done bool) {
	value := strings.TrimSpace(f.inputs[f.focus].Value())
	fd := f.fields[f.focus]
	if value == "" && (fd.required || (fd.requiredWhen != nil && fd.requiredWhen(f.values()[:f.focus]))) {
		f.err = errRequired
		return nil, false
	}
	if fd.validate != nil && value != "" {
		if err := fd.validate(value); err != nil {
			f.err = err
			return nil, false
		}
	}
	f.err = nil

	f.inputs[f.focus].Blur()
	if f.focus < len(f.inputs)-1 {
		f.focus++
		f.inputs[f.focus].Focus()
		return textinput.Blink, false
	}

	return f.submit(f.values()), true
}

func (f *form) values() []string {
	values := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}
	return values
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func validateID(s string) error {
	_, err := cli.ParseID(s)
	return err
}

func validateEditable(s string) error {
	c, err := model.ParseColumn(s)
	if err != nil || !c.Editable() {
		return fmt.Errorf("choose one of: title, url, notes")
	}
	return nil
}

// requiredUnlessNotes requires a new value for title and url; notes may be cleared.
func requiredUnlessNotes(earlier []string) bool {
	c, err := model.ParseColumn(earlier[len(earlier)-1])
	return err != nil || c != model.ColumnNotes
}

func validateYesNo(s string) error {
	if _, ok := parseYesNo(s); !ok {
		return fmt.Errorf("answer y or n")
	}
	return nil
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "", "n", "no":
		return false, true
	}
	return false, false
}
