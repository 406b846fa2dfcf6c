package summary

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct {
	result string
	err    error
}

type waitModel struct {
	spinner spinner.Model
	message string
	run     func() (string, error)
	result  string
	err     error
	done    bool
}

func newWaitModel(message string, run func() (string, error)) waitModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = titleStyle
	return waitModel{spinner: sp, message: message, run: run}
}

// Init implements tea.Model.
func (m waitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := m.run()
		return doneMsg{result: result, err: err}
	})
}

// Update implements tea.Model.
func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m waitModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), helpStyle.Render(m.message))
}

// Await runs fn while a spinner and message occupy the terminal, then
// returns fn's result. The request itself is not cancellable from the
// keyboard; fn should carry its own timeout.
func Await(message string, input io.Reader, fn func() (string, error)) (string, error) {
	program := tea.NewProgram(newWaitModel(message, fn), programOptions(input)...)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run progress spinner: %w", err)
	}
	m, ok := final.(waitModel)
	if !ok {
		return "", fmt.Errorf("unexpected spinner model type %T", final)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}
