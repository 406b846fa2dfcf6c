// Package summary provides the Bubble Tea prompts that follow a
// completed session: collecting the reader's summary and showing
// progress while the evaluation request is in flight.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type collectModel struct {
	textarea  textarea.Model
	submitted bool
}

func newCollectModel() collectModel {
	ta := textarea.New()
	ta.Placeholder = "What was the text about?"
	ta.SetWidth(72)
	ta.SetHeight(8)
	ta.Focus()
	return collectModel{textarea: ta}
}

// Init implements tea.Model.
func (m collectModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m collectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlD:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m collectModel) View() string {
	return fmt.Sprintf("%s\n\n%s\n\n%s\n",
		titleStyle.Render("Summarize what you just read"),
		m.textarea.View(),
		helpStyle.Render("ctrl+d submit · esc skip"))
}

// Collect prompts for a summary of the finished text. It returns the
// trimmed summary; an empty string means the user skipped. A nil input
// uses the program default (stdin).
func Collect(input io.Reader) (string, error) {
	program := tea.NewProgram(newCollectModel(), programOptions(input)...)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run summary prompt: %w", err)
	}
	m, ok := final.(collectModel)
	if !ok {
		return "", fmt.Errorf("unexpected summary model type %T", final)
	}
	if !m.submitted {
		return "", nil
	}
	return strings.TrimSpace(m.textarea.Value()), nil
}

func programOptions(input io.Reader) []tea.ProgramOption {
	if input == nil {
		return nil
	}
	return []tea.ProgramOption{tea.WithInput(input)}
}
