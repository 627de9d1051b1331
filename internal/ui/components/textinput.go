package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaforge/internal/ui/theme"
)

// AnswerInput is the single-line answer box of the chat.
type AnswerInput struct {
	Model    textinput.Model
	disabled bool
}

// NewAnswerInput creates a focused answer box.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards input while enabled.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.disabled {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the answer box, dimmed while disabled.
func (a AnswerInput) View() string {
	if a.disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("> …")
	}
	return a.Model.View()
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Reset clears the input.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
}

// SetDisabled toggles whether keystrokes reach the input.
func (a *AnswerInput) SetDisabled(disabled bool) {
	a.disabled = disabled
}

// Disabled reports whether the input ignores keystrokes.
func (a AnswerInput) Disabled() bool {
	return a.disabled
}
