package tui

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ideaforge/internal/aggregate"
)

// Run starts the chat UI and blocks until the user exits. It returns the
// completed idea, or nil when the conversation was abandoned.
func Run(newSession SessionFactory) (*aggregate.CompletedIdea, error) {
	m := NewModel(newSession)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		m.session.Cancel()
		return nil, err
	}
	return m.session.Result(), nil
}
