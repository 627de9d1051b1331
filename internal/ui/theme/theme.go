package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, calm and readable on dark terminals
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Chat
var (
	AssistantLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	UserLabel = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Grade colors the letter grade on the summary card.
func Grade(grade string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch {
	case grade == "":
		return s.Foreground(TextDim)
	case grade[0] == 'A':
		return s.Foreground(Success)
	case grade[0] == 'B':
		return s.Foreground(Secondary)
	case grade[0] == 'C':
		return s.Foreground(Accent)
	}
	return s.Foreground(Error)
}
