package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/pipeline"
	"github.com/abhisek/ideaforge/internal/ui/components"
	"github.com/abhisek/ideaforge/internal/ui/layout"
	"github.com/abhisek/ideaforge/internal/ui/theme"
)

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole screen for the current terminal size.
func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	snap := m.session.Snapshot()
	cat := locale.For(snap.Locale)

	topic := cat.ModuleName(snap.Module)
	done := snap.ModuleIndex
	if m.status == conversation.Completed {
		topic = "Summary"
		done = pipeline.Len()
	}
	header := layout.RenderHeader(topic, done, pipeline.Len(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	var body string
	if m.result != nil {
		body = m.renderSummary(cat)
	} else {
		body = m.renderChat()
	}

	return layout.RenderFrame(header, body, footer, m.width, m.height)
}

func (m *Model) footerHints() []layout.KeyHint {
	switch {
	case m.status == conversation.Completed:
		return []layout.KeyHint{{Key: "Enter", Description: "Exit"}}
	case m.quitConfirm:
		return []layout.KeyHint{
			{Key: "y", Description: "Discard idea"},
			{Key: "n", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+D", Description: "Finish now"},
		{Key: "Esc", Description: "Quit"},
	}
}

// renderChat renders the tail of the transcript above the answer box.
func (m *Model) renderChat() string {
	width := max(m.width-4, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	if m.notice != "" {
		b.WriteString(theme.Notice.Render(wrap.Render(m.notice)))
		b.WriteString("\n\n")
	}
	for _, msg := range m.transcript {
		if msg.Role == conversation.RoleUser {
			b.WriteString(theme.UserLabel.Render("You"))
		} else {
			b.WriteString(theme.AssistantLabel.Render("IdeaForge"))
		}
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(wrap.Render(msg.Content)))
		b.WriteString("\n\n")
	}

	var input strings.Builder
	if m.quitConfirm {
		input.WriteString(theme.Notice.Render("Quit and discard this idea? (y/n)"))
	} else {
		if m.errMsg != "" {
			input.WriteString(theme.ErrorText.Render(m.errMsg))
			input.WriteString("\n")
		} else if m.busy {
			input.WriteString(theme.Hint.Render("thinking…"))
			input.WriteString("\n")
		}
		input.WriteString(m.input.View())
	}

	// Header and footer take three rows each.
	avail := max(m.height-6-lipgloss.Height(input.String())-1, 1)
	chat := layout.TailLines(strings.TrimRight(b.String(), "\n"), avail)
	return "  " + strings.ReplaceAll(chat, "\n", "\n  ") + "\n\n  " + strings.ReplaceAll(input.String(), "\n", "\n  ")
}

// renderSummary renders the completed idea card.
func (m *Model) renderSummary(cat *locale.Catalog) string {
	width := max(min(m.width-6, 90), 40)
	snap := m.session.Snapshot()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Your refined idea"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Grade: %s   Overall: %d%%\n\n",
		theme.Grade(m.result.Grade).Render(m.result.Grade), m.result.OverallCompleteness))

	labelWidth := 0
	for _, id := range pipeline.Modules() {
		labelWidth = max(labelWidth, lipgloss.Width(cat.ModuleName(id)))
	}
	for _, id := range pipeline.Modules() {
		bar := components.NewProgressBar(cat.ModuleName(id), snap.Progress[id].Completeness, width-4)
		bar.LabelWidth = labelWidth
		b.WriteString(bar.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(lipgloss.NewStyle().Width(width - 4).Render(m.result.Narrative)))

	card := theme.Card.Width(width).Render(b.String())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, card)
}
