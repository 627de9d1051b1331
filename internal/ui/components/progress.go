package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaforge/internal/ui/theme"
)

// ProgressBar displays a completeness score as a horizontal bar.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Percent    int // 0-100
	Width      int
}

// NewProgressBar creates a progress bar for a 0-100 score.
func NewProgressBar(label string, percent, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

// View renders the bar followed by the percentage.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	barWidth := max(p.Width-lipgloss.Width(result)-6, 4)
	filled := min(max(barWidth*p.Percent/100, 0), barWidth)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3d%%", p.Percent))
	return result
}
