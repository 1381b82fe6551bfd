package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles of one theme.
type Styles struct {
	Canvas  lipgloss.Style
	Panel   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Warning lipgloss.Style
	Graph   lipgloss.Style
	Help    lipgloss.Style
	Bar     lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().
			Foreground(t.Primary).
			Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(44),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Potential),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Graph:   lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		Help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		Bar:     lipgloss.NewStyle().Foreground(t.Secondary),
	}
}

// ProgressBar renders fraction (clamped to [0, 1]) as a bar of width cells.
func (s Styles) ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = clampInt(filled, 0, width)
	return s.Bar.Render(strings.Repeat("█", filled) + strings.Repeat("░", width-filled))
}

// Row renders one label/value line of the stats panel.
func (s Styles) Row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value) + "\n"
}
