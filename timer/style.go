package timer

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/ultradian/internal/config"
	"github.com/ayoisaiah/ultradian/internal/phase"
)

// Style holds the lipgloss styles of the timer view.
type Style struct {
	colors    map[phase.Phase]lipgloss.Color
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Label     lipgloss.Style
}

// NewStyle derives the view styles from the display settings.
func NewStyle(d config.DisplayConfig) *Style {
	main, secondary, hint := lipgloss.Color("#F9FAFB"), lipgloss.Color("#D1D5DB"), lipgloss.Color("#9CA3AF")
	if !d.DarkTheme {
		main, secondary, hint = lipgloss.Color("#111827"), lipgloss.Color("#374151"), lipgloss.Color("#6B7280")
	}

	s := &Style{
		colors: map[phase.Phase]lipgloss.Color{
			phase.Grog:     lipgloss.Color(d.Colors.Grog),
			phase.Peak:     lipgloss.Color(d.Colors.Peak),
			phase.Trough:   lipgloss.Color(d.Colors.Trough),
			phase.Complete: main,
		},
		Base:      lipgloss.NewStyle().Padding(1, padding),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(main),
		Secondary: lipgloss.NewStyle().Foreground(secondary),
		Hint:      lipgloss.NewStyle().Foreground(hint),
		Label: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			MarginRight(1).
			Foreground(lipgloss.Color("#111827")),
	}

	if d.NoColor {
		s.colors = map[phase.Phase]lipgloss.Color{}
		s.Main = lipgloss.NewStyle().Bold(true)
		s.Secondary = lipgloss.NewStyle()
		s.Hint = lipgloss.NewStyle()
		s.Label = lipgloss.NewStyle().Bold(true).MarginRight(1)
	}

	return s
}

// Color returns the colour of phase p, if one is configured.
func (s *Style) Color(p phase.Phase) (lipgloss.Color, bool) {
	c, ok := s.colors[p]

	return c, ok && c != ""
}

// Phase returns the label badge of phase p.
func (s *Style) Phase(p phase.Phase) lipgloss.Style {
	label := s.Label.SetString(p.Label())

	if c, ok := s.Color(p); ok {
		return label.Background(c)
	}

	return label
}

func newProgress(s *Style, p phase.Phase) progress.Model {
	if c, ok := s.Color(p); ok {
		return progress.New(
			progress.WithSolidFill(string(c)),
			progress.WithoutPercentage(),
		)
	}

	return progress.New(progress.WithoutPercentage())
}
