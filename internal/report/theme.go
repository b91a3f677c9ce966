package report

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/recommend"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	BarFilled = lipgloss.NewStyle().
			Background(Secondary)

	BarEmpty = lipgloss.NewStyle().
			Background(Border)
)

// StrengthStyle colors a strength class.
func StrengthStyle(s mastery.Strength) lipgloss.Style {
	switch s {
	case mastery.StrengthStrong:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	case mastery.StrengthWeak:
		return lipgloss.NewStyle().Foreground(Error).Bold(true)
	case mastery.StrengthAverage:
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return Body
	}
}

// PriorityStyle colors a recommendation priority.
func PriorityStyle(p recommend.Priority) lipgloss.Style {
	switch p {
	case recommend.PriorityHigh:
		return lipgloss.NewStyle().Foreground(Error).Bold(true)
	case recommend.PriorityMedium:
		return lipgloss.NewStyle().Foreground(Warning)
	case recommend.PriorityLow:
		return Dim
	default:
		return Body
	}
}

// TrendGlyph returns a one-character trend marker.
func TrendGlyph(t mastery.Trend) string {
	switch t {
	case mastery.TrendImproving:
		return "↑"
	case mastery.TrendDeclining:
		return "↓"
	case mastery.TrendStable:
		return "→"
	default:
		return " "
	}
}
