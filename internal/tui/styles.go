package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/stride/internal/metric"
)

// Palette.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("212")
	ColorBorder    = lipgloss.Color("238")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")

	ColorDistance = lipgloss.Color("33")
	ColorDuration = lipgloss.Color("178")
	ColorPace     = lipgloss.Color("135")
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHighlight)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// KindStyle colors a measurement kind.
func KindStyle(kind metric.Kind) lipgloss.Style {
	switch kind {
	case metric.KindDistance:
		return lipgloss.NewStyle().Foreground(ColorDistance)
	case metric.KindDuration:
		return lipgloss.NewStyle().Foreground(ColorDuration)
	case metric.KindPace:
		return lipgloss.NewStyle().Foreground(ColorPace)
	case metric.KindInvalid:
		return CriticalStyle
	default:
		return SubtleStyle
	}
}
