package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/stride/internal/metric"
)

const (
	kindColumnWidth = 10
	minBoxWidth     = 24
	borderPadding   = 4
)

// RenderMeasurementLine renders one measurement as a kind badge followed by
// its value, or its reason when invalid.
func RenderMeasurementLine(m metric.Measurement, precision int) string {
	if m == nil {
		return ""
	}
	badge := KindStyle(m.Kind()).Width(kindColumnWidth).Render(m.Kind().String())
	if !m.IsValid() {
		return badge + WarningStyle.Render(m.String())
	}
	return badge + ValueStyle.Render(metric.FormatMeasurement(m, precision))
}

// RenderMeasurements renders a titled, bordered block of measurements no
// wider than width.
func RenderMeasurements(title string, ms []metric.Measurement, precision, width int) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(HeaderStyle.Render(title))
		sb.WriteString("\n")
	}
	if len(ms) == 0 {
		sb.WriteString(SubtleStyle.Render("(none)"))
	}
	for i, m := range ms {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(RenderMeasurementLine(m, precision))
	}

	box := BorderStyle
	if width > minBoxWidth {
		box = box.MaxWidth(width)
	}
	return box.Render(sb.String())
}

// RenderSection renders a label and a list of measurements on one line each,
// without a border. It is used inside larger views.
func RenderSection(label string, ms []metric.Measurement, precision int) string {
	if len(ms) == 0 {
		return ""
	}
	lines := make([]string, 0, len(ms)+1)
	lines = append(lines, LabelStyle.Render(label))
	for _, m := range ms {
		lines = append(lines, "  "+RenderMeasurementLine(m, precision))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// clampWidth keeps content inside a terminal of the given width.
func clampWidth(width int) int {
	return max(minBoxWidth, width-borderPadding)
}
