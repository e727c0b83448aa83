package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	badgeGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badgeAmber = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badgeRed   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	badgeSlate = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	badgeDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// stateBadge maps a lifecycle state to a colored label. Unknown states render
// in the neutral tone; the state vocabulary is open.
func stateBadge(state string) string {
	switch state {
	case "PUBLISHED":
		return badgeGreen.Render(state)
	case "RETIRED":
		return badgeDim.Render(state)
	case "DEFERRED":
		return badgeAmber.Render(state)
	default:
		return badgeSlate.Render(state)
	}
}

// tierBadge maps a risk tier to a colored label: lower is lower risk.
func tierBadge(tier int) string {
	label := fmt.Sprintf("Tier %d", tier)
	switch {
	case tier <= 1:
		return badgeGreen.Render(label)
	case tier == 2:
		return badgeAmber.Render(label)
	default:
		return badgeRed.Render(label)
	}
}

// formatTimestamp renders a backend ISO timestamp with the configured display
// format, falling back to the raw string when it doesn't parse.
func formatTimestamp(iso, format string) string {
	if iso == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format(format)
		}
	}
	return iso
}
