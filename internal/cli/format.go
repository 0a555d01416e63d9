package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"medchat/internal/responder"
)

var (
	colorHigh   = lipgloss.Color("#EF4444") // Red
	colorMedium = lipgloss.Color("#F59E0B") // Amber
	colorLow    = lipgloss.Color("#10B981") // Emerald
	colorMuted  = lipgloss.Color("#6B7280") // Gray
	colorBrand  = lipgloss.Color("#06B6D4") // Cyan

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(colorBrand)

	disclaimerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorHigh).
			Bold(true)
)

// Badge renders the urgency label. Responses without urgency get no badge.
func Badge(u responder.Urgency) string {
	var color lipgloss.Color
	switch u {
	case responder.UrgencyHigh:
		color = colorHigh
	case responder.UrgencyMedium:
		color = colorMedium
	case responder.UrgencyLow:
		color = colorLow
	default:
		return ""
	}
	return badgeStyle.Foreground(color).Render(strings.ToUpper(string(u)))
}

// FormatReply renders a response for the terminal.
func FormatReply(resp responder.Response) string {
	var b strings.Builder

	if badge := Badge(resp.Urgency); badge != "" {
		b.WriteString(badge)
		b.WriteString(" ")
	}
	b.WriteString(resp.Text)
	b.WriteString("\n")

	if suggestions := responder.FollowUpQuestions(resp); len(suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "  %s %s\n", suggestionStyle.Render("?"), s)
		}
	}

	if resp.Disclaimer != "" {
		b.WriteString("\n")
		b.WriteString(disclaimerStyle.Render(resp.Disclaimer))
		b.WriteString("\n")
	}

	return b.String()
}
