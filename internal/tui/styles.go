package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary   = lipgloss.Color("#F97316")
	colorSecondary = lipgloss.Color("#22D3EE")
	colorSuccess   = lipgloss.Color("#22C55E")
	colorError     = lipgloss.Color("#F43F5E")
	colorMuted     = lipgloss.Color("#71717A")
	colorWhite     = lipgloss.Color("#FAFAFA")

	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleHeading = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	// Highlighted row in a pick list.
	styleSelected = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleErrorText = lipgloss.NewStyle().
			Foreground(colorError)
)

// truncate cuts s to n runes, ending in "..." when shortened.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// center stacks blocks as centered lines with a blank line between each.
// Empty blocks are skipped.
func (a *App) center(blocks ...string) string {
	var b strings.Builder
	for _, block := range blocks {
		if block == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, block))
	}
	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	pad := (a.height - lipgloss.Height(content)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", pad) + content
}
