package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
 ╦ ╦╔═╗╔═╗╦╔═╦  ╦╔╗╔╔═╗
 ╠═╣║ ║║ ║╠╩╗║  ║║║║║╣
 ╩ ╩╚═╝╚═╝╩ ╩╩═╝╩╝╚╝╚═╝
`

var wizardSteps = []string{"Topic", "Platform", "Audience", "Duration"}

func (a *App) renderWizard() string {
	var b strings.Builder
	w := &a.state.wizard

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Video scripts, one hook at a time")))
	b.WriteString("\n\n")

	// Step tracker
	step := min(int(w.step), len(wizardSteps)-1)
	if w.step == stepCustomDuration {
		step = len(wizardSteps) - 1
	}
	var tracker []string
	for i, name := range wizardSteps {
		style := lipgloss.NewStyle().Foreground(colorMuted)
		switch {
		case i < step:
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		case i == step:
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		}
		tracker = append(tracker, style.Render(fmt.Sprintf("%d %s", i+1, name)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, strings.Join(tracker, "  ›  ")))
	b.WriteString("\n\n")

	if a.state.sessions == nil {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Opening project store...")))
		return a.centerVertically(b.String())
	}

	question := lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render(w.question())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, question))
	b.WriteString("\n\n")

	if choices := w.choices(); len(choices) > 0 {
		var lines []string
		for i, c := range choices {
			if i == w.cursor {
				lines = append(lines, lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).
					Render(fmt.Sprintf("> %d. %s", i+1, c)))
			} else {
				lines = append(lines, lipgloss.NewStyle().Foreground(colorMuted).
					Render(fmt.Sprintf("  %d. %s", i+1, c)))
			}
		}
		box := styleBox.Copy().Width(40).Render(strings.Join(lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
		b.WriteString("\n\n")
	}

	inputBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorSecondary).
		Render(a.state.input.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n")

	if a.state.wizardHint != "" {
		hint := lipgloss.NewStyle().Foreground(colorError).Render(a.state.wizardHint)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
		b.WriteString("\n")
	}
	if n := len(a.state.documents); n > 0 {
		docs := styleSubtitle.Render(fmt.Sprintf("%d document(s) will be added to this project", n))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, docs))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	instructions := "[Enter] Continue  [Esc] Quit"
	if len(w.choices()) > 0 {
		instructions = "[↑/↓] Choose  [Enter] Select  or type your own  [Esc] Quit"
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(instructions)))

	return a.centerVertically(b.String())
}
