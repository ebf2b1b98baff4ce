package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

const (
	headerHeight = 3 // title + project line + blank
	footerHeight = 4 // input box + status bar
)

// Loading messages shown while a turn runs
var loadingMessages = []string{
	"Thinking...",
	"Drafting...",
	"Brewing ideas...",
	"Consulting the writers' room...",
	"Polishing...",
}

var startOptions = []router.Option{
	{ID: "1", Label: "🎣 Generate Hooks", Value: "hook"},
	{ID: "2", Label: "📖 Build Story Structure", Value: "story"},
	{ID: "3", Label: "🎯 Create Call-to-Action", Value: "cta"},
}

func readyText(p *script.ProjectState) string {
	var b strings.Builder
	b.WriteString("✅ **Project Setup Complete!**\n\n")
	fmt.Fprintf(&b, "• **Topic:** %s\n", p.Topic)
	fmt.Fprintf(&b, "• **Platform:** %s\n", p.Platform.Title())
	if p.Audience != "" {
		fmt.Fprintf(&b, "• **Audience:** %s\n", p.Audience)
	}
	if d := p.Duration(); d != "" {
		fmt.Fprintf(&b, "• **Duration:** %s\n", d)
	}
	if n := len(p.ContextDocuments) + len(p.ToneSamples); n > 0 {
		fmt.Fprintf(&b, "• **Documents loaded:** %d\n", n)
	}
	b.WriteString("\nType `hook`, `story` or `cta` to start, or `help` for every command.")
	return b.String()
}

func (a *App) boxWidth() int {
	return max(20, min(80, a.width-4))
}

// resize fits the viewport and markdown renderer to the window.
func (a *App) resize() {
	w := a.boxWidth()
	a.state.viewport.Width = w
	a.state.viewport.Height = max(5, a.height-headerHeight-footerHeight)
	a.state.input.Width = w - 4

	if w != a.state.wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(w-4),
		)
		if err != nil {
			a.logger.Sugar().Warnf("markdown renderer unavailable: %v", err)
			r = nil
		}
		a.state.renderer = r
		a.state.wrap = w
	}
	a.refresh()
}

// refresh rebuilds the transcript and keeps it pinned to the bottom.
func (a *App) refresh() {
	a.state.viewport.SetContent(a.transcript())
	a.state.viewport.GotoBottom()
}

func (a *App) transcript() string {
	width := a.boxWidth()
	var lines []string

	for _, msg := range a.state.history {
		if msg.role == store.RoleUser {
			content := wrapText(msg.content, width-4)
			for j, line := range strings.Split(content, "\n") {
				prefix := "> "
				if j > 0 {
					prefix = "  "
				}
				lines = append(lines, lipgloss.NewStyle().Foreground(colorSecondary).Render(prefix+line))
			}
		} else {
			lines = append(lines, a.renderMarkdown(msg.content))
		}
		lines = append(lines, "")
	}

	if len(a.state.options) > 0 {
		lines = append(lines, renderOptions(a.state.options), "")
	}

	if a.state.waiting {
		elapsed := time.Since(a.state.turnStart).Seconds()
		text := loadingMessages[int(elapsed/2)%len(loadingMessages)]
		lines = append(lines, a.state.spinner.View()+" "+
			lipgloss.NewStyle().Foreground(colorPrimary).Render(text))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderMarkdown(content string) string {
	if a.state.renderer != nil {
		if out, err := a.state.renderer.Render(content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	var b strings.Builder
	for i, line := range strings.Split(wrapText(content, a.boxWidth()-4), "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Foreground(colorWhite).Render("  " + line))
	}
	return b.String()
}

// renderOptions numbers options so typing the number selects one.
func renderOptions(opts []router.Option) string {
	lines := make([]string, len(opts))
	for i, o := range opts {
		num := lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).Render(fmt.Sprintf("%d.", i+1))
		lines[i] = fmt.Sprintf("  %s %s", num, o.Label)
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderChat() string {
	var header strings.Builder
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Hookline")
	header.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	header.WriteString("\n")
	header.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(a.projectLine())))
	header.WriteString("\n\n")

	body := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.state.viewport.View())

	var footer strings.Builder
	inputBox := styleBox.Copy().
		Width(a.boxWidth()).
		BorderForeground(colorMuted).
		Render(a.state.input.View())
	footer.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	footer.WriteString("\n")
	footer.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(a.statusLine())))

	return header.String() + body + "\n" + footer.String()
}

func (a *App) projectLine() string {
	p := a.state.project
	if p == nil {
		return ""
	}
	parts := []string{truncate(p.Title, 40), p.Platform.Title()}
	if d := p.Duration(); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " · ") + "  " + a.getModelDisplayName()
}

func (a *App) statusLine() string {
	var parts []string
	if a.state.waiting {
		parts = append(parts, fmt.Sprintf("%.1fs", time.Since(a.state.turnStart).Seconds()), "[Esc] Cancel")
		return strings.Join(parts, "  ")
	}

	if a.state.providerError != nil {
		parts = append(parts, styleErrorText.Render("provider offline"))
	}
	if p := a.state.project; p != nil {
		parts = append(parts, componentMarks(p))
		if used := contextTokens(p); used > 0 {
			limit := contextWindow(a.state.config.Model)
			parts = append(parts, fmt.Sprintf("%.1fk/%.0fk ctx", float64(used)/1000, float64(limit)/1000))
		}
	}
	if !a.state.viewport.AtBottom() {
		parts = append(parts, fmt.Sprintf("[scroll %.0f%%]", a.state.viewport.ScrollPercent()*100))
	}
	parts = append(parts, "[PgUp/PgDn] Scroll  /help  [Esc] Quit")
	return strings.Join(parts, "  ")
}

// componentMarks shows hook, story and cta progress at a glance.
func componentMarks(p *script.ProjectState) string {
	var marks []string
	for _, k := range script.Kinds {
		c := p.Component(k)
		content := ""
		if c != nil {
			content = c.Content
		}
		if k == script.KindStory {
			content = p.StoryText()
		}
		icon := "❌"
		switch {
		case c != nil && c.Finalized:
			icon = "✅"
		case content != "":
			icon = "⏳"
		}
		marks = append(marks, icon+" "+strings.ToUpper(string(k)))
	}
	return strings.Join(marks, " ")
}

// wrapText wraps text to fit within maxWidth, preserving words
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 60
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapLine(para, maxWidth))
	}
	return strings.Join(out, "\n")
}

func wrapLine(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > maxWidth {
				result.WriteString("\n")
				lineLen = 0
			} else {
				result.WriteString(" ")
				lineLen++
			}
		}
		result.WriteString(word)
		lineLen += len(word)
	}

	return result.String()
}

// getModelDisplayName returns a friendly model name for display
func (a *App) getModelDisplayName() string {
	if a.state.config == nil {
		return ""
	}
	model := a.state.config.Model
	provider := a.state.config.Provider
	if model == "" {
		return provider
	}
	if provider != "" && !strings.Contains(strings.ToLower(model), strings.ToLower(provider)) {
		return fmt.Sprintf("%s via %s", model, provider)
	}
	return model
}
