package tui

import "strings"

func (a *App) renderError() string {
	msg := "unknown error"
	if a.state.err != nil {
		msg = a.state.err.Error()
	}
	width := min(60, a.width-4)

	var hints string
	if s := suggest(msg); len(s) > 0 {
		hints = styleBox.Width(width).Render("Try:\n• " + strings.Join(s, "\n• "))
	}

	return a.center(
		styleErrorText.Bold(true).Render("hookline stopped"),
		styleBox.Width(width).BorderForeground(colorError).Render(msg),
		hints,
		styleStatusBar.Render("esc quit"),
	)
}

// suggestions are matched against the lowercased error text in order.
var suggestions = []struct {
	needles []string
	tips    []string
}{
	{
		[]string{"api key", "auth", "401", "403"},
		[]string{"Check api_key in ~/.config/hookline/config.yaml", "Or export HOOKLINE_API_KEY"},
	},
	{
		[]string{"not found"},
		[]string{"Run `hookline projects list` to see saved projects"},
	},
	{
		[]string{"database", "sqlite", "postgres"},
		[]string{"Check database.driver and database.dsn in your config", "Remove the dsn to fall back to the local sqlite file"},
	},
	{
		[]string{"ollama"},
		[]string{"Start Ollama with `ollama serve`"},
	},
	{
		[]string{"connection", "connect", "timeout", "deadline"},
		[]string{"Check your network connection", "A local Ollama model works offline"},
	},
}

func suggest(errMsg string) []string {
	lower := strings.ToLower(errMsg)
	for _, s := range suggestions {
		for _, n := range s.needles {
			if strings.Contains(lower, n) {
				return s.tips
			}
		}
	}
	return nil
}
