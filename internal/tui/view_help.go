package tui

import "strings"

var helpCommands = [][2]string{
	{"hook · story · cta", "generate a component"},
	{"1 2 3 / option N", "pick an option"},
	{"more", "more options like the last ones"},
	{"custom: <text>", "use your own wording"},
	{"enhance option N", "refined and bold takes on a hook"},
	{"edit hook <text>", "replace a component"},
	{"research · humanize", "fact-check or de-AI the script"},
	{"critique", "challenge the script"},
	{"status · export", "progress and plain-text script"},
	{"help", "every router command"},
}

var helpShortcuts = [][2]string{
	{"/help", "this screen"},
	{"/settings", "current configuration"},
	{"/quit · exit", "leave hookline"},
	{"pgup · pgdown", "scroll the conversation"},
	{"esc", "cancel a turn, go back, or quit"},
}

func helpTable(rows [][2]string) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = styleSelected.Render(padRight(r[0], 20)) + " " + r[1]
	}
	return styleBox.Width(60).Render(strings.Join(lines, "\n"))
}

func padRight(s string, n int) string {
	if w := len([]rune(s)); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func (a *App) renderHelp() string {
	return a.center(
		styleLogo.Render("Commands"),
		helpTable(helpCommands),
		styleSubtitle.Render("Keys"),
		helpTable(helpShortcuts),
		styleStatusBar.Render("esc back"),
	)
}
