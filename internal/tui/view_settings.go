package tui

import (
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/config"
)

func (a *App) renderSettings() string {
	cfg := a.state.config
	provider := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		provider = p.Name
	}

	status := "connected"
	switch {
	case a.state.providerError != nil:
		status = truncate(a.state.providerError.Error(), 40)
	case !a.state.providerReady:
		status = "checking..."
	}

	rows := [][2]string{
		{"provider", provider},
		{"model", cfg.Model},
		{"api key", maskKey(cfg.APIKey)},
		{"json mode", fmt.Sprint(cfg.JSONMode)},
		{"status", status},
		{"database", cfg.Database.Driver},
	}
	if cfg.Redis != nil && cfg.Redis.Addr != "" {
		rows = append(rows, [2]string{"cache", "redis " + cfg.Redis.Addr})
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = styleSubtitle.Render(padRight(r[0], 10)) + " " + r[1]
	}

	var where string
	if path, err := config.ConfigPath(); err == nil {
		where = styleSubtitle.Render("Edit " + path + " to change these")
	}

	return a.center(
		styleLogo.Render("Settings"),
		styleBox.Width(56).Render(strings.Join(lines, "\n")),
		where,
		styleStatusBar.Render("esc back"),
	)
}

func maskKey(k string) string {
	switch {
	case k == "":
		return "not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	}
	return "****"
}
