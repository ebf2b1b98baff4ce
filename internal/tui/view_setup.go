package tui

import (
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/config"
)

func (a *App) renderSetup() string {
	if a.state.setupStep == 1 {
		return a.renderKeyStep()
	}
	return a.renderProviderStep()
}

func (a *App) renderProviderStep() string {
	rows := make([]string, 0, len(config.Providers))
	for i, p := range config.Providers {
		mark, style := "  ( )", styleSubtitle
		if i == a.state.selectedProvider {
			mark, style = "> (•)", styleSelected
		}
		key := ""
		if !p.NeedsAPIKey {
			key = " · no key"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s %-11s %s%s", mark, p.Name, truncate(p.Description, 32), key)))
	}

	return a.center(
		styleLogo.Render(logo),
		styleHeading.Render("Pick the model provider that will write your hooks"),
		styleBox.Width(60).Render(strings.Join(rows, "\n")),
		styleStatusBar.Render("↑/↓ move · enter choose · ctrl+c quit"),
	)
}

func (a *App) renderKeyStep() string {
	p := config.GetProvider(a.state.config.Provider)
	if p == nil {
		return a.renderProviderStep()
	}

	var details []string
	if p.DefaultModel != "" {
		details = append(details, "Model: "+p.DefaultModel)
	}
	if p.SignupURL != "" {
		details = append(details, "Keys: "+p.SignupURL)
	}

	return a.center(
		styleLogo.Render(logo),
		styleHeading.Render(p.Name+" API key"),
		styleSubtitle.Render(strings.Join(details, "\n")),
		styleBox.Width(60).BorderForeground(colorSecondary).Render(a.state.apiKeyInput.View()),
		styleSubtitle.Render("Stored in ~/.config/hookline/config.yaml (HOOKLINE_API_KEY wins over it)."),
		styleStatusBar.Render("enter save · esc back"),
	)
}
