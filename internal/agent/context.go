package agent

import (
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

// promptContext summarises context documents, tone samples and the
// other components for a generator prompt.
func promptContext(s *script.ProjectState, forKind script.ComponentKind) string {
	var parts []string

	if len(s.ContextDocuments) > 0 {
		docs := s.ContextDocuments
		if len(docs) > 2 {
			docs = docs[:2]
		}
		parts = append(parts, "Background: "+strings.Join(docs, " "))
	}
	if len(s.ToneSamples) > 0 {
		parts = append(parts, "Tone reference: "+clip(s.ToneSamples[0], 200))
	}
	if forKind != script.KindCTA && s.CTA != nil && s.CTA.Content != "" {
		parts = append(parts, "Building toward CTA: "+s.CTA.Content)
	}

	if len(parts) == 0 {
		return "No additional context"
	}
	return strings.Join(parts, " | ")
}

func storySummary(s *script.ProjectState) string {
	text := s.StoryText()
	if text == "" {
		return "Story not yet developed"
	}
	if len([]rune(text)) > 200 {
		return string([]rune(text)[:200]) + "..."
	}
	return text
}

func hookText(s *script.ProjectState) string {
	if s.Hook != nil && s.Hook.Content != "" {
		return s.Hook.Content
	}
	return "No hook yet"
}

func audience(s *script.ProjectState) string {
	if s.Audience != "" {
		return s.Audience
	}
	return "general audience"
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
