package tui

import (
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

// Roughly four characters per token for English prose.
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// contextTokens estimates what the project's documents, samples and
// script add to every prompt.
func contextTokens(s *script.ProjectState) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, d := range s.ContextDocuments {
		n += estimateTokens(d)
	}
	for _, t := range s.ToneSamples {
		n += estimateTokens(t)
	}
	for _, c := range []*script.ScriptComponent{s.Hook, s.Story, s.CTA} {
		if c != nil {
			n += estimateTokens(c.Content)
		}
	}
	return n
}

// First match wins, so longer model families come before their prefixes.
var contextWindows = []struct {
	family string
	tokens int
}{
	{"claude", 200_000},
	{"gpt-4o", 128_000},
	{"gpt-4-turbo", 128_000},
	{"gpt-4", 8_000},
	{"deepseek", 64_000},
	{"llama-3", 128_000},
	{"llama3", 128_000},
	{"mixtral", 32_000},
}

const defaultContextWindow = 8_000

func contextWindow(model string) int {
	model = strings.ToLower(model)
	for _, w := range contextWindows {
		if strings.Contains(model, w.family) {
			return w.tokens
		}
	}
	return defaultContextWindow
}
