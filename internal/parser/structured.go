package parser

import (
	"encoding/json"
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

type jsonOption struct {
	Type           string `json:"type"`
	Text           string `json:"text"`
	Script         string `json:"script"`
	PrimaryText    string `json:"primary_text"`
	Visual         string `json:"visual"`
	Duration       string `json:"duration"`
	SupportingText string `json:"supporting_text"`
}

// DecodeJSON reads options from a JSON reply of the form {"options": [...]}
// or a bare array. It returns nil when the reply is not usable JSON so the
// caller can fall back to Parse.
func DecodeJSON(content string, f Format) []script.Option {
	content = stripFences(strings.TrimSpace(content))

	var raw []jsonOption
	var wrapped struct {
		Options []jsonOption `json:"options"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil && len(wrapped.Options) > 0 {
		raw = wrapped.Options
	} else if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil
	}

	var out []script.Option
	for _, r := range raw {
		text := firstNonEmpty(r.Text, r.Script, r.PrimaryText)
		if text == "" && r.Type != "" {
			text = f.Fallback(r.Type)
		}
		if text == "" {
			continue
		}
		typ := r.Type
		if typ == "" {
			typ = f.DefaultType
		}
		out = append(out, script.Option{
			Type:           typ,
			Text:           trimQuotes(text),
			Visual:         r.Visual,
			Duration:       r.Duration,
			SupportingText: r.SupportingText,
		})
	}
	return limit(out)
}

// stripFences removes a surrounding markdown code fence.
func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	var lines []string
	in := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			in = !in
			continue
		}
		if in {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
