package agent

import (
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

func renderHooks(topic string, opts []script.Option) string {
	var b strings.Builder
	if len(opts) <= 3 {
		fmt.Fprintf(&b, "I've created %d hook options for your video about %q:\n\n", len(opts), topic)
	} else {
		fmt.Fprintf(&b, "Here are all %d hook options for your video about %q:\n\n", len(opts), topic)
	}
	for i, o := range opts {
		fmt.Fprintf(&b, "**Option %d: %s**\n", i+1, o.Type)
		fmt.Fprintf(&b, "📝 Script: %q\n", o.Text)
		fmt.Fprintf(&b, "🎬 Visual: %s\n", orDefault(o.Visual, "Eye-catching opening visuals"))
		fmt.Fprintf(&b, "⏱️ Duration: %s\n\n", orDefault(o.Duration, "5-8 seconds"))
	}
	b.WriteString("💡 **Your Options:**\n")
	b.WriteString("• Type a number (1-3) or `option N` to select\n")
	b.WriteString("• Type `more` to generate 3 additional hook styles\n")
	b.WriteString("• Type `enhance N` to improve a specific option\n")
	b.WriteString("• Type `custom: [your text]` to use your own hook\n")
	return b.String()
}

func renderCTAs(opts []script.Option) string {
	var b strings.Builder
	b.WriteString("## 🎯 Call-to-Action Options\n\n")
	for i, o := range opts {
		fmt.Fprintf(&b, "**Option %d: %s**\n", i+1, o.Type)
		fmt.Fprintf(&b, "📣 %q\n", o.Text)
		if o.SupportingText != "" {
			fmt.Fprintf(&b, "💬 %s\n", o.SupportingText)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
