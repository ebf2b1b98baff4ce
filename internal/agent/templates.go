package agent

import (
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

var templateHooks = map[script.Platform][]string{
	script.PlatformYouTube: {
		"What if I told you that %[1]s could change everything?",
		"Most people think %[1]s is complicated, but here's the truth...",
		"Stop what you're doing - this %[1]s hack will blow your mind!",
	},
	script.PlatformTikTok: {
		"POV: You just discovered the secret to %[1]s",
		"Wait for it... %[1]s edition!",
		"Nobody talks about this %[1]s trick...",
	},
	script.PlatformInstagram: {
		"Save this before it's gone! %[1]s secrets revealed",
		"You've been doing %[1]s wrong this whole time",
		"The %[1]s tip that changed my life ✨",
	},
}

var generalTemplateHooks = []string{
	"Here's what nobody tells you about %[1]s",
	"The truth about %[1]s might surprise you",
	"Master %[1]s in just %[2]s",
}

// TemplateHooks fills the hook options from canned per-platform lines.
// It is the stand-in for Hook.Generate when no provider is configured.
func TemplateHooks(s *script.ProjectState) *Result {
	lines, ok := templateHooks[s.Platform]
	if !ok {
		lines = generalTemplateHooks
	}
	duration := s.Duration()
	if duration == "" {
		duration = script.DefaultDuration(s.Platform)
	}
	topic := s.Topic
	if topic == "" {
		topic = "this"
	}

	opts := make([]script.Option, len(lines))
	for i, l := range lines {
		opts[i] = script.Option{Type: "Template", Text: fmt.Sprintf(l, topic, duration)}
	}

	hook := s.Ensure(script.KindHook)
	hook.AllOptions = opts
	hook.Pending = nil
	hook.Iterations++
	s.ActiveModule = script.ModuleHook
	s.RecordGenerated(script.KindHook, opts)

	var b strings.Builder
	fmt.Fprintf(&b, "🎣 **Generated %d Hook Options (Template Mode):**\n\n", len(opts))
	for i, o := range opts {
		fmt.Fprintf(&b, "**Option %d:**\n%s\n\n", i+1, o.Text)
	}
	b.WriteString("**Select a hook:** type a number (1-3).")

	return &Result{
		Kind:     script.KindHook,
		Message:  b.String(),
		Options:  opts,
		Strategy: "template",
	}
}
