package intent

import (
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

// maxToneSamples is where tone matching has enough material.
const maxToneSamples = 5

// Reply is an orchestrator answer that needs no specialist agent.
type Reply struct {
	Content           string
	RequiresUserInput bool
	Metadata          map[string]any
}

func statusMark(c *script.ScriptComponent) string {
	switch {
	case c != nil && c.Finalized:
		return "✅"
	case c != nil:
		return "⏳"
	}
	return "❌"
}

// ReviewScript shows every component's status and the script so far.
func ReviewScript(s *script.ProjectState) *Reply {
	marks := map[string]string{
		"Hook":  statusMark(s.Hook),
		"Story": statusMark(s.Story),
		"CTA":   statusMark(s.CTA),
	}

	var parts []string
	for _, k := range script.Kinds {
		text := ""
		if k == script.KindStory {
			text = s.StoryText()
		} else if c := s.Component(k); c != nil {
			text = c.Content
		}
		if text != "" {
			parts = append(parts, fmt.Sprintf("**%s:**\n%s", strings.ToUpper(string(k)), text))
		}
	}
	full := "No content created yet."
	if len(parts) > 0 {
		full = strings.Join(parts, "\n\n")
	}

	content := fmt.Sprintf(`## Script Review for "%s"

**Component Status:**
- Hook: %s
- Story: %s
- CTA: %s

**Current Script:**
%s

What would you like to work on next?`, s.Topic, marks["Hook"], marks["Story"], marks["CTA"], full)

	return &Reply{
		Content:           content,
		RequiresUserInput: true,
		Metadata:          map[string]any{"intent": string(ActionReviewScript), "components_status": marks},
	}
}

// ProvideContext stores input as a background document.
func ProvideContext(s *script.ProjectState, input string) *Reply {
	if input = strings.TrimSpace(input); input != "" {
		s.ContextDocuments = append(s.ContextDocuments, input)
		s.Append(script.Event{Type: script.EventContextAdded, Text: input})
	}
	return &Reply{
		Content: `Thank you for providing that context! This background information will help all our specialists create more targeted and relevant content.

I've stored this information and will ensure it's considered throughout the script creation process.

What aspect of the script would you like to focus on now?`,
		RequiresUserInput: true,
		Metadata:          map[string]any{"intent": string(ActionProvideContext)},
	}
}

// AddToneSample stores input as a writing sample for voice matching.
func AddToneSample(s *script.ProjectState, input string) *Reply {
	if input = strings.TrimSpace(input); input != "" {
		s.ToneSamples = append(s.ToneSamples, input)
		s.Append(script.Event{Type: script.EventToneSampleAdded, Text: input})
	}
	n := len(s.ToneSamples)

	next := "Would you like to add another sample, or shall we proceed with script creation?"
	if n >= maxToneSamples {
		next = "We have enough samples to accurately match your voice. Let's proceed with script creation!"
	}
	content := fmt.Sprintf(`Perfect! I've captured your writing sample (sample %d of ideally 2-5).

%s

Your unique voice will be maintained throughout the script by our Stylist agent.`, n, next)

	return &Reply{
		Content:           content,
		RequiresUserInput: true,
		Metadata:          map[string]any{"intent": string(ActionAddToneSample), "sample_count": n},
	}
}

// Finalize locks the active module's component.
func Finalize(s *script.ProjectState) *Reply {
	names := map[script.Module]struct {
		kind script.ComponentKind
		name string
	}{
		script.ModuleHook:  {script.KindHook, "hook"},
		script.ModuleStory: {script.KindStory, "story"},
		script.ModuleCTA:   {script.KindCTA, "call-to-action"},
	}

	meta := map[string]any{"intent": string(ActionFinalize)}
	target, ok := names[s.ActiveModule]
	c := s.Component(target.kind)
	if !ok || c == nil || strings.TrimSpace(c.Content) == "" {
		return &Reply{
			Content:           "I couldn't determine which component to finalize. Please specify which part you'd like to lock in: hook, story, or CTA.",
			RequiresUserInput: true,
			Metadata:          meta,
		}
	}

	c.Finalized = true
	s.Append(script.Event{Type: script.EventComponentFinalized, Component: target.kind})
	meta["finalized"] = target.name
	return &Reply{
		Content:           fmt.Sprintf("Excellent! I've finalized the %s. This component is now locked in.\n\nWhat would you like to work on next?", target.name),
		RequiresUserInput: true,
		Metadata:          meta,
	}
}

// Unclear welcomes the user according to how far the script has come.
func Unclear(s *script.ProjectState) *Reply {
	has := func(k script.ComponentKind) bool {
		c := s.Component(k)
		return c != nil && c.Content != ""
	}

	var content string
	switch {
	case s.Complete():
		content = fmt.Sprintf(`Welcome back! Your script for "%s" is complete.

📊 **Current Status:**
✅ Hook: Complete
✅ Story: Complete
✅ CTA: Complete

🎯 **What would you like to do?**
• Type `+"`review`"+` → See your complete script and get feedback
• Type `+"`status`"+` → Check detailed progress
• Type `+"`export`"+` → Export your final script
• Type `+"`humanize`"+` → Make your script sound more natural
• Type `+"`edit hook/story/cta`"+` → Revise any component

💡 **Tip:** Since your script is complete, consider using `+"`review`"+` to get comprehensive feedback from our Challenger agent.`, s.Topic)

	case has(script.KindHook) || has(script.KindStory) || has(script.KindCTA):
		var done, todo []string
		for _, k := range script.Kinds {
			if s.Component(k).Done() {
				done = append(done, "✅ "+k.Label())
			} else {
				todo = append(todo, string(k))
			}
		}
		next := todo[0]
		var pending []string
		for _, t := range todo {
			pending = append(pending, "⏳ "+script.ComponentKind(t).Label())
		}
		content = fmt.Sprintf(`Welcome back! Let's continue your script for "%[1]s".

📊 **Current Progress:**
%[2]s
%[3]s

🎯 **Continue where you left off:**
• Type `+"`%[4]s`"+` → Create your %[4]s
• Type `+"`status`"+` → See detailed progress
• Type `+"`review`"+` → See what you have so far

💡 **Next step:** Based on your progress, I recommend working on `+"`%[4]s`"+` next.`,
			s.Topic, strings.Join(done, "\n"), strings.Join(pending, "\n"), next)

	default:
		content = fmt.Sprintf(`Welcome! Let's create an engaging video script for "%s".

Here are your options with the commands to use:

📝 **Generate Content:**
• Type `+"`hook`"+` → Create 3 attention-grabbing video openings
• Type `+"`story`"+` → Develop your narrative structure
• Type `+"`cta`"+` → Design compelling calls-to-action

📊 **Review & Manage:**
• Type `+"`status`"+` → Check what's been completed
• Type `+"`review`"+` → See your complete script
• Type `+"`help`"+` → Show all available commands

🎯 **Quick Start Suggestion:**
Start with `+"`hook`"+` to create your opening, then `+"`story`"+` for structure, and finally `+"`cta`"+` for your ending.

What would you like to do? Just type one of the commands above.`, s.Topic)
	}

	return &Reply{
		Content:           content,
		RequiresUserInput: true,
		Metadata:          map[string]any{"intent": string(ActionUnclear)},
	}
}
