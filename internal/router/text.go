package router

import (
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

const helpText = `**📚 Hookline Commands**

**Core Commands:**
• ` + "`exit`" + ` - Save and quit
• ` + "`save`" + ` - Save your progress
• ` + "`export`" + ` - Show the script as plain text
• ` + "`list`" + ` - Show all saved projects
• ` + "`help`" + ` - Show this help message
• ` + "`status`" + ` - Show current script status

**Content Generation:**
• ` + "`hook`" + ` / ` + "`hooks`" + ` - Generate video hooks
• ` + "`story`" + ` - Work on the story structure
• ` + "`cta`" + ` - Work on the call-to-action

**Act Development (in Story):**
• ` + "`draft: [text]`" + ` - Submit your act draft
• ` + "`enhance`" + ` - Improve your current draft
• ` + "`research: [topic]`" + ` - Research specific topics
• ` + "`example: [concept]`" + ` - Get relevant examples
• ` + "`next act`" + ` - Move to next act
• ` + "`show script`" + ` - View complete script

**Quality Enhancement:**
• ` + "`research`" + ` - Fact-check and research topics
• ` + "`verify`" + ` - Verify specific claims
• ` + "`humanize`" + ` - Make content sound natural
• ` + "`style`" + ` / ` + "`tone`" + ` - Adjust style and tone
• ` + "`critique`" + ` - Get constructive feedback
• ` + "`challenge`" + ` - Challenge assumptions

**Options & Selection:**
• ` + "`1`, `2`, `3`" + ` - Select from generated options
• ` + "`more`" + ` - Generate additional options
• ` + "`enhance [number]`" + ` - Improve a specific hook option
• ` + "`custom: [text]`" + ` - Use your own content
• ` + "`edit hook|story|cta [text]`" + ` - Revise a component`

func statusText(s *script.ProjectState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**📊 Project Status: %s**\n\n", s.Title)
	fmt.Fprintf(&b, "**Topic:** %s\n", s.Topic)
	fmt.Fprintf(&b, "**Platform:** %s\n", s.Platform.Title())
	if s.Audience != "" {
		fmt.Fprintf(&b, "**Audience:** %s\n", s.Audience)
	}
	if d := s.Duration(); d != "" {
		fmt.Fprintf(&b, "**Duration:** %s\n", d)
	}
	b.WriteString("\n**Components:**\n")
	for _, k := range script.Kinds {
		fmt.Fprintf(&b, "• %s: %s\n", k.Label(), s.Component(k).Status())
	}
	if s.InActDevelopment() {
		fmt.Fprintf(&b, "\n**Act Development:** Act %d of %d\n", s.Story.Workflow.CurrentAct, script.ActCount)
	}
	fmt.Fprintf(&b, "\n**Context documents:** %d\n", len(s.ContextDocuments))
	fmt.Fprintf(&b, "**Tone samples:** %d\n", len(s.ToneSamples))
	if s.Complete() {
		b.WriteString("\n🎉 Your script is complete! Type `export` to get it.")
	}
	return b.String()
}
