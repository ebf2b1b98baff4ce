package intent

import (
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

const classifyPrompt = `Analyze the following user input and determine their intent.

Current project state:
- Topic: %s
- Hook finalized: %t
- Story finalized: %t
- CTA finalized: %t
- Active module: %s

User input: "%s"

Possible intents:
- START_HOOK: User wants to work on the hook/opening
- START_STORY: User wants to work on the main story/body
- START_CTA: User wants to work on the call-to-action
- REVIEW_SCRIPT: User wants to review the complete script
- PROVIDE_CONTEXT: User is providing background information
- ADD_TONE_SAMPLE: User is providing writing samples for tone matching
- REQUEST_FEEDBACK: User wants feedback on existing content
- FINALIZE_COMPONENT: User wants to finalize/lock a component
- UNCLEAR: Intent is not clear

Return only the intent name, nothing else.`

const feedbackPrompt = `The user is requesting feedback. Based on the current state and their input, determine which component they want feedback on.

User input: "%s"
Active module: %s

Current script:
%s

Provide constructive feedback following the 5:1 positive-to-constructive ratio.`

func finalized(c *script.ScriptComponent) bool {
	return c != nil && c.Finalized
}

func buildClassifyPrompt(s *script.ProjectState, input string) string {
	return fmt.Sprintf(classifyPrompt, s.Topic,
		finalized(s.Hook), finalized(s.Story), finalized(s.CTA),
		s.ActiveModule, input)
}

// parseLabel maps a model answer onto the closed action set. Anything
// else is unclear.
func parseLabel(resp string) Action {
	label := strings.TrimSpace(resp)
	label = strings.Trim(label, "`\"'.*")
	label = strings.ToLower(strings.TrimSpace(label))
	for _, a := range Actions {
		if label == string(a) {
			return a
		}
	}
	return ActionUnclear
}
