package intent

// Action is what the user wants to do next.
type Action string

const (
	ActionStartHook      Action = "start_hook"
	ActionStartStory     Action = "start_story"
	ActionStartCTA       Action = "start_cta"
	ActionReviewScript   Action = "review_script"
	ActionProvideContext Action = "provide_context"
	ActionAddToneSample  Action = "add_tone_sample"
	ActionFeedback       Action = "request_feedback"
	ActionFinalize       Action = "finalize_component"
	ActionUnclear        Action = "unclear"
)

// Actions is the closed set the classifier may answer with.
var Actions = []Action{
	ActionStartHook,
	ActionStartStory,
	ActionStartCTA,
	ActionReviewScript,
	ActionProvideContext,
	ActionAddToneSample,
	ActionFeedback,
	ActionFinalize,
	ActionUnclear,
}

// Source says how an intent was decided.
type Source string

const (
	SourceKeyword Source = "keyword"
	SourceLLM     Source = "llm"
)

// Intent holds the user's classified instruction
type Intent struct {
	Action Action
	// The raw instruction from the user
	RawPrompt string
	Source    Source
}

// New creates a new intent from a raw prompt
func New(action Action, prompt string, source Source) *Intent {
	return &Intent{
		Action:    action,
		RawPrompt: prompt,
		Source:    source,
	}
}
