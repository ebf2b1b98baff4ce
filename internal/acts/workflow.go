package acts

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/prompts"
	"github.com/sant0-9/hookline/internal/script"
)

// fallbackDuration is used for act timing when the story has no duration.
const fallbackDuration = "2-3 minutes"

// Reply is the outcome of one act-development turn.
type Reply struct {
	Command Command
	Act     int
	Message string
	// Complete is set when the final act was closed and the story
	// assembled.
	Complete bool
}

// Workflow handles input while the story is in act development.
type Workflow struct {
	llm    llm.TextCompleter
	params llm.Params
	system string
	logger *zap.Logger
}

// New creates a new Workflow
func New(c llm.TextCompleter, cfg *config.Config, logger *zap.Logger) *Workflow {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := cfg.Params(config.RoleStory)
	return &Workflow{
		llm: c,
		params: llm.Params{
			Role:        config.RoleStory,
			Temperature: p.Temperature,
			MaxTokens:   p.MaxTokens,
		},
		system: prompts.System(config.RoleStory),
		logger: logger,
	}
}

func (w *Workflow) ask(ctx context.Context, prompt string) (string, error) {
	out, err := w.llm.Complete(ctx, w.system, prompt, w.params)
	if err != nil {
		return "", fmt.Errorf("act development: %w", err)
	}
	return out, nil
}

// Handle runs one input against the current act. The story must be in
// act development.
func (w *Workflow) Handle(ctx context.Context, s *script.ProjectState, input string) (*Reply, error) {
	story := s.Ensure(script.KindStory)
	wf := &story.Workflow
	act := wf.CurrentAct
	if act < 1 || act > script.ActCount {
		act = 1
		wf.CurrentAct = 1
	}

	in := Classify(input, act)
	w.logger.Debug("act input", zap.String("command", string(in.Command)), zap.Int("act", act))

	var (
		msg string
		err error
	)
	switch in.Command {
	case CmdResearch:
		msg, err = w.research(ctx, s, act, in.Arg)
	case CmdExamples:
		msg, err = w.examples(ctx, s, act, in.Arg)
	case CmdUseEnhanced:
		msg = useEnhanced(s, act)
	case CmdKeepOriginal:
		msg = keepOriginal(s, act)
	case CmdDraft:
		if in.Arg == "" {
			msg = "**Please provide your draft content after 'draft:'**\n\nExample: `draft: Your script content here...`"
			break
		}
		msg, err = w.review(ctx, s, act, in.Arg, in.Addition)
	case CmdEnhance:
		msg, err = w.enhance(ctx, s, act)
	case CmdNextAct:
		return NextAct(s), nil
	case CmdShowScript:
		msg = ShowScript(s)
	case CmdRequest:
		msg, err = w.feedback(ctx, s, act, in.Arg)
	default:
		msg, err = w.review(ctx, s, act, in.Arg, in.Addition)
	}
	if err != nil {
		return nil, err
	}
	return &Reply{Command: in.Command, Act: act, Message: msg}, nil
}

func duration(s *script.ProjectState) string {
	if d := s.Duration(); d != "" {
		return d
	}
	return fallbackDuration
}

func currentDraft(s *script.ProjectState, act int) string {
	if d := s.Story.Workflow.Act(act); d != "" {
		return d
	}
	return noDraftYet
}

func (w *Workflow) research(ctx context.Context, s *script.ProjectState, act int, topic string) (string, error) {
	if topic == "" {
		topic = s.Topic
	}
	out, err := w.ask(ctx, fmt.Sprintf(researchPrompt, s.Topic, topic, act, s.Audience, act))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`**📊 Research Results for Act %[1]d**

%[2]s

**How to use this:**
• Pick the most compelling stat for your opening
• Use examples to illustrate your points
• Save sources for credibility

**📝 Your current Act %[1]d draft:**
`+"```"+`
%[3]s
`+"```"+`

Continue writing or type `+"`next act`"+` when ready!`, act, out, currentDraft(s, act)), nil
}

func (w *Workflow) examples(ctx context.Context, s *script.ProjectState, act int, concept string) (string, error) {
	out, err := w.ask(ctx, fmt.Sprintf(examplesPrompt, concept, s.Topic, act, s.Audience))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`**💡 Example Ideas for Act %[1]d**

%[2]s

**Integration tips:**
• Choose the most relatable example for your audience
• Keep examples brief but impactful
• Use visuals to reinforce the story

**📝 Your current Act %[1]d draft:**
`+"```"+`
%[3]s
`+"```"+`

Continue developing Act %[1]d or type `+"`next act`"+` when ready!`, act, out, currentDraft(s, act)), nil
}

func useEnhanced(s *script.ProjectState, act int) string {
	wf := &s.Story.Workflow
	if strings.TrimSpace(wf.EnhancedDraft) == "" {
		wf.EnhancedDraft = ""
		return "❌ **No enhanced version available.** Please type `enhance` first to create an enhanced version of your draft."
	}
	draft := wf.EnhancedDraft
	wf.SetAct(act, draft)
	wf.EnhancedDraft = ""
	s.Story.Iterations++
	s.Append(script.Event{Type: script.EventEnhancementApplied, Component: script.KindStory, Index: act})

	return fmt.Sprintf(`✅ **Enhanced version is now your Act %[1]d draft!**

**📝 Your updated Act %[1]d (%[2]s):**
`+"```"+`
%[3]s
`+"```"+`

**Next steps:**
• Continue editing this act (just keep typing)
• Type `+"`research: [topic]`"+` for data
• Type `+"`example: [concept]`"+` for cases
• Type `+"`next act`"+` to move to Act %[4]d
• Type `+"`show script`"+` to see everything

Great improvement! What would you like to do next?`, act, script.ActDuration(duration(s), act), draft, act+1)
}

func keepOriginal(s *script.ProjectState, act int) string {
	wf := &s.Story.Workflow
	if strings.TrimSpace(wf.EnhancedDraft) == "" {
		return "❌ **No enhanced version to discard.** Type `enhance` to create one, or keep writing your draft."
	}
	wf.EnhancedDraft = ""

	return fmt.Sprintf(`✅ **Keeping your original draft for Act %[1]d**

**📝 Your Act %[1]d (%[2]s):**
`+"```"+`
%[3]s
`+"```"+`

**Next steps:**
• Continue editing this act (just keep typing)
• Type `+"`enhance`"+` to try enhancing again
• Type `+"`next act`"+` when ready to move on
• Type `+"`show script`"+` to see everything

Continue developing Act %[1]d or move to the next when ready!`, act, script.ActDuration(duration(s), act), currentDraft(s, act))
}

// review stores text as the act draft, or appends it for additions, and
// asks for encouraging feedback on the new text.
func (w *Workflow) review(ctx context.Context, s *script.ProjectState, act int, text string, addition bool) (string, error) {
	feedback, err := w.ask(ctx, fmt.Sprintf(reviewPrompt, act, s.Topic, text))
	if err != nil {
		return "", err
	}

	wf := &s.Story.Workflow
	draft := text
	if existing := wf.Act(act); addition && existing != "" {
		draft = existing + "\n\n" + text
	}
	wf.SetAct(act, draft)
	s.Story.Iterations++
	s.Append(script.Event{Type: script.EventComponentEdited, Component: script.KindStory, Index: act})

	return fmt.Sprintf(`**🌟 Feedback on Act %[1]d**

%[2]s

**📝 Your Act %[1]d (%[3]s):**
`+"```"+`
%[4]s
`+"```"+`

**Progress:** Act %[1]d ✅

**Next steps:**
• Refine this act more (just keep typing)
• Type `+"`enhance`"+` to improve your draft
• Type `+"`research: [topic]`"+` for data
• Type `+"`example: [concept]`"+` for cases
• Type `+"`next act`"+` to move to Act %[5]d
• Type `+"`show script`"+` to see everything

You're doing great! What would you like to do next?`, act, feedback, script.ActDuration(duration(s), act), draft, act+1), nil
}

// enhance stages a rewritten draft until the writer accepts or rejects it.
func (w *Workflow) enhance(ctx context.Context, s *script.ProjectState, act int) (string, error) {
	existing := s.Story.Workflow.Act(act)
	if existing == "" {
		return "**No draft to enhance yet!** Please write your initial draft first, then I can help enhance it.", nil
	}
	out, err := w.ask(ctx, fmt.Sprintf(enhancePrompt, act, s.Topic, existing))
	if err != nil {
		return "", err
	}
	s.Story.Workflow.EnhancedDraft = out

	return fmt.Sprintf(`**✨ Enhanced Version of Act %[1]d**

**Original Draft:**
`+"```"+`
%[2]s
`+"```"+`

**Enhanced Version:**
`+"```"+`
%[3]s
`+"```"+`

**Options:**
• Type `+"`use enhanced`"+` to replace your draft with this version
• Type `+"`keep original`"+` to stick with your version
• Type `+"`next act`"+` when ready to move on

What would you like to do?`, act, existing, out), nil
}

func (w *Workflow) feedback(ctx context.Context, s *script.ProjectState, act int, request string) (string, error) {
	draft := s.Story.Workflow.Act(act)
	if draft == "" {
		draft = "No draft yet"
	}
	out, err := w.ask(ctx, fmt.Sprintf(feedbackPrompt, act, s.Topic, request, draft))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`**💭 Response to Your Request**

%[1]s

**📝 Your current Act %[2]d draft:**
`+"```"+`
%[3]s
`+"```"+`

**Next steps:**
• Continue writing to develop this act
• Type `+"`enhance`"+` to improve your draft
• Type `+"`next act`"+` when ready
• Type `+"`show script`"+` to see everything

What would you like to do?`, out, act, currentDraft(s, act)), nil
}

// StartPrompt introduces act development for act n.
func StartPrompt(s *script.ProjectState, n int) string {
	return fmt.Sprintf(actPrompt, n, script.ActDuration(duration(s), n), n+1)
}

// NextAct advances to the next act, or completes the story after the
// last one.
func NextAct(s *script.ProjectState) *Reply {
	story := s.Ensure(script.KindStory)
	wf := &story.Workflow
	cur := wf.CurrentAct
	if cur < 1 {
		cur = 1
	}
	if cur >= script.ActCount {
		return complete(s)
	}

	next := cur + 1
	wf.CurrentAct = next
	wf.EnhancedDraft = ""

	msg := fmt.Sprintf("**✅ Act %d Complete!**\n\nGreat work on Act %d! Let's move to Act %d.\n%s\n\n**Act %d Focus:** %s\n\nWhat ideas do you have for Act %d?",
		cur, cur, next, StartPrompt(s, next), next, script.ActFocus(next), next)
	return &Reply{Command: CmdNextAct, Act: next, Message: msg}
}

func complete(s *script.ProjectState) *Reply {
	story := s.Story
	wf := &story.Workflow
	full := script.AssembleActs(wf, duration(s))
	text := full
	if text == "" {
		text = story.Content
	}
	story.Finalize(text)
	story.Iterations++
	wf.Mode = script.WorkflowComplete
	wf.EnhancedDraft = ""
	s.Append(script.Event{Type: script.EventComponentFinalized, Component: script.KindStory})

	if full == "" {
		full = "No acts written yet."
	}
	msg := fmt.Sprintf(`**🎉 Script Complete!**

Fantastic work! You've completed all three acts of your video script.

**📜 Final Script (%s)**
**Topic:** %s

---

%s

---

**Next steps:**
• Type `+"`cta`"+` to create your call-to-action
• Type `+"`review`"+` to see everything together
• Type `+"`export`"+` to save your script

What would you like to do next?`, duration(s), s.Topic, full)
	return &Reply{Command: CmdNextAct, Act: script.ActCount, Message: msg, Complete: true}
}

// ShowScript renders every written act with its timing. It does not
// change state.
func ShowScript(s *script.ProjectState) string {
	total := s.Duration()
	if total == "" {
		total = "Unknown duration"
	}
	current := 1
	full := "No acts written yet."
	if s.Story != nil {
		if s.Story.Workflow.CurrentAct > 0 {
			current = s.Story.Workflow.CurrentAct
		}
		if text := script.AssembleActs(&s.Story.Workflow, total); text != "" {
			full = text
		}
	}

	return fmt.Sprintf(`**📜 Your Complete Script So Far**
**Video Duration:** %[1]s
**Topic:** %[2]s

---

%[3]s

---

**Current Status:** Working on Act %[4]d

Continue with Act %[4]d or type `+"`next act`"+` to proceed.`, total, s.Topic, full, current)
}
