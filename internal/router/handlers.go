package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/acts"
	"github.com/sant0-9/hookline/internal/agent"
	"github.com/sant0-9/hookline/internal/intent"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

const generateFirst = `
• Type ` + "`hook`" + ` for video openings
• Type ` + "`story`" + ` for narrative structure
• Type ` + "`cta`" + ` for call-to-action`

func (r *Router) global(ctx context.Context, t *turn) (*Response, error) {
	switch t.lower {
	case "exit", "quit":
		if r.projects != nil {
			if err := r.projects.Save(ctx, t.s); err != nil {
				return nil, fmt.Errorf("save project: %w", err)
			}
		}
		resp := text("Project saved! See you next time!")
		resp.RequiresUserInput = false
		resp.Metadata["exit"] = true
		return resp, nil
	case "help":
		return text(helpText), nil
	case "status":
		return text(statusText(t.s)), nil
	case "save":
		if r.projects == nil {
			return text("Project storage is not configured, so nothing was saved."), nil
		}
		if err := r.projects.Save(ctx, t.s); err != nil {
			return nil, fmt.Errorf("save project: %w", err)
		}
		return text("✓ Project saved successfully!"), nil
	case "export":
		out := script.ExportText(t.s)
		if out == "" {
			return text("Nothing to export yet. Generate a hook, story or CTA first."), nil
		}
		resp := text("**📄 Your Script**\n\n" + out)
		resp.Metadata["export"] = out
		return resp, nil
	case "list":
		return r.list(ctx)
	}
	return text(helpText), nil
}

func (r *Router) list(ctx context.Context) (*Response, error) {
	if r.projects == nil {
		return text("Project storage is not configured."), nil
	}
	projects, err := r.projects.List(ctx, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if len(projects) == 0 {
		return text("No saved projects yet."), nil
	}
	var b strings.Builder
	b.WriteString("**📚 Your Projects**\n\n")
	for _, p := range projects {
		status := "⏳ In Progress"
		if p.Status == script.StatusCompleted {
			status = "✅ Completed"
		}
		fmt.Fprintf(&b, "• **%s** (%s) - %s - `%s`\n", p.Title, p.Platform, status, p.ID)
	}
	return text(b.String()), nil
}

func (r *Router) mood(ctx context.Context, t *turn) (*Response, error) {
	res, err := r.team.Story.AnswerMood(ctx, t.s, t.input)
	if err != nil {
		return nil, err
	}
	return storyResponse(t.s, res), nil
}

func (r *Router) timing(ctx context.Context, t *turn) (*Response, error) {
	res, err := r.team.Story.AnswerTiming(ctx, t.s, t.input)
	if err != nil {
		return nil, err
	}
	return storyResponse(t.s, res), nil
}

func (r *Router) startStory(ctx context.Context, s *script.ProjectState) (*Response, error) {
	if q := r.team.Story.Prelude(s); q != nil {
		resp := text(q.Message)
		if s.AwaitingTiming() {
			resp.Metadata["awaiting"] = "timing"
		} else {
			resp.Metadata["awaiting"] = "mood"
		}
		return resp, nil
	}
	res, err := r.team.Story.Generate(ctx, s)
	if err != nil {
		return nil, err
	}
	return storyResponse(s, res), nil
}

// storyResponse adds the first act prompt when generation moved the
// story into act development.
func storyResponse(s *script.ProjectState, res *agent.Result) *Response {
	resp := fromResult(res)
	if s.InActDevelopment() {
		act := s.Story.Workflow.CurrentAct
		resp.Content += "\n" + acts.StartPrompt(s, act)
		resp.Options = nil
		resp.Metadata["current_act"] = act
	}
	return resp
}

func (r *Router) selectOption(ctx context.Context, t *turn) (*Response, error) {
	n := t.selected
	kind, opts, ok := t.s.LatestOptions()
	if !ok || n < 1 || n > len(opts) {
		return text("No recent options to select from. Please generate content first:" + generateFirst), nil
	}
	opt := opts[n-1]

	c := t.s.Ensure(kind)
	c.Finalize(opt.Text)
	c.Pending = nil
	t.s.Append(script.Event{Type: script.SelectedEvent(kind), Component: kind, Index: n, Text: opt.Text})

	var b strings.Builder
	switch kind {
	case script.KindHook:
		fmt.Fprintf(&b, "✅ Great choice! Option %d selected for your hook:\n\n*%q*\n\n", n, opt.Text)
	case script.KindCTA:
		fmt.Fprintf(&b, "✅ Perfect! Option %d selected for your CTA:\n\n*%q*\n\n", n, opt.Text)
	default:
		fmt.Fprintf(&b, "✅ Excellent! Option %d selected for your story structure.\n\n", n)
	}
	b.WriteString(nextSteps(t.s, kind))

	resp := text(b.String())
	resp.Metadata["selected"] = n
	resp.Metadata["component"] = string(kind)
	return resp, nil
}

// nextSteps suggests what to do after kind was locked in.
func nextSteps(s *script.ProjectState, kind script.ComponentKind) string {
	if s.Complete() {
		return "🎉 Your script is complete! What would you like to do?\n" +
			"• Type `review` to see complete script and get feedback\n" +
			"• Type `export` to save your script\n" +
			"• Type `humanize` to make it sound more natural\n" +
			"• Type `status` to see detailed progress"
	}
	switch kind {
	case script.KindHook:
		return "What would you like to work on next?\n" +
			"• Type `story` to develop the narrative\n" +
			"• Type `cta` to create your call-to-action"
	case script.KindStory:
		return "What would you like to work on next?\n" +
			"• Type `cta` to create your call-to-action\n" +
			"• Type `review` to see what you have so far"
	}
	return "What would you like to work on next?\n" +
		"• Type `status` to review your progress\n" +
		"• Type `review` to see complete script"
}

func (r *Router) ctaFollowUp(ctx context.Context, t *turn) (*Response, error) {
	res, err := r.team.CTA.FollowUp(ctx, t.s, t.input)
	if err != nil {
		return nil, err
	}
	return fromResult(res), nil
}

func (r *Router) hookEnhance(ctx context.Context, t *turn) (*Response, error) {
	n, _ := agent.EnhanceTarget(t.lower)
	res, err := r.team.Hook.Enhance(ctx, t.s, n)
	if err != nil {
		return nil, err
	}
	return fromResult(res), nil
}

func (r *Router) hookPending(ctx context.Context, t *turn) (*Response, error) {
	res, ok := agent.ApplyEnhancement(t.s, pendingChoices[t.lower])
	if !ok {
		return text("No enhanced hook is waiting. Type `enhance 1` to enhance an option."), nil
	}
	return fromResult(res), nil
}

func (r *Router) command(ctx context.Context, t *turn) (*Response, error) {
	var (
		res *agent.Result
		err error
	)
	switch commandGroup(t) {
	case "cta":
		res, err = r.team.CTA.Generate(ctx, t.s)
	case "research":
		res, err = r.team.Research.Process(ctx, t.s, t.input)
	case "stylist":
		res, err = r.team.Stylist.Process(ctx, t.s, t.input)
	case "challenger":
		res, err = r.team.Challenger.Process(ctx, t.s, t.input)
	case "edit":
		return edit(t), nil
	}
	if err != nil {
		return nil, err
	}
	return fromResult(res), nil
}

// edit shows a component, or replaces it when new text follows the
// command.
func edit(t *turn) *Response {
	var kind script.ComponentKind
	var rest string
	for _, k := range script.Kinds {
		prefix := "edit " + string(k)
		if strings.HasPrefix(t.lower, prefix) {
			kind = k
			rest = strings.TrimSpace(t.input[len(prefix):])
			rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			break
		}
	}

	c := t.s.Component(kind)
	current := ""
	if c != nil {
		current = c.Content
	}
	if kind == script.KindStory {
		current = t.s.StoryText()
	}
	if current == "" {
		return text(fmt.Sprintf("No %s to edit yet. Generate one first.", kind))
	}
	if rest == "" || strings.EqualFold(rest, "cancel") {
		preview := current
		if len([]rune(preview)) > 200 {
			preview = string([]rune(preview)[:200]) + "..."
		}
		return text(fmt.Sprintf("**Current %s:**\n\n%s\n\nType `edit %s [your updated text]` to replace it.",
			kind.Label(), preview, kind))
	}

	c = t.s.Ensure(kind)
	c.Content = rest
	c.Finalized = false
	c.Iterations++
	t.s.Append(script.Event{Type: script.EventComponentEdited, Component: kind, Text: rest})

	resp := text(fmt.Sprintf("✅ %s updated successfully!\n\nWhat would you like to do next?\n"+
		"• Type `review` to see your updated script\n"+
		"• Type `humanize` to make it more natural\n"+
		"• Type `export` to save your script", kind.Label()))
	resp.Metadata["component"] = string(kind)
	return resp
}

func (r *Router) actDevelopment(ctx context.Context, t *turn) (*Response, error) {
	reply, err := r.acts.Handle(ctx, t.s, t.input)
	if err != nil {
		return nil, err
	}
	resp := text(reply.Message)
	resp.Metadata["current_act"] = t.s.Story.Workflow.CurrentAct
	resp.Metadata["act_command"] = string(reply.Command)
	if reply.Complete {
		resp.Metadata["story_complete"] = true
	}
	return resp, nil
}

func (r *Router) more(ctx context.Context, t *turn) (*Response, error) {
	var (
		res *agent.Result
		err error
	)
	switch t.s.LastGenerated {
	case script.KindHook:
		res, err = r.team.Hook.GenerateMore(ctx, t.s)
	case script.KindCTA:
		res, err = r.team.CTA.GenerateMore(ctx, t.s)
	case script.KindStory:
		return r.startStory(ctx, t.s)
	default:
		return text("No recent options to regenerate. Please generate content first:" + generateFirst), nil
	}
	if err != nil {
		return nil, err
	}
	return fromResult(res), nil
}

func (r *Router) custom(ctx context.Context, t *turn) (*Response, error) {
	content := t.input
	for _, p := range customPrefixes {
		if wordPrefix(t.lower, p) {
			content = strings.TrimSpace(t.input[len(p):])
			break
		}
	}
	if content == "" {
		return text("Please provide your custom content.\n\nFormat: `custom: [your text here]`"), nil
	}

	kind := t.s.LastGenerated
	switch kind {
	case script.KindHook:
		res, err := r.team.Hook.Custom(ctx, t.s, content)
		if err != nil {
			return nil, err
		}
		return fromResult(res), nil
	case script.KindCTA, script.KindStory:
		c := t.s.Ensure(kind)
		c.Finalize(content)
		c.Iterations++
		t.s.Append(script.Event{Type: script.EventCustomContent, Component: kind, Text: content})
		t.s.Append(script.Event{Type: script.SelectedEvent(kind), Component: kind})
		resp := text(fmt.Sprintf("✅ Custom %s set successfully!\n\n*%q*\n\n%s", kind.Label(), content, nextSteps(t.s, kind)))
		resp.Metadata["component"] = string(kind)
		return resp, nil
	}
	return text("Please generate content first before providing custom options:" + generateFirst), nil
}

func (r *Router) classify(ctx context.Context, t *turn) (*Response, error) {
	in, err := r.intents.Parse(ctx, t.s, t.input)
	if err != nil {
		return nil, err
	}

	var resp *Response
	switch in.Action {
	case intent.ActionStartHook:
		res, err := r.team.Hook.Generate(ctx, t.s)
		if err != nil {
			return nil, err
		}
		resp = fromResult(res)
	case intent.ActionStartStory:
		resp, err = r.startStory(ctx, t.s)
		if err != nil {
			return nil, err
		}
	case intent.ActionStartCTA:
		res, err := r.team.CTA.Generate(ctx, t.s)
		if err != nil {
			return nil, err
		}
		resp = fromResult(res)
	case intent.ActionReviewScript:
		resp = fromReply(intent.ReviewScript(t.s))
	case intent.ActionProvideContext:
		resp = fromReply(intent.ProvideContext(t.s, t.input))
	case intent.ActionAddToneSample:
		resp = fromReply(intent.AddToneSample(t.s, t.input))
	case intent.ActionFeedback:
		reply, err := r.intents.Feedback(ctx, t.s, t.input)
		if err != nil {
			return nil, err
		}
		resp = fromReply(reply)
	case intent.ActionFinalize:
		resp = fromReply(intent.Finalize(t.s))
	default:
		resp = fromReply(intent.Unclear(t.s))
	}
	resp.Metadata["intent"] = string(in.Action)
	resp.Metadata["intent_source"] = string(in.Source)
	return resp, nil
}
