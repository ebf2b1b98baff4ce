package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/llm/llmtest"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

const threeHooks = `HOOK 1:
Type: Curiosity Gap
Text: "Your coffee tastes bitter for one reason nobody mentions."
Visual Note: Close-up of a pour-over
Duration: 5 seconds

HOOK 2:
Type: Statistical Shock
Text: "Most home brewers waste half their beans without knowing it."
Visual Note: Beans spilling off a scale
Duration: 6 seconds

HOOK 3:
Type: Personal Story
Text: "I brewed bad coffee for ten years until a barista showed me this."
Visual Note: Creator holding an old mug
Duration: 7 seconds`

const threeCTAs = `**Option 1** - Gentle
Type: Subscribe
Primary Text: "Follow for a better cup every morning"
Supporting Text: New brewing tips every week.

**Option 2** - Direct
Type: Download
Primary Text: "Grab the free brew ratio chart"
Supporting Text: Never guess the ratio again.

**Option 3** - Value
Type: Join
Primary Text: "Join the weekend brew club"
Supporting Text: Share your cups with other home baristas.`

const storyStructure = `**Act 1: Setup**
- The bitter cup
**Act 2: Method**
- Grind size
- Water temperature
**Act 3: Payoff**
- The perfect cup`

type fakeProjects struct {
	saved []string
	list  []script.ProjectSummary
	err   error
}

func (f *fakeProjects) Save(ctx context.Context, s *script.ProjectState) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, s.ID)
	return nil
}

func (f *fakeProjects) List(ctx context.Context, filter store.Filter) ([]script.ProjectSummary, error) {
	return f.list, f.err
}

func newRouter(t *testing.T, replies ...string) (*Router, *llmtest.Provider) {
	t.Helper()
	fake := llmtest.New(replies...)
	return New(fake.Completer(), config.DefaultConfig()), fake
}

func coffee() *script.ProjectState {
	return script.NewProject("coffee brewing", script.PlatformTikTok, "home baristas")
}

// say routes text and fails the test on error.
func say(t *testing.T, r *Router, s *script.ProjectState, input string) (*Response, *script.ProjectState) {
	t.Helper()
	resp, next, err := r.Route(context.Background(), s, Message{Text: input})
	require.NoError(t, err, "input %q", input)
	return resp, next
}

func TestCoffeeBrewingScenario(t *testing.T) {
	r, fake := newRouter(t, threeHooks, storyStructure)
	s := coffee()

	resp, s := say(t, r, s, "hook")
	require.Len(t, resp.Options, 3)
	assert.Equal(t, "start_hook", resp.Metadata["intent"])

	resp, s = say(t, r, s, "2")
	assert.Equal(t, "selection", resp.Metadata["rule"])
	require.NotNil(t, s.Hook)
	assert.True(t, s.Hook.Finalized)
	assert.Equal(t, "Most home brewers waste half their beans without knowing it.", s.Hook.Content)

	resp, s = say(t, r, s, "story")
	assert.Contains(t, resp.Content, "How long will your video be?")
	assert.Equal(t, "timing", resp.Metadata["awaiting"])
	assert.True(t, s.AwaitingTiming())
	assert.Equal(t, 1, fake.Calls())

	resp, s = say(t, r, s, "45 seconds")
	assert.Equal(t, "timing", resp.Metadata["rule"])
	assert.Equal(t, "45 seconds", s.Duration())
	assert.True(t, s.InActDevelopment())
	assert.Equal(t, 1, s.Story.Workflow.CurrentAct)
	assert.Contains(t, resp.Content, "**🎬 Now let's develop Act 1 together!**")
	assert.Contains(t, resp.Content, "9 seconds")

	export := script.ExportText(s)
	assert.True(t, strings.HasPrefix(export, "HOOK:\nMost home brewers waste half their beans without knowing it."))
}

func TestRouteFailureKeepsState(t *testing.T) {
	fake := llmtest.New()
	fake.PushError(&llm.ProviderError{Kind: llm.KindAuth, Provider: "fake", Err: errors.New("bad key")})
	r := New(fake.Completer(), config.DefaultConfig())
	s := coffee()

	resp, next, err := r.Route(context.Background(), s, Message{Text: "hook"})
	require.Error(t, err)
	assert.Same(t, s, next)
	assert.Nil(t, s.Hook)
	assert.Empty(t, s.History)
	assert.Contains(t, resp.Content, "rejected the API key")
	assert.Equal(t, "provider_auth", resp.Metadata["error"])
}

func TestRouteDoesNotMutateInput(t *testing.T) {
	r, _ := newRouter(t, threeHooks)
	s := coffee()

	_, next := say(t, r, s, "hook")
	assert.Nil(t, s.Hook)
	assert.NotNil(t, next.Hook)
}

func TestSelectionWithoutOptions(t *testing.T) {
	r, _ := newRouter(t)
	resp, _ := say(t, r, coffee(), "option 1")
	assert.Contains(t, resp.Content, "No recent options to select from")
}

func TestSelectionOutOfRange(t *testing.T) {
	r, _ := newRouter(t, threeHooks)
	s := coffee()
	_, s = say(t, r, s, "hook")

	resp, next, err := r.Route(context.Background(), s, Message{OptionSelected: 7})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "No recent options to select from")
	assert.False(t, next.Hook.Finalized)
}

func TestExplicitOptionSelected(t *testing.T) {
	r, _ := newRouter(t, threeHooks)
	s := coffee()
	_, s = say(t, r, s, "hook")

	resp, next, err := r.Route(context.Background(), s, Message{Text: "I like this one a lot", OptionSelected: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Metadata["selected"])
	assert.Equal(t, "I brewed bad coffee for ten years until a barista showed me this.", next.Hook.Content)
}

func TestSelectingLastComponentCompletesScript(t *testing.T) {
	r, _ := newRouter(t, threeCTAs, "Soft CTA at 30%, main CTA at the end.")
	s := coffee()
	s.Ensure(script.KindHook).Finalize("Stop burning your beans.")
	s.Ensure(script.KindStory).Finalize("Three acts.")

	_, s = say(t, r, s, "cta")
	resp, s := say(t, r, s, "2")

	assert.Equal(t, "Grab the free brew ratio chart", s.CTA.Content)
	assert.Contains(t, resp.Content, "Your script is complete!")
	assert.Equal(t, script.EventCTASelected, s.LastEvent().Type)
}

func TestGeneratedComponentsDoNotCompleteScript(t *testing.T) {
	r, _ := newRouter(t, storyStructure, threeCTAs, "Soft CTA at 30%, main CTA at the end.")
	s := coffee()
	s.VideoDuration = "45 seconds"
	s.Ensure(script.KindHook).Finalize("Stop burning your beans.")

	_, s = say(t, r, s, "story")
	_, s = say(t, r, s, "cta")
	require.NotNil(t, s.Story)
	require.NotNil(t, s.CTA)
	assert.False(t, s.Story.Finalized)
	assert.False(t, s.CTA.Finalized)
	assert.False(t, s.Complete())

	resp, _ := say(t, r, s, "status")
	assert.NotContains(t, resp.Content, "Your script is complete")
	assert.Contains(t, resp.Content, "⏳ In Progress")
	assert.Equal(t, script.StatusInProgress, s.Summary().Status)
}

func TestImproveOptionEnhancesHook(t *testing.T) {
	enhanced := "Version 1 (Refined):\nScript: \"Hot water, flat coffee.\"\n\nVersion 2 (Bold):\nScript: \"Your kettle is the villain.\""
	r, _ := newRouter(t, threeHooks, enhanced)
	s := coffee()

	_, s = say(t, r, s, "hook")
	resp, s := say(t, r, s, "improve option 2")
	assert.Equal(t, "hook_enhance", resp.Metadata["rule"])
	require.NotNil(t, s.Hook.Pending)
	assert.False(t, s.Hook.Finalized)
}

func TestCTAFollowUpWindow(t *testing.T) {
	r, fake := newRouter(t, threeCTAs, "plan", "Optimized: Follow for daily brews")
	s := coffee()

	_, s = say(t, r, s, "cta")
	resp, _ := say(t, r, s, "optimize for tiktok")
	assert.Equal(t, "cta_followup", resp.Metadata["rule"])
	assert.Contains(t, fake.LastPrompt(), "Optimize this CTA for TikTok")
}

func TestMoreIsAdditive(t *testing.T) {
	more := `HOOK 1:
Type: Problem/Agitation
Text: "Stop pouring boiling water on your coffee grounds."
Visual Note: Kettle steam
Duration: 4 seconds`
	r, _ := newRouter(t, threeHooks, more)
	s := coffee()

	_, s = say(t, r, s, "hook")
	first := append([]script.Option(nil), s.Hook.AllOptions...)
	resp, s := say(t, r, s, "more")

	require.Len(t, s.Hook.AllOptions, 4)
	assert.Equal(t, first, s.Hook.AllOptions[:3])
	assert.Len(t, resp.Options, 4)
}

func TestMoreWithoutHistory(t *testing.T) {
	r, fake := newRouter(t)
	resp, _ := say(t, r, coffee(), "more")
	assert.Contains(t, resp.Content, "No recent options to regenerate")
	assert.Equal(t, 0, fake.Calls())
}

func TestCustom(t *testing.T) {
	r, _ := newRouter(t, threeCTAs, "plan")
	s := coffee()

	resp, _ := say(t, r, s, "custom")
	assert.Contains(t, resp.Content, "Please provide your custom content")

	_, s = say(t, r, s, "cta")
	_, s = say(t, r, s, "custom: Tag a friend who still uses instant")
	assert.Equal(t, "Tag a friend who still uses instant", s.CTA.Content)
	assert.True(t, s.CTA.Finalized)
}

func TestCustomNeedsWordBoundary(t *testing.T) {
	r, fake := newRouter(t, "PROVIDE_CONTEXT")
	s := coffee()

	resp, s := say(t, r, s, "customers are mostly students")
	assert.Equal(t, "intent", resp.Metadata["rule"])
	assert.Equal(t, 1, fake.Calls())
	assert.Equal(t, []string{"customers are mostly students"}, s.ContextDocuments)
}

func TestEdit(t *testing.T) {
	r, _ := newRouter(t)
	s := coffee()

	resp, _ := say(t, r, s, "edit hook")
	assert.Contains(t, resp.Content, "No hook to edit yet")

	s.Ensure(script.KindHook).Finalize("Stop burning your beans.")
	resp, _ = say(t, r, s, "edit hook")
	assert.Contains(t, resp.Content, "Stop burning your beans.")

	_, next := say(t, r, s, "edit hook Your grinder is lying to you.")
	assert.Equal(t, "Your grinder is lying to you.", next.Hook.Content)
	assert.False(t, next.Hook.Finalized)
	assert.Equal(t, 1, next.Hook.Iterations)
}

func TestGlobalCommands(t *testing.T) {
	projects := &fakeProjects{list: []script.ProjectSummary{{ID: "p1", Title: "Cold brew", Platform: script.PlatformYouTube, Status: script.StatusCompleted}}}
	fake := llmtest.New()
	r := New(fake.Completer(), config.DefaultConfig(), WithProjects(projects))
	s := coffee()
	s.Ensure(script.KindHook).Finalize("Stop burning your beans.")

	tests := []struct {
		input string
		want  string
	}{
		{"help", "Hookline Commands"},
		{"status", "Hook: ✅ Finalized"},
		{"STATUS", "Story: ❌ Not Started"},
		{"export", "HOOK:\nStop burning your beans."},
		{"save", "Project saved successfully"},
		{"list", "**Cold brew** (youtube) - ✅ Completed"},
		{"exit", "See you next time"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			resp, _ := say(t, r, s, tt.input)
			assert.Contains(t, resp.Content, tt.want)
			assert.Equal(t, "global", resp.Metadata["rule"])
		})
	}
	assert.Equal(t, 0, fake.Calls())
	assert.Len(t, projects.saved, 2)
}

func TestActDevelopmentTakesFreeText(t *testing.T) {
	r, _ := newRouter(t, "Love it.")
	s := coffee()
	story := s.Ensure(script.KindStory)
	story.Content = storyStructure
	story.Workflow.Mode = script.WorkflowActDevelopment
	story.Workflow.CurrentAct = 1
	story.Workflow.VideoDuration = "45 seconds"

	resp, next := say(t, r, s, "story")
	assert.Equal(t, "act_development", resp.Metadata["rule"])
	assert.Equal(t, "story", next.Story.Workflow.Act(1))
}

func TestActDevelopmentShowScriptTwice(t *testing.T) {
	r, fake := newRouter(t)
	s := coffee()
	story := s.Ensure(script.KindStory)
	story.Workflow.Mode = script.WorkflowActDevelopment
	story.Workflow.CurrentAct = 2
	story.Workflow.VideoDuration = "45 seconds"
	story.Workflow.SetAct(1, "Hook them.")

	first, s1 := say(t, r, s, "show script")
	second, s2 := say(t, r, s1, "show script")

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, s.Story.Workflow.Acts, s2.Story.Workflow.Acts)
	assert.Equal(t, 2, s2.Story.Workflow.CurrentAct)
	assert.Equal(t, 0, fake.Calls())
}

func TestMoodQuestionAfterHookSelection(t *testing.T) {
	r, _ := newRouter(t, threeHooks, storyStructure)
	s := coffee()
	s.VideoDuration = "60 seconds"

	_, s = say(t, r, s, "hook")
	_, s = say(t, r, s, "1")
	resp, s := say(t, r, s, "story")
	assert.Equal(t, "mood", resp.Metadata["awaiting"])
	assert.Equal(t, script.EventAwaitingMoodResponse, s.LastEvent().Type)

	resp, s = say(t, r, s, "Curious → Enlightened")
	assert.Equal(t, "mood", resp.Metadata["rule"])
	assert.Contains(t, s.ContextDocuments, "User's preferred emotional journey: Curious → Enlightened")
	assert.True(t, s.InActDevelopment())
	assert.Contains(t, resp.Content, "12 seconds")
}

func TestHookEnhancementFlow(t *testing.T) {
	enhanced := `Version 1 (Refined):
Script: "Your beans deserve better than boiling water."

Version 2 (Bold):
Script: "Boiling water is murdering your coffee."`
	r, _ := newRouter(t, threeHooks, enhanced)
	s := coffee()

	_, s = say(t, r, s, "hook")
	resp, s := say(t, r, s, "enhance option 2")
	assert.Equal(t, "hook_enhance", resp.Metadata["rule"])
	require.NotNil(t, s.Hook.Pending)

	resp, s = say(t, r, s, "use bold")
	assert.Equal(t, "hook_pending", resp.Metadata["rule"])
	assert.Equal(t, "Boiling water is murdering your coffee.", s.Hook.Content)
	assert.Nil(t, s.Hook.Pending)
}
