package acts

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
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		command  Command
		arg      string
		addition bool
	}{
		{"research: cold brew sales", CmdResearch, "cold brew sales", false},
		{"example: pour over ratios", CmdExamples, "pour over ratios", false},
		{"can you add examples here", CmdExamples, "relevant to Act 2 content", false},
		{"use enhanced", CmdUseEnhanced, "", false},
		{"Keep Original please", CmdKeepOriginal, "", false},
		{"draft: Start with the grinder.", CmdDraft, "Start with the grinder.", false},
		{"draft also show the scale", CmdDraft, "also show the scale", true},
		{"draft:", CmdDraft, "", false},
		{"enhance", CmdEnhance, "", false},
		{"please polish this", CmdEnhance, "", false},
		{"next act", CmdNextAct, "", false},
		{"show script", CmdShowScript, "", false},
		{"could you suggest a stronger opening line", CmdRequest, "could you suggest a stronger opening line", false},
		{"Also mention water temperature.", CmdContent, "Also mention water temperature.", true},
		{"Andrew the barista explains the bloom.", CmdContent, "Andrew the barista explains the bloom.", false},
		{"Coffee starts with fresh beans.", CmdContent, "Coffee starts with fresh beans.", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Classify(tt.input, 2)
			if got.Command != tt.command {
				t.Errorf("Command = %q, want %q", got.Command, tt.command)
			}
			if got.Arg != tt.arg {
				t.Errorf("Arg = %q, want %q", got.Arg, tt.arg)
			}
			if got.Addition != tt.addition {
				t.Errorf("Addition = %v, want %v", got.Addition, tt.addition)
			}
		})
	}
}

func TestClassifyLongDraftIsNotEnhance(t *testing.T) {
	long := "We improve the cup by weighing beans and water, then we wait thirty seconds for the bloom before the main pour."
	got := Classify(long, 1)
	if got.Command != CmdContent {
		t.Errorf("Command = %q, want %q", got.Command, CmdContent)
	}
}

func newWorkflow(t *testing.T, replies ...string) (*Workflow, *llmtest.Provider) {
	t.Helper()
	fake := llmtest.New(replies...)
	return New(fake.Completer(), config.DefaultConfig(), nil), fake
}

func developing(act int) *script.ProjectState {
	s := script.NewProject("coffee brewing", script.PlatformTikTok, "home baristas")
	story := s.Ensure(script.KindStory)
	story.Content = "Act 1: Setup\nAct 2: Method\nAct 3: Payoff"
	story.Workflow.Mode = script.WorkflowActDevelopment
	story.Workflow.CurrentAct = act
	story.Workflow.VideoDuration = "45 seconds"
	return s
}

func TestHandleDraftStoresAct(t *testing.T) {
	w, fake := newWorkflow(t, "Love the opening energy.")
	s := developing(1)

	reply, err := w.Handle(context.Background(), s, "draft: Bad coffee starts at the grinder.")
	require.NoError(t, err)

	assert.Equal(t, "Bad coffee starts at the grinder.", s.Story.Workflow.Act(1))
	assert.Contains(t, reply.Message, "**🌟 Feedback on Act 1**")
	assert.Contains(t, reply.Message, "Love the opening energy.")
	assert.Contains(t, reply.Message, "(9 seconds)")
	assert.Contains(t, fake.LastPrompt(), "Review this Act 1 draft for a video about coffee brewing")
}

func TestHandleAdditionAppends(t *testing.T) {
	w, fake := newWorkflow(t, "Nice.", "Great addition.")
	s := developing(2)
	ctx := context.Background()

	_, err := w.Handle(ctx, s, "Weigh 15 grams of beans.")
	require.NoError(t, err)
	_, err = w.Handle(ctx, s, "Also bloom for thirty seconds.")
	require.NoError(t, err)

	want := "Weigh 15 grams of beans.\n\nAlso bloom for thirty seconds."
	if got := s.Story.Workflow.Act(2); got != want {
		t.Errorf("Act(2) = %q, want %q", got, want)
	}
	// feedback covers the new text only
	if strings.Contains(fake.LastPrompt(), "Weigh 15 grams") {
		t.Errorf("review prompt included earlier text: %q", fake.LastPrompt())
	}
}

func TestHandleContentReplacesDraft(t *testing.T) {
	w, _ := newWorkflow(t, "Nice.", "Nice again.")
	s := developing(1)
	ctx := context.Background()

	_, err := w.Handle(ctx, s, "First version.")
	require.NoError(t, err)
	_, err = w.Handle(ctx, s, "Second version.")
	require.NoError(t, err)

	assert.Equal(t, "Second version.", s.Story.Workflow.Act(1))
}

func TestHandleEmptyDraft(t *testing.T) {
	w, fake := newWorkflow(t)
	s := developing(1)

	reply, err := w.Handle(context.Background(), s, "draft:")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "Please provide your draft content")
	assert.Equal(t, 0, fake.Calls())
}

func TestEnhanceThenUseEnhanced(t *testing.T) {
	w, _ := newWorkflow(t, "Sharper opening line.")
	s := developing(1)
	s.Story.Workflow.SetAct(1, "Opening line.")
	ctx := context.Background()

	reply, err := w.Handle(ctx, s, "enhance")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "**✨ Enhanced Version of Act 1**")
	assert.Equal(t, "Sharper opening line.", s.Story.Workflow.EnhancedDraft)
	assert.Equal(t, "Opening line.", s.Story.Workflow.Act(1))

	reply, err = w.Handle(ctx, s, "use enhanced")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "Enhanced version is now your Act 1 draft!")
	assert.Equal(t, "Sharper opening line.", s.Story.Workflow.Act(1))
	assert.Empty(t, s.Story.Workflow.EnhancedDraft)
}

func TestEnhanceThenKeepOriginal(t *testing.T) {
	w, _ := newWorkflow(t, "Sharper opening line.")
	s := developing(1)
	s.Story.Workflow.SetAct(1, "Opening line.")
	ctx := context.Background()

	_, err := w.Handle(ctx, s, "enhance")
	require.NoError(t, err)
	reply, err := w.Handle(ctx, s, "keep original")
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "Keeping your original draft for Act 1")
	assert.Equal(t, "Opening line.", s.Story.Workflow.Act(1))
	assert.Empty(t, s.Story.Workflow.EnhancedDraft)
}

func TestNothingStaged(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"use enhanced", "No enhanced version available"},
		{"keep original", "No enhanced version to discard"},
		{"enhance", "No draft to enhance yet!"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w, fake := newWorkflow(t)
			s := developing(1)
			reply, err := w.Handle(context.Background(), s, tt.input)
			require.NoError(t, err)
			assert.Contains(t, reply.Message, tt.want)
			assert.Equal(t, 0, fake.Calls())
			assert.Empty(t, s.Story.Workflow.Act(1))
		})
	}
}

func TestResearchLeavesDraft(t *testing.T) {
	w, fake := newWorkflow(t, "Specialty coffee grew 20% in 2023.")
	s := developing(2)
	s.Story.Workflow.SetAct(2, "Grind fresh.")

	reply, err := w.Handle(context.Background(), s, "research: specialty coffee growth")
	require.NoError(t, err)

	assert.Equal(t, "Grind fresh.", s.Story.Workflow.Act(2))
	assert.Contains(t, reply.Message, "**📊 Research Results for Act 2**")
	assert.Contains(t, reply.Message, "Grind fresh.")
	assert.Contains(t, fake.LastPrompt(), "Topic to research: specialty coffee growth")
}

func TestExamplesWithoutDraft(t *testing.T) {
	w, _ := newWorkflow(t, "A cafe in Oslo.")
	s := developing(3)

	reply, err := w.Handle(context.Background(), s, "example: weekend rituals")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "**💡 Example Ideas for Act 3**")
	assert.Contains(t, reply.Message, noDraftYet)
}

func TestLLMFailureLeavesState(t *testing.T) {
	fake := llmtest.New()
	fake.PushError(&llm.ProviderError{Kind: llm.KindAuth, Provider: "fake", Err: errors.New("bad key")})
	w := New(fake.Completer(), config.DefaultConfig(), nil)
	s := developing(1)

	_, err := w.Handle(context.Background(), s, "draft: Something new.")
	require.Error(t, err)
	assert.Empty(t, s.Story.Workflow.Act(1))
	assert.Empty(t, s.History)
}

func TestNextActAdvancesAndCompletes(t *testing.T) {
	s := developing(1)
	s.Story.Workflow.SetAct(1, "Hook them.")
	s.Story.Workflow.SetAct(2, "Teach the ratio.")
	s.Story.Workflow.SetAct(3, "Follow for more.")

	r := NextAct(s)
	assert.Equal(t, 2, s.Story.Workflow.CurrentAct)
	assert.Contains(t, r.Message, "**✅ Act 1 Complete!**")
	assert.Contains(t, r.Message, "27 seconds")
	assert.False(t, r.Complete)

	NextAct(s)
	assert.Equal(t, 3, s.Story.Workflow.CurrentAct)

	r = NextAct(s)
	require.True(t, r.Complete)
	assert.Contains(t, r.Message, "**🎉 Script Complete!**")
	assert.Equal(t, script.WorkflowComplete, s.Story.Workflow.Mode)
	assert.True(t, s.Story.Finalized)
	assert.Contains(t, s.Story.Content, "**Act 2 (27 seconds):**\nTeach the ratio.")
	assert.Equal(t, script.EventComponentFinalized, s.LastEvent().Type)
}

func TestCompleteWithNoActsKeepsStructure(t *testing.T) {
	s := developing(3)

	r := NextAct(s)
	require.True(t, r.Complete)
	assert.Equal(t, "Act 1: Setup\nAct 2: Method\nAct 3: Payoff", s.Story.Content)
	assert.Contains(t, r.Message, "No acts written yet.")
}

func TestShowScriptDoesNotMutate(t *testing.T) {
	s := developing(2)
	s.Story.Workflow.SetAct(1, "Hook them.")
	before := s.Clone()

	first := ShowScript(s)
	second := ShowScript(s)

	assert.Equal(t, first, second)
	assert.Equal(t, before.Story, s.Story)
	assert.Len(t, s.History, 0)
	assert.Contains(t, first, "**Act 1 (9 seconds):**\nHook them.")
	assert.Contains(t, first, "**Current Status:** Working on Act 2")
}

func TestStartPrompt(t *testing.T) {
	s := developing(1)
	got := StartPrompt(s, 1)
	assert.Contains(t, got, "**🎬 Now let's develop Act 1 together!**")
	assert.Contains(t, got, "**🔥 Act 1 Focus:** 9 seconds of content")
	assert.Contains(t, got, "`next act` - Move to Act 2 when ready")
}
