package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/parser"
	"github.com/sant0-9/hookline/internal/script"
)

const generateStoryPrompt = `Based on the video details:
Topic: %s
Target audience: %s
Platform: %s
Video length: %s
Hook: %s
Context: %s

Create a compelling story structure using the 3-Act Framework:

**Act 1: Setup (20%% of script)**
- Bridge from hook to main content
- Establish the problem/opportunity
- Set stakes and expectations

**Act 2: Development (60%% of script)**
- Present main points/solutions
- Build tension or intrigue
- Include examples, data, or demonstrations
- Create emotional connection

**Act 3: Resolution (20%% of script)**
- Climax or key revelation
- Clear takeaway or transformation
- Smooth transition to CTA

Provide:
1. Story arc outline with timing
2. Key narrative beats
3. Emotional journey map
4. Specific examples or case studies to include
5. Transition phrases between sections`

const moodQuestion = `Great hook choice! Now that you've selected your opening, let me ask you a quick question to shape your story:

**What mood or emotional journey do you want your viewers to experience?**

For example:
• **Curious → Enlightened** (educational content)
• **Frustrated → Empowered** (problem-solving)
• **Skeptical → Convinced** (persuasive content)
• **Entertained → Inspired** (motivational)

Type your answer, or send an empty message to skip.`

const timingQuestion = `**Before we structure your story, let's set the timing:**

How long will your video be? This helps me pace the narrative perfectly.

📱 Recommended for %s: **%s**

Common durations:
• **Short-form** (30-60 seconds): TikTok, Reels - Quick, punchy, single message
• **Medium** (1-3 minutes): Instagram, LinkedIn - Clear problem-solution
• **Long-form** (5-10 minutes): YouTube - Detailed explanations
• **Extended** (10+ minutes): Tutorials, deep dives

Type your preference (e.g., "2 minutes", "60 seconds", "5-7 minutes")
Or send an empty message to use %s`

// StructureType labels the single option a story generation offers.
const StructureType = "3-Act Structure"

var videoTypes = []struct{ key, value string }{
	{"how", "how-to"},
	{"explain", "explainer"},
	{"tutorial", "how-to"},
	{"story", "brand story"},
	{"case", "case study"},
	{"review", "review"},
	{"teach", "educational"},
	{"entertain", "entertainment"},
}

var platformVideoTypes = map[script.Platform]string{
	script.PlatformYouTube:   "explainer",
	script.PlatformTikTok:    "entertainment",
	script.PlatformInstagram: "brand story",
}

// StoryGenerator builds the three-act story structure.
type StoryGenerator struct {
	base
}

// NewStoryGenerator creates a new StoryGenerator
func NewStoryGenerator(c llm.TextCompleter, cfg *config.Config) *StoryGenerator {
	return &StoryGenerator{base: newBase(config.RoleStory, c, cfg)}
}

// Prelude returns the question that must be answered before a story can
// be generated, or nil when generation can go ahead. A missing duration
// is asked about before mood.
func (g *StoryGenerator) Prelude(s *script.ProjectState) *Result {
	story := s.Ensure(script.KindStory)
	if s.Duration() == "" {
		story.Workflow.AwaitingTiming = true
		msg := fmt.Sprintf(timingQuestion, s.Platform, script.SuggestedDuration(s.Platform), script.DefaultDuration(s.Platform))
		return &Result{Kind: script.KindStory, Message: msg}
	}

	if !story.Workflow.MoodHandled && s.RecentHas(script.EventHookSelected, 2) && s.Hook != nil && s.Hook.Content != "" {
		s.Append(script.Event{Type: script.EventAwaitingMoodResponse, Component: script.KindStory})
		return &Result{Kind: script.KindStory, Message: moodQuestion}
	}
	return nil
}

// AnswerTiming stores the duration preference and generates the story.
// The mood question is skipped afterwards.
func (g *StoryGenerator) AnswerTiming(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	duration := script.NormalizeTiming(s.Platform, input)
	story := s.Ensure(script.KindStory)
	story.Workflow.AwaitingTiming = false
	story.Workflow.MoodHandled = true
	story.Workflow.VideoDuration = duration
	s.VideoDuration = duration

	res, err := g.Generate(ctx, s)
	if err != nil {
		return nil, err
	}
	res.Message = fmt.Sprintf("⏱️ Video length set to **%s**.\n\n%s", duration, res.Message)
	return res, nil
}

// AnswerMood records the emotional journey and generates the story. An
// empty answer skips the mood.
func (g *StoryGenerator) AnswerMood(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	mood := strings.TrimSpace(input)
	if mood != "" {
		s.ContextDocuments = append(s.ContextDocuments, "User's preferred emotional journey: "+mood)
	}
	s.Ensure(script.KindStory).Workflow.MoodHandled = true
	s.Append(script.Event{Type: script.EventMoodReceived, Component: script.KindStory, Text: mood})

	res, err := g.Generate(ctx, s)
	if err != nil {
		return nil, err
	}
	if mood != "" {
		res.Message = fmt.Sprintf("✓ Got it! Creating a story with a %s emotional journey.\n\n%s", mood, res.Message)
	}
	return res, nil
}

// Generate writes the story structure. When a duration is known the
// story moves into act-by-act development at act 1.
func (g *StoryGenerator) Generate(ctx context.Context, s *script.ProjectState) (*Result, error) {
	duration := s.Duration()
	prompt := fmt.Sprintf(generateStoryPrompt,
		s.Topic, audience(s), s.Platform, orDefault(duration, "not set"), hookText(s), promptContext(s, script.KindStory))

	out, err := g.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	structure := parser.ParseStory(out)

	story := s.Ensure(script.KindStory)
	story.Content = out
	story.Finalized = false
	story.Iterations++
	story.Workflow.Beats = map[string]string{}
	for i, act := range structure.Acts {
		story.Workflow.Beats[fmt.Sprintf("act_%d", i+1)] = strings.Join(act.Beats, "\n")
	}
	if duration != "" {
		story.Workflow.Mode = script.WorkflowActDevelopment
		story.Workflow.CurrentAct = 1
		story.Workflow.Acts = [script.ActCount]string{}
		story.Workflow.EnhancedDraft = ""
		story.Workflow.VideoDuration = duration
	}

	opts := []script.Option{{Type: StructureType, Text: out, Duration: duration}}
	story.AllOptions = opts
	s.ActiveModule = script.ModuleStory
	s.RecordGenerated(script.KindStory, opts)

	videoType := VideoType(s, "")
	var b strings.Builder
	fmt.Fprintf(&b, "## Story Architecture for Your %s Video\n\n", titleWords(videoType))
	fmt.Fprintf(&b, "I've crafted a narrative structure for %q that will keep your %s engaged from start to finish.\n\n", s.Topic, audience(s))
	b.WriteString(out)
	if len(structure.Beats) > 0 {
		b.WriteString("\n\n**Narrative Flow:**\n")
		for i, beat := range structure.Beats {
			fmt.Fprintf(&b, "%d. %s\n", i+1, beat)
		}
	}

	return &Result{Kind: script.KindStory, Message: b.String(), Options: opts}, nil
}

// VideoType guesses the kind of video from the input, then the topic,
// then the platform.
func VideoType(s *script.ProjectState, input string) string {
	for _, text := range []string{strings.ToLower(input), strings.ToLower(s.Topic)} {
		if text == "" {
			continue
		}
		for _, vt := range videoTypes {
			if strings.Contains(text, vt.key) {
				return vt.value
			}
		}
	}
	if t, ok := platformVideoTypes[s.Platform]; ok {
		return t
	}
	return "general"
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
