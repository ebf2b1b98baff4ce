package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/script"
)

var probingQuestions = map[string][]string{
	"hook": {
		"What makes this hook different from hundreds of similar videos?",
		"Would this stop someone mid-scroll? Why or why not?",
		"Is the promise clear within the first 3 seconds?",
	},
	"story": {
		"Is the narrative arc compelling enough to maintain attention?",
		"Are there any logical gaps in your argument?",
		"Have you considered counterarguments?",
	},
	"cta": {
		"Is the ask proportional to the value provided?",
		"What specific action do you want viewers to take?",
		"Does the CTA flow naturally from your content?",
	},
	"overall": {
		"Who specifically is your ideal viewer?",
		"What transformation are you promising?",
		"How will viewers feel after watching?",
	},
}

const challengerReady = `## 🎬 Challenger Ready

I'm here to make your content stronger through constructive criticism!

**Available Services:**
• ` + "`critique`" + ` - Constructive review
• ` + "`alternatives`" + ` - Different approaches
• ` + "`devil's advocate`" + ` - Challenge assumptions
• ` + "`improve: [area]`" + ` - Specific improvements

What would you like me to review or challenge?`

const noChallengeContent = `## 🎬 Nothing to Review Yet

Create some content first:
• Type ` + "`hook`" + ` to create an opening
• Type ` + "`story`" + ` to develop narrative
• Type ` + "`cta`" + ` to create call-to-action`

const critiquePrompt = `As a constructive critic, review this video script content:

%s

Topic: %s
Platform: %s
Audience: %s

Provide critique following the 5:1 rule (5 positives for every 1 constructive criticism):
1. Five Strengths (be specific and genuine)
2. One Key Area for Improvement (be constructive and specific)
3. Actionable Suggestion for Improvement
4. Overall Assessment

Be honest but encouraging. Focus on helping, not just criticizing.`

const alternativesPrompt = `Suggest 3 completely different approaches for this content:

Current Approach: %s...

Topic: %s
Platform: %s
Audience: %s

For each alternative:
1. Different angle/perspective
2. Why it might work better
3. Potential risks
4. Quick example

Be creative but practical.`

const devilsAdvocatePrompt = `Play devil's advocate for this video script:

%s

Challenge:
1. Core assumptions
2. Logic and arguments
3. Evidence and claims
4. Audience assumptions
5. Effectiveness claims

Be rigorous but fair. Point out weak arguments, unsupported claims, logical fallacies, missing perspectives and potential objections.
Also suggest how to address each challenge.`

const improvementsPrompt = `Suggest specific improvements for this content:

%s

Focus Area: %s
Platform: %s
Audience: %s

Provide:
1. Current State Analysis
2. Specific Improvements (with examples)
3. Implementation Steps
4. Expected Impact
5. Before/After Comparison

Be detailed and actionable.`

const reviewPrompt = `Provide a comprehensive review of this video script:

%s

Topic: %s
Platform: %s
Audience: %s

Review Structure:
1. Overall Effectiveness (1-10 score)
2. Five Strengths (specific examples)
3. One Critical Improvement Area
4. Platform Optimization Assessment
5. Audience Resonance Prediction
6. Competitive Differentiation
7. Specific Next Steps

Be thorough, honest, and constructive.`

const reviewNextSteps = `## 📝 What would you like to do next?

• Type **humanize** - Make the script sound more natural and conversational
• Type **edit hook**, **edit story** or **edit cta** - Revise a component
• Type **research** - Add data and facts
• Type **export** - Save your final script`

// Challenger critiques the script.
type Challenger struct {
	base
}

// NewChallenger creates a new Challenger
func NewChallenger(c llm.TextCompleter, cfg *config.Config) *Challenger {
	return &Challenger{base: newBase(config.RoleChallenger, c, cfg)}
}

// Process dispatches on input: critique, alternatives, devil's advocate,
// improve, otherwise a comprehensive review.
func (ch *Challenger) Process(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "critique"), strings.Contains(lower, "review"):
		return ch.critique(ctx, s, input)
	case strings.Contains(lower, "alternative"):
		return ch.alternatives(ctx, s, input)
	case strings.Contains(lower, "devil"), strings.Contains(lower, "advocate"):
		return ch.devilsAdvocate(ctx, s, input)
	case strings.Contains(lower, "improve"):
		return ch.improvements(ctx, s, input)
	}
	return ch.review(ctx, s)
}

// critiqueTarget picks the component named in input, else the whole
// labelled script.
func critiqueTarget(s *script.ProjectState, input string) string {
	lower := strings.ToLower(input)
	for _, k := range script.Kinds {
		if strings.Contains(lower, string(k)) {
			if c := s.Component(k); c != nil {
				return c.Content
			}
		}
	}
	return labelledScript(s, "%s: %s", "\n\n")
}

func (ch *Challenger) critique(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	content := critiqueTarget(s, input)
	if content == "" {
		return &Result{Message: noChallengeContent}, nil
	}
	out, err := ch.ask(ctx, fmt.Sprintf(critiquePrompt, content, s.Topic, s.Platform, audience(s)))
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("## 🎯 Constructive Critique\n\n")
	b.WriteString(out)
	b.WriteString("\n\n### 🤔 Questions to Consider:\n")
	for _, q := range ProbingQuestions(content) {
		fmt.Fprintf(&b, "• %s\n", q)
	}
	b.WriteString("\n**Next Actions:**\n• Type `alternatives` for different approaches\n• Type `improve: [specific area]` for targeted help\n• Type `devil's advocate` for challenging perspectives")
	return &Result{Message: b.String()}, nil
}

func (ch *Challenger) alternatives(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	content := critiqueTarget(s, input)
	out, err := ch.ask(ctx, fmt.Sprintf(alternativesPrompt, clip(content, 500), s.Topic, s.Platform, audience(s)))
	if err != nil {
		return nil, err
	}
	return &Result{Message: "## 🔄 Alternative Approaches\n\n" + out}, nil
}

func (ch *Challenger) devilsAdvocate(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	content := critiqueTarget(s, input)
	if content == "" {
		return &Result{Message: noChallengeContent}, nil
	}
	out, err := ch.ask(ctx, fmt.Sprintf(devilsAdvocatePrompt, content))
	if err != nil {
		return nil, err
	}
	return &Result{Message: "## 😈 Devil's Advocate Challenge\n\n" + out}, nil
}

func (ch *Challenger) improvements(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	area := strings.TrimSpace(strings.ReplaceAll(stripCommand(input, "improve"), ":", ""))
	content := critiqueTarget(s, input)
	if content == "" {
		return &Result{Message: noChallengeContent}, nil
	}
	out, err := ch.ask(ctx, fmt.Sprintf(improvementsPrompt, content, orDefault(area, "Overall enhancement"), s.Platform, audience(s)))
	if err != nil {
		return nil, err
	}
	return &Result{Message: "## 📈 Improvement Roadmap\n\n" + out}, nil
}

func (ch *Challenger) review(ctx context.Context, s *script.ProjectState) (*Result, error) {
	full := labelledScript(s, "%s:\n%s", "\n\n")
	if full == "" {
		return &Result{Message: challengerReady}, nil
	}
	out, err := ch.ask(ctx, fmt.Sprintf(reviewPrompt, full, s.Topic, s.Platform, audience(s)))
	if err != nil {
		return nil, err
	}

	mark := func(k script.ComponentKind, name string) string {
		if c := s.Component(k); c != nil && c.Content != "" {
			return "✅ " + name
		}
		return "❌ " + name
	}
	msg := fmt.Sprintf("## 📊 Comprehensive Script Review\n\n**Completion:** %d%%\n**Components:** %s | %s | %s\n\n%s\n\n%s",
		Completion(s), mark(script.KindHook, "Hook"), mark(script.KindStory, "Story"), mark(script.KindCTA, "CTA"), out, reviewNextSteps)
	return &Result{Message: msg}, nil
}

// Completion weights finalized components 33/34/33.
func Completion(s *script.ProjectState) int {
	total := 0
	weights := map[script.ComponentKind]int{script.KindHook: 33, script.KindStory: 34, script.KindCTA: 33}
	for k, w := range weights {
		if c := s.Component(k); c != nil && c.Finalized {
			total += w
		}
	}
	return total
}

// ProbingQuestions picks questions for the component content starts
// with.
func ProbingQuestions(content string) []string {
	head := strings.ToLower(clip(content, 50))
	for _, k := range []string{"hook", "story", "cta"} {
		if strings.Contains(head, k) {
			return probingQuestions[k]
		}
	}
	return probingQuestions["overall"]
}
