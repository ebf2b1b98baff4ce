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

const generateCTAPrompt = `Based on the video details:
Topic: %s
Target audience: %s
Platform: %s
Hook: %s
Story Summary: %s
Context: %s

Create exactly 3 simple, clear CTA options:

**Option 1** - Gentle (build relationship)
**Option 2** - Direct (take action now)
**Option 3** - Value (offer something free)

For EACH option, provide ONLY:
Type: [One word: Subscribe/Download/Learn/Join/Visit]
Primary Text: "Short, clear CTA - max 10 words"
Supporting Text: One sentence explaining the benefit

Keep it simple and actionable. No complex descriptions.`

const ctasJSONSuffix = `

Respond with JSON only, in the form:
{"options": [{"type": "...", "primary_text": "...", "supporting_text": "..."}]}`

const multiCTAStrategyPrompt = `Video details:
Topic: %s
Platform: %s
Duration: %d seconds

Design a multi-CTA strategy with:
1. Soft CTA (early/middle): Build trust, low commitment
2. Primary CTA (end): Main conversion goal
3. Alternative CTA: For those not ready for primary
4. Passive CTA: Visual/description elements

Include timing and placement for each.`

const platformOptimizePrompt = `Current CTA: %s
Platform: %s

Optimize this CTA for %s following these guidelines:

YouTube:
- Subscribe + notification bell
- End screen elements
- Description links
- Community tab engagement

TikTok:
- Profile link emphasis
- Follow + notifications
- Comment engagement
- Trending hashtags

Instagram:
- Link in bio strategy
- Story swipe-ups (if applicable)
- Save/share prompts
- DM for more info

Provide optimized version with platform-specific elements.`

const urgencyPrompt = `Current CTA: %s
Enhancement Type: %s

Add urgency using one of these techniques:
- Scarcity: Limited availability/spots
- Time-sensitive: Deadline or expiration
- Social Proof: Others are taking action
- FOMO: Missing out on benefits
- Exclusive Access: Special offer for viewers
- Bonus Incentive: Extra value for acting now

Create 2 versions:
1. Subtle urgency (professional tone)
2. Strong urgency (direct approach)`

const abVariantsPrompt = `Original CTA: %s
Goal: %s

Create 3 A/B test variants focusing on:
1. Different emotional triggers
2. Varying urgency levels
3. Alternative value propositions
4. Different action verbs
5. Format variations (question vs. statement)

For each variant, explain the psychological principle being tested.`

const analyzeCTAPrompt = `Analyze this CTA for effectiveness:
%q

Rate on:
1. Clarity (0-10)
2. Urgency (0-10)
3. Value Proposition (0-10)
4. Action Verb Strength (0-10)
5. Emotional Appeal (0-10)

Provide brief explanation for each rating.`

const improveCTAPrompt = `Improve this CTA:
Current: %q
Feedback: %s
Analysis: %s

Create an improved version that addresses the feedback and weaknesses identified.`

const softerFeedback = "make it softer, warmer and less pushy"

var urgencyTypes = []struct{ key, value string }{
	{"scarc", "Scarcity"},
	{"time", "Time-sensitive"},
	{"social", "Social Proof"},
	{"fomo", "FOMO"},
	{"exclusive", "Exclusive Access"},
	{"bonus", "Bonus Incentive"},
}

// CTAGenerator writes calls to action and the placement strategy around
// them.
type CTAGenerator struct {
	base
}

// NewCTAGenerator creates a new CTAGenerator
func NewCTAGenerator(c llm.TextCompleter, cfg *config.Config) *CTAGenerator {
	return &CTAGenerator{base: newBase(config.RoleCTA, c, cfg)}
}

func (g *CTAGenerator) batch(ctx context.Context, s *script.ProjectState) ([]script.Option, string, error) {
	prompt := fmt.Sprintf(generateCTAPrompt,
		s.Topic, audience(s), s.Platform, hookText(s), storySummary(s), promptContext(s, script.KindCTA))

	if g.jsonMode {
		out, err := g.askJSON(ctx, prompt+ctasJSONSuffix)
		if err != nil {
			return nil, "", err
		}
		if opts := parser.DecodeJSON(out, parser.CTAFormat); len(opts) > 0 {
			return opts, "json", nil
		}
		res := parser.Parse(out, parser.CTAFormat)
		return res.Options, res.Strategy, nil
	}

	out, err := g.ask(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	res := parser.Parse(out, parser.CTAFormat)
	return res.Options, res.Strategy, nil
}

// Generate writes a fresh set of CTA options followed by a multi-placement
// strategy. Both calls must succeed before state changes.
func (g *CTAGenerator) Generate(ctx context.Context, s *script.ProjectState) (*Result, error) {
	opts, strategy, err := g.batch(ctx, s)
	if err != nil {
		return nil, err
	}
	plan, err := g.ask(ctx, fmt.Sprintf(multiCTAStrategyPrompt, s.Topic, s.Platform, script.TargetSeconds(s.Duration())))
	if err != nil {
		return nil, err
	}

	cta := s.Ensure(script.KindCTA)
	cta.AllOptions = append([]script.Option(nil), opts...)
	cta.Variants = append([]script.Option(nil), opts...)
	if len(opts) > 0 {
		cta.Content = opts[0].Text
		cta.Finalized = false
	}
	cta.Strategy = plan
	cta.Iterations++
	s.ActiveModule = script.ModuleCTA
	s.RecordGenerated(script.KindCTA, cta.AllOptions)

	return &Result{
		Kind:     script.KindCTA,
		Message:  g.renderGenerated(s, opts, plan),
		Options:  cta.AllOptions,
		Strategy: strategy,
	}, nil
}

// GenerateMore appends another batch of CTA options.
func (g *CTAGenerator) GenerateMore(ctx context.Context, s *script.ProjectState) (*Result, error) {
	opts, strategy, err := g.batch(ctx, s)
	if err != nil {
		return nil, err
	}
	cta := s.Ensure(script.KindCTA)
	cta.AllOptions = append(cta.AllOptions, opts...)
	cta.Iterations++
	s.ActiveModule = script.ModuleCTA
	s.RecordGenerated(script.KindCTA, cta.AllOptions)

	return &Result{
		Kind:     script.KindCTA,
		Message:  renderCTAs(cta.AllOptions) + "Type a number to select, or `custom: [your text]` to write your own.",
		Options:  cta.AllOptions,
		Strategy: strategy,
	}, nil
}

func (g *CTAGenerator) renderGenerated(s *script.ProjectState, opts []script.Option, plan string) string {
	duration := orDefault(s.Duration(), "60 seconds")

	var b strings.Builder
	b.WriteString("## 🎯 Your CTA Options\n\n")
	fmt.Fprintf(&b, "I've created %d different call-to-action approaches for your %s %s video:\n\n", len(opts), duration, s.Platform)
	for i, o := range opts {
		fmt.Fprintf(&b, "---\n\n### 🔵 Option %d: %s\n\n", i+1, o.Type)
		fmt.Fprintf(&b, "**Say this:** %q\n\n", o.Text)
		fmt.Fprintf(&b, "**Why it works:** %s\n\n", orDefault(o.SupportingText, "Encourages viewer action"))
	}
	b.WriteString("---\n\n## ✅ SELECT YOUR CTA:\n\n**Just type the number:**\n")
	for i, o := range opts {
		fmt.Fprintf(&b, "🔵 **%d** = Option %d (%s)\n", i+1, i+1, o.Type)
	}
	b.WriteString("\n**Or customize:**\n")
	b.WriteString("• **more** = See different options\n")
	fmt.Fprintf(&b, "• **optimize** = Improve for %s\n", s.Platform)
	b.WriteString("• **custom: [your text]** = Use your own CTA\n")
	fmt.Fprintf(&b, "\n---\n\n## 💡 Where to Place Your CTAs:\n\n%s\n", plan)
	return b.String()
}

// FollowUp reworks the current CTA according to input: platform
// optimization, urgency, A/B variants, softer wording, or a general
// improvement. Without a CTA, or when input asks for "new", it
// generates fresh options.
func (g *CTAGenerator) FollowUp(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	lower := strings.ToLower(input)
	if s.CTA == nil || s.CTA.Content == "" || strings.Contains(lower, "new") {
		return g.Generate(ctx, s)
	}

	switch {
	case containsWord(lower, "platform", "optimize", "youtube", "tiktok", "instagram"):
		return g.optimize(ctx, s)
	case containsWord(lower, "urgency", "urgent", "now"):
		return g.urgency(ctx, s, lower)
	case containsWord(lower, "test", "variant", "variants", "ab"):
		return g.variants(ctx, s, input)
	case strings.Contains(lower, "softer"):
		return g.improve(ctx, s, softerFeedback)
	}
	return g.improve(ctx, s, input)
}

func (g *CTAGenerator) optimize(ctx context.Context, s *script.ProjectState) (*Result, error) {
	title := s.Platform.Title()
	out, err := g.ask(ctx, fmt.Sprintf(platformOptimizePrompt, s.CTA.Content, title, title))
	if err != nil {
		return nil, err
	}
	old := s.CTA.Content
	s.CTA.Content = out
	s.CTA.Finalized = false
	s.CTA.Iterations++
	s.CTA.FeedbackHistory = append(s.CTA.FeedbackHistory, "optimized for "+string(s.Platform))

	msg := fmt.Sprintf("## Platform-Optimized CTA for %s\n\n**Original CTA:**\n%q\n\n**Optimized for %s:**\n%s\n\nReady to use or need adjustments?", title, old, title, out)
	return &Result{Kind: script.KindCTA, Message: msg}, nil
}

func (g *CTAGenerator) urgency(ctx context.Context, s *script.ProjectState, lower string) (*Result, error) {
	kind := UrgencyType(lower)
	out, err := g.ask(ctx, fmt.Sprintf(urgencyPrompt, s.CTA.Content, kind))
	if err != nil {
		return nil, err
	}
	s.CTA.Iterations++
	s.CTA.FeedbackHistory = append(s.CTA.FeedbackHistory, fmt.Sprintf("Enhanced with %s urgency", kind))

	msg := fmt.Sprintf("## Urgency-Enhanced CTA Versions\n\n**Current CTA:**\n%q\n\n**Enhanced with %s:**\n%s\n\n⚠️ Keep urgency authentic and deliver on what you promise.\n\nWhich version feels right for your brand?", s.CTA.Content, kind, out)
	return &Result{Kind: script.KindCTA, Message: msg}, nil
}

func (g *CTAGenerator) variants(ctx context.Context, s *script.ProjectState, goal string) (*Result, error) {
	if strings.TrimSpace(goal) == "" {
		goal = "maximize conversions"
	}
	out, err := g.ask(ctx, fmt.Sprintf(abVariantsPrompt, s.CTA.Content, goal))
	if err != nil {
		return nil, err
	}
	s.CTA.Iterations++
	s.CTA.Strategy = strings.TrimSpace(s.CTA.Strategy + "\n\nA/B variants:\n" + out)

	msg := fmt.Sprintf("## A/B Test Variants\n\n**Control (Current):**\n%q\n\n**Test Variants:**\n%s\n\nRun each variant for equal time periods and compare click-through and retention at the CTA.", s.CTA.Content, out)
	return &Result{Kind: script.KindCTA, Message: msg}, nil
}

// improve analyses the CTA, then rewrites it against the feedback.
func (g *CTAGenerator) improve(ctx context.Context, s *script.ProjectState, feedback string) (*Result, error) {
	if strings.TrimSpace(feedback) == "" {
		feedback = "make it more compelling"
	}
	analysis, err := g.ask(ctx, fmt.Sprintf(analyzeCTAPrompt, s.CTA.Content))
	if err != nil {
		return nil, err
	}
	out, err := g.ask(ctx, fmt.Sprintf(improveCTAPrompt, s.CTA.Content, feedback, analysis))
	if err != nil {
		return nil, err
	}
	improved := firstContentLine(out)

	old := s.CTA.Content
	s.CTA.Content = improved
	s.CTA.Finalized = false
	s.CTA.Iterations++
	s.CTA.FeedbackHistory = append(s.CTA.FeedbackHistory, feedback)

	msg := fmt.Sprintf("## CTA Improvement Analysis\n\n**Original:**\n%q\n\n**Analysis:**\n%s\n\n**Improved Version:**\n%q\n\nSatisfied or need more refinement?", old, analysis, improved)
	return &Result{Kind: script.KindCTA, Message: msg}, nil
}

// UrgencyType maps input to an urgency technique, defaulting to
// Time-sensitive.
func UrgencyType(input string) string {
	lower := strings.ToLower(input)
	for _, u := range urgencyTypes {
		if strings.Contains(lower, u.key) {
			return u.value
		}
	}
	return "Time-sensitive"
}

func firstContentLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return strings.Trim(line, `"`)
		}
	}
	return strings.TrimSpace(s)
}

// containsWord reports whether any of words appears in s as a whole word.
func containsWord(s string, words ...string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}
