package agent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/parser"
	"github.com/sant0-9/hookline/internal/script"
)

const generateHooksPrompt = `Based on the video topic: %s
Target audience: %s
Platform: %s
Context: %s

Generate EXACTLY 3 distinct, compelling hooks for the video. Each hook should capture attention in 3-8 seconds.

USE THIS EXACT FORMAT FOR EACH HOOK:

HOOK 1:
Type: [Choose: Visual/Familiar, Problem/Agitation, Curiosity Gap, Statistical Shock, or Personal Story]
Text: [Write the exact words the presenter should say - make it compelling and specific]
Visual Note: [Describe what appears on screen]
Duration: [X seconds]

HOOK 2:
Type: [Different framework from Hook 1]
Text: [Different approach - exact words to say]
Visual Note: [Visual elements for this hook]
Duration: [X seconds]

HOOK 3:
Type: [Different framework from Hooks 1 and 2]
Text: [Another unique approach - exact script]
Visual Note: [Visual suggestions]
Duration: [X seconds]

Make each hook specific to the topic, not generic. Write actual scripts, not descriptions.`

const hooksJSONSuffix = `

Respond with JSON only, in the form:
{"options": [{"type": "...", "text": "...", "visual": "...", "duration": "..."}]}`

const avoidTypesSuffix = `

Avoid repeating these hook styles already offered: %s.`

const enhanceHookPrompt = `Enhance this hook for a video about %s:

Original Hook:
Type: %s
Script: %q
Visual: %s

Provide 2 enhanced versions:
1. A refined version (keeping the core concept but improving delivery)
2. A bold reimagining (taking the concept to the next level)

Format each as:
Version X:
Script: "[enhanced script]"
Visual: [enhanced visual suggestion]
Why it's better: [brief explanation]`

const analyzeCustomHookPrompt = `Analyze this custom hook for a %s video about %s:
Hook: %q

Give a quick verdict on how well it stops the scroll, how clear the promise is and one concrete tweak that would make it stronger. Keep it under 100 words.`

var enhanceOptionPattern = regexp.MustCompile(`(enhance|improve)\s*(option)?\s*(\d+)`)

// HookGenerator writes opening hooks.
type HookGenerator struct {
	base
}

// NewHookGenerator creates a new HookGenerator
func NewHookGenerator(c llm.TextCompleter, cfg *config.Config) *HookGenerator {
	return &HookGenerator{base: newBase(config.RoleHook, c, cfg)}
}

func (g *HookGenerator) batch(ctx context.Context, s *script.ProjectState, avoid []script.Option) ([]script.Option, string, error) {
	prompt := fmt.Sprintf(generateHooksPrompt, s.Topic, audience(s), s.Platform, promptContext(s, script.KindHook))
	if len(avoid) > 0 {
		var types []string
		for _, o := range avoid {
			types = append(types, o.Type)
		}
		prompt += fmt.Sprintf(avoidTypesSuffix, strings.Join(types, ", "))
	}

	if g.jsonMode {
		out, err := g.askJSON(ctx, prompt+hooksJSONSuffix)
		if err != nil {
			return nil, "", err
		}
		if opts := parser.DecodeJSON(out, parser.HookFormat); len(opts) > 0 {
			return opts, "json", nil
		}
		res := parser.Parse(out, parser.HookFormat)
		return res.Options, res.Strategy, nil
	}

	out, err := g.ask(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	res := parser.Parse(out, parser.HookFormat)
	return res.Options, res.Strategy, nil
}

// Generate replaces the hook options with a fresh batch.
func (g *HookGenerator) Generate(ctx context.Context, s *script.ProjectState) (*Result, error) {
	opts, strategy, err := g.batch(ctx, s, nil)
	if err != nil {
		return nil, err
	}

	hook := s.Ensure(script.KindHook)
	hook.AllOptions = append([]script.Option(nil), opts...)
	hook.Pending = nil
	hook.Iterations++
	s.ActiveModule = script.ModuleHook
	s.RecordGenerated(script.KindHook, hook.AllOptions)

	return &Result{
		Kind:     script.KindHook,
		Message:  renderHooks(s.Topic, hook.AllOptions),
		Options:  hook.AllOptions,
		Strategy: strategy,
	}, nil
}

// GenerateMore appends a new batch to the accumulated hook options.
// Existing options keep their positions.
func (g *HookGenerator) GenerateMore(ctx context.Context, s *script.ProjectState) (*Result, error) {
	var prior []script.Option
	if s.Hook != nil {
		prior = s.Hook.AllOptions
	}
	opts, strategy, err := g.batch(ctx, s, prior)
	if err != nil {
		return nil, err
	}

	hook := s.Ensure(script.KindHook)
	hook.AllOptions = append(hook.AllOptions, opts...)
	hook.Iterations++
	s.ActiveModule = script.ModuleHook
	s.RecordGenerated(script.KindHook, hook.AllOptions)

	return &Result{
		Kind:     script.KindHook,
		Message:  renderHooks(s.Topic, hook.AllOptions),
		Options:  hook.AllOptions,
		Strategy: strategy,
	}, nil
}

// EnhanceTarget extracts the option number from "enhance 2" or
// "improve option 3".
func EnhanceTarget(input string) (int, bool) {
	m := enhanceOptionPattern.FindStringSubmatch(strings.ToLower(input))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Enhance asks for a refined and a bold rewrite of hook option n
// (1-based). The rewrites are staged on the hook until the user picks
// one with ApplyEnhancement.
func (g *HookGenerator) Enhance(ctx context.Context, s *script.ProjectState, n int) (*Result, error) {
	if s.Hook == nil || n < 1 || n > len(s.Hook.AllOptions) {
		return &Result{
			Kind:    script.KindHook,
			Message: fmt.Sprintf("Option %d doesn't exist. Please generate hooks first or choose a valid option.", n),
		}, nil
	}
	orig := s.Hook.AllOptions[n-1]

	prompt := fmt.Sprintf(enhanceHookPrompt, s.Topic, orDefault(orig.Type, "Hook"), orig.Text, orig.Visual)
	out, err := g.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}

	refined, bold := parseVersions(out)
	if refined == "" {
		refined = orig.Text
	}
	if bold == "" {
		bold = refined
	}
	s.Hook.Pending = &script.PendingEnhancement{
		Index:    n,
		Original: orig,
		Refined:  refined,
		Bold:     bold,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Enhancing Option %d: %s\n\n", n, orDefault(orig.Type, "Hook"))
	fmt.Fprintf(&b, "**Original:**\n📝 %q\n\n", orig.Text)
	fmt.Fprintf(&b, "**Enhanced Versions:**\n%s\n\n", out)
	b.WriteString("**Your Options:**\n")
	b.WriteString("• Type `use refined` to use the refined version\n")
	b.WriteString("• Type `use bold` to use the bold version\n")
	b.WriteString("• Type `keep original` to stick with the original\n")
	fmt.Fprintf(&b, "• Type a number (1-%d) to select a different option\n", len(s.Hook.AllOptions))
	b.WriteString("• Type `more` for additional options\n")

	return &Result{Kind: script.KindHook, Message: b.String()}, nil
}

// Enhancement choices.
const (
	ChoiceRefined  = "refined"
	ChoiceBold     = "bold"
	ChoiceOriginal = "original"
)

// ApplyEnhancement resolves a staged hook enhancement. It reports false
// when nothing is staged.
func ApplyEnhancement(s *script.ProjectState, choice string) (*Result, bool) {
	if s.Hook == nil || s.Hook.Pending == nil {
		return nil, false
	}
	p := s.Hook.Pending

	var text string
	switch choice {
	case ChoiceRefined:
		text = p.Refined
	case ChoiceBold:
		text = p.Bold
	default:
		choice = ChoiceOriginal
		text = p.Original.Text
	}

	s.Hook.Finalize(text)
	s.Hook.Iterations++
	s.Hook.Pending = nil
	s.Append(script.Event{Type: script.EventEnhancementApplied, Component: script.KindHook, Index: p.Index, Text: choice})
	s.Append(script.Event{Type: script.EventHookSelected, Component: script.KindHook, Index: p.Index})

	msg := fmt.Sprintf("✅ **Hook locked in (%s version):**\n\n%q\n\nType `story` to build the narrative next.", choice, text)
	return &Result{Kind: script.KindHook, Message: msg}, true
}

// Custom uses text as the hook and returns a short analysis of it.
func (g *HookGenerator) Custom(ctx context.Context, s *script.ProjectState, text string) (*Result, error) {
	analysis, err := g.ask(ctx, fmt.Sprintf(analyzeCustomHookPrompt, s.Platform, s.Topic, text))
	if err != nil {
		return nil, err
	}

	hook := s.Ensure(script.KindHook)
	hook.Finalize(text)
	hook.Iterations++
	hook.Pending = nil
	s.Append(script.Event{Type: script.EventCustomContent, Component: script.KindHook, Text: text})
	s.Append(script.Event{Type: script.EventHookSelected, Component: script.KindHook})

	msg := fmt.Sprintf("✅ **Custom hook saved:**\n\n%q\n\n**Quick analysis:**\n%s\n\nType `story` to build the narrative next.", text, analysis)
	return &Result{Kind: script.KindHook, Message: msg}, nil
}

var versionPattern = regexp.MustCompile(`(?i)^\W*version\s*(\d)`)

// parseVersions pulls the Script line of "Version 1" and "Version 2"
// out of an enhancement reply.
func parseVersions(text string) (refined, bold string) {
	var current int
	found := map[int]string{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.ReplaceAll(raw, "**", ""))
		if m := versionPattern.FindStringSubmatch(line); m != nil {
			current, _ = strconv.Atoi(m[1])
			if i := strings.Index(strings.ToLower(line), "script:"); i >= 0 && found[current] == "" {
				found[current] = cleanScript(line[i+len("script:"):])
			}
			continue
		}
		if current == 0 || found[current] != "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "script:") {
			found[current] = cleanScript(line[len("script:"):])
		}
	}
	return found[1], found[2]
}

func cleanScript(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"“”'`)
}
