// Package agent holds the specialist agents. Each builds a prompt from
// project state, asks the text completion provider and turns the reply
// into structured results.
//
// Generators mutate the state they are given only after the completion
// has succeeded and parsed, so a failed call leaves state untouched.
package agent

import (
	"context"
	"fmt"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/prompts"
	"github.com/sant0-9/hookline/internal/script"
)

// Result is what a generator hands back to the router.
type Result struct {
	Kind    script.ComponentKind
	Message string
	// Options offered for selection, numbered from 1.
	Options []script.Option
	// Strategy names the parser strategy that produced Options.
	Strategy string
}

// base carries what every agent needs to call the model.
type base struct {
	role     string
	llm      llm.TextCompleter
	params   llm.Params
	system   string
	jsonMode bool
}

func newBase(role string, c llm.TextCompleter, cfg *config.Config) base {
	p := cfg.Params(role)
	return base{
		role: role,
		llm:  c,
		params: llm.Params{
			Role:        role,
			Temperature: p.Temperature,
			MaxTokens:   p.MaxTokens,
		},
		system:   prompts.System(role),
		jsonMode: cfg.JSONMode,
	}
}

func (b *base) ask(ctx context.Context, prompt string) (string, error) {
	out, err := b.llm.Complete(ctx, b.system, prompt, b.params)
	if err != nil {
		return "", fmt.Errorf("%s agent: %w", b.role, err)
	}
	return out, nil
}

func (b *base) askJSON(ctx context.Context, prompt string) (string, error) {
	p := b.params
	p.JSON = true
	out, err := b.llm.Complete(ctx, b.system, prompt, p)
	if err != nil {
		return "", fmt.Errorf("%s agent: %w", b.role, err)
	}
	return out, nil
}

// Team is the full set of agents wired to one completer.
type Team struct {
	Hook       *HookGenerator
	Story      *StoryGenerator
	CTA        *CTAGenerator
	Research   *ResearchAnalyst
	Stylist    *Stylist
	Challenger *Challenger
}

// NewTeam creates every agent from cfg.
func NewTeam(c llm.TextCompleter, cfg *config.Config) *Team {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Team{
		Hook:       NewHookGenerator(c, cfg),
		Story:      NewStoryGenerator(c, cfg),
		CTA:        NewCTAGenerator(c, cfg),
		Research:   NewResearchAnalyst(c, cfg),
		Stylist:    NewStylist(c, cfg),
		Challenger: NewChallenger(c, cfg),
	}
}
