// Package intent classifies free text that no router rule claimed and
// answers the orchestrator's own intents.
package intent

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

// keyword rules in priority order
var keywordRules = []struct {
	action Action
	words  []string
}{
	{ActionStartHook, []string{"hook", "opening", "start of video"}},
	{ActionStartStory, []string{"story", "narrative", "structure", "body"}},
	{ActionStartCTA, []string{"cta", "call to action", "ending"}},
	{ActionReviewScript, []string{"review", "check", "see script"}},
	{ActionFinalize, []string{"finalize", "lock", "confirm"}},
}

// Parser turns user instructions into an Intent
type Parser struct {
	llm    llm.TextCompleter
	params llm.Params
	system string
	logger *zap.Logger
}

// NewParser creates a new intent parser
func NewParser(c llm.TextCompleter, cfg *config.Config, logger *zap.Logger) *Parser {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := cfg.Params(config.RoleOrchestrator)
	return &Parser{
		llm: c,
		params: llm.Params{
			Role:        config.RoleOrchestrator,
			Temperature: p.Temperature,
			MaxTokens:   p.MaxTokens,
		},
		system: prompts.System(config.RoleOrchestrator),
		logger: logger,
	}
}

// Parse classifies instruction. Keywords are tried first; the model is
// only asked when none match.
func (p *Parser) Parse(ctx context.Context, s *script.ProjectState, instruction string) (*Intent, error) {
	if strings.TrimSpace(instruction) == "" {
		return New(ActionUnclear, instruction, SourceKeyword), nil
	}
	if in := p.quickParse(instruction); in != nil {
		return in, nil
	}

	resp, err := p.llm.Complete(ctx, p.system, buildClassifyPrompt(s, instruction), p.params)
	if err != nil {
		return nil, fmt.Errorf("classify intent: %w", err)
	}
	action := parseLabel(resp)
	p.logger.Debug("intent classified", zap.String("action", string(action)), zap.String("source", string(SourceLLM)))
	return New(action, instruction, SourceLLM), nil
}

// quickParse matches keywords. It returns nil when nothing matches.
func (p *Parser) quickParse(instruction string) *Intent {
	lower := strings.ToLower(instruction)
	for _, rule := range keywordRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return New(rule.action, instruction, SourceKeyword)
			}
		}
	}
	return nil
}

// Feedback asks the model for encouraging feedback on the active module.
func (p *Parser) Feedback(ctx context.Context, s *script.ProjectState, input string) (*Reply, error) {
	text := script.ExportText(s)
	if text == "" {
		text = "No content created yet."
	}
	out, err := p.llm.Complete(ctx, p.system, fmt.Sprintf(feedbackPrompt, input, s.ActiveModule, text), p.params)
	if err != nil {
		return nil, fmt.Errorf("feedback: %w", err)
	}
	return &Reply{
		Content:           out,
		RequiresUserInput: true,
		Metadata:          map[string]any{"intent": string(ActionFeedback), "next_agent": config.RoleChallenger},
	}, nil
}
