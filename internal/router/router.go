// Package router decides what one user message means for a project and
// dispatches it. Rules are tried in a fixed order and the first match
// handles the turn.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sant0-9/hookline/internal/acts"
	"github.com/sant0-9/hookline/internal/agent"
	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/intent"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

// Projects is the persistence the global save and list commands use.
type Projects interface {
	Save(ctx context.Context, s *script.ProjectState) error
	List(ctx context.Context, f store.Filter) ([]script.ProjectSummary, error)
}

// RuleObserver is told about every handled turn.
type RuleObserver interface {
	ObserveRule(rule string, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveRule(string, time.Duration, error) {}

// turn is the working state of one message.
type turn struct {
	s        *script.ProjectState
	input    string
	lower    string
	selected int
}

type rule struct {
	name   string
	match  func(t *turn) bool
	handle func(ctx context.Context, t *turn) (*Response, error)
}

// Router resolves user messages against project state.
type Router struct {
	team     *agent.Team
	acts     *acts.Workflow
	intents  *intent.Parser
	projects Projects
	observer RuleObserver
	logger   *zap.Logger
	rules    []rule
}

type RouterOption func(*Router)

// WithProjects enables the save and list commands.
func WithProjects(p Projects) RouterOption {
	return func(r *Router) { r.projects = p }
}

func WithObserver(o RuleObserver) RouterOption {
	return func(r *Router) {
		if o != nil {
			r.observer = o
		}
	}
}

func WithLogger(l *zap.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a new Router with every agent bound to c.
func New(c llm.TextCompleter, cfg *config.Config, opts ...RouterOption) *Router {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Router{
		team:     agent.NewTeam(c, cfg),
		observer: nopObserver{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.acts = acts.New(c, cfg, r.logger)
	r.intents = intent.NewParser(c, cfg, r.logger)

	// Order matters: several rules overlap syntactically.
	r.rules = []rule{
		{"global", isGlobal, r.global},
		{"mood", awaitingMood, r.mood},
		{"timing", awaitingTiming, r.timing},
		{"selection", r.isSelection, r.selectOption},
		{"cta_followup", isCTAFollowUp, r.ctaFollowUp},
		{"hook_enhance", isHookEnhance, r.hookEnhance},
		{"hook_pending", isHookPending, r.hookPending},
		{"command", isCommand, r.command},
		{"act_development", inActDevelopment, r.actDevelopment},
		{"more", isMore, r.more},
		{"custom", isCustom, r.custom},
		{"intent", always, r.classify},
	}
	return r
}

// Route handles one message. It works on a copy of s and returns the
// updated copy; when a handler fails the original s is returned with an
// apology and the error.
func (r *Router) Route(ctx context.Context, s *script.ProjectState, m Message) (*Response, *script.ProjectState, error) {
	work := s.Clone()
	t := &turn{s: work, input: strings.TrimSpace(m.Text), selected: m.OptionSelected}
	t.lower = strings.ToLower(t.input)

	for _, rl := range r.rules {
		if !rl.match(t) {
			continue
		}
		start := time.Now()
		resp, err := rl.handle(ctx, t)
		r.observer.ObserveRule(rl.name, time.Since(start), err)
		if err != nil {
			r.logger.Warn("turn failed",
				zap.String("rule", rl.name),
				zap.String("project_id", s.ID),
				zap.Error(err))
			return apology(err), s, err
		}
		if resp.Metadata == nil {
			resp.Metadata = map[string]any{}
		}
		resp.Metadata["rule"] = rl.name
		work.Touch()
		r.logger.Debug("turn routed", zap.String("rule", rl.name), zap.String("project_id", s.ID))
		return resp, work, nil
	}
	return r.intentFallback(t), work, nil
}

func (r *Router) intentFallback(t *turn) *Response {
	return fromReply(intent.Unclear(t.s))
}

// apology renders err for the user. State is untouched when this is
// shown.
func apology(err error) *Response {
	var msg string
	switch llm.KindOf(err) {
	case llm.KindTransient, llm.KindRateLimited:
		msg = "⚠️ The AI service is busy or timed out. Please try again in a moment. Your script is safe."
	case llm.KindAuth:
		msg = "⚠️ The AI provider rejected the API key. Check your provider settings and try again. Your script is safe."
	case llm.KindUnavailable:
		msg = "⚠️ No AI provider is configured. Run `hookline` to set one up. Your script is safe."
	default:
		msg = "Sorry, something went wrong. Your script is safe; please try again."
	}
	resp := text(fmt.Sprintf("%s\n\nError: %v", msg, err))
	resp.Metadata["error"] = errorCode(err)
	return resp
}

func errorCode(err error) string {
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	switch llm.KindOf(err) {
	case llm.KindTransient:
		return "provider_transient"
	case llm.KindRateLimited:
		return "provider_rate_limited"
	case llm.KindAuth:
		return "provider_auth"
	case llm.KindUnavailable:
		return "provider_unavailable"
	}
	return "internal"
}

func always(*turn) bool { return true }
