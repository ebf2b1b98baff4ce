package api

import (
	"context"
	"strconv"
	"strings"

	"github.com/sant0-9/hookline/internal/agent"
	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/session"
)

var templateTriggers = map[string]bool{
	"hook":           true,
	"hooks":          true,
	"generate hooks": true,
	"more hooks":     true,
}

// TemplateMode answers hook requests from canned templates when no
// provider is configured. Everything else goes to the next router, and
// every response is marked degraded.
type TemplateMode struct {
	next session.Router
}

func NewTemplateMode(next session.Router) *TemplateMode {
	return &TemplateMode{next: next}
}

func (t *TemplateMode) Route(ctx context.Context, s *script.ProjectState, m router.Message) (*router.Response, *script.ProjectState, error) {
	var (
		resp *router.Response
		next *script.ProjectState
		err  error
	)
	if templateTriggers[strings.ToLower(strings.TrimSpace(m.Text))] {
		next = s.Clone()
		res := agent.TemplateHooks(next)
		next.Touch()
		resp = &router.Response{
			Content:           res.Message,
			RequiresUserInput: true,
			Metadata: map[string]any{
				"rule":           "template",
				"component":      string(script.KindHook),
				"parse_strategy": res.Strategy,
			},
		}
		for i := range res.Options {
			n := strconv.Itoa(i + 1)
			resp.Options = append(resp.Options, router.Option{ID: n, Label: "Option " + n, Value: n})
		}
	} else {
		resp, next, err = t.next.Route(ctx, s, m)
	}

	if resp != nil {
		if resp.Metadata == nil {
			resp.Metadata = map[string]any{}
		}
		resp.Metadata["degraded"] = true
	}
	return resp, next, err
}
