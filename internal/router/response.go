package router

import (
	"fmt"
	"strconv"

	"github.com/sant0-9/hookline/internal/agent"
	"github.com/sant0-9/hookline/internal/intent"
	"github.com/sant0-9/hookline/internal/script"
)

// Option is a selectable choice. Value is what the surface sends back as
// the selected option.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Response is the result of one routed turn, rendered the same way by
// the terminal and the HTTP API.
type Response struct {
	Content           string         `json:"content"`
	Options           []Option       `json:"options,omitempty"`
	RequiresUserInput bool           `json:"requires_user_input"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// Message is one user turn.
type Message struct {
	Text string
	// OptionSelected is a 1-based option index chosen explicitly, for
	// example by clicking a button. Zero means none.
	OptionSelected int
}

func optionsFrom(opts []script.Option) []Option {
	if len(opts) == 0 {
		return nil
	}
	out := make([]Option, len(opts))
	for i, o := range opts {
		n := strconv.Itoa(i + 1)
		label := "Option " + n
		if o.Type != "" {
			label = fmt.Sprintf("Option %s: %s", n, o.Type)
		}
		out[i] = Option{ID: n, Label: label, Value: n}
	}
	return out
}

func fromResult(res *agent.Result) *Response {
	resp := &Response{
		Content:           res.Message,
		Options:           optionsFrom(res.Options),
		RequiresUserInput: true,
		Metadata:          map[string]any{},
	}
	if res.Kind != "" {
		resp.Metadata["component"] = string(res.Kind)
	}
	if res.Strategy != "" {
		resp.Metadata["parse_strategy"] = res.Strategy
	}
	return resp
}

func fromReply(r *intent.Reply) *Response {
	meta := r.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return &Response{Content: r.Content, RequiresUserInput: r.RequiresUserInput, Metadata: meta}
}

func text(content string) *Response {
	return &Response{Content: content, RequiresUserInput: true, Metadata: map[string]any{}}
}
