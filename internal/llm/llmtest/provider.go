// Package llmtest provides a scripted provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/sant0-9/hookline/internal/llm"
)

type reply struct {
	content string
	err     error
}

// Provider returns queued replies in order. Once the queue is empty it
// answers with Fallback.
type Provider struct {
	mu       sync.Mutex
	queue    []reply
	requests []*llm.CompletionRequest

	Fallback string
}

// New creates a Provider that will answer with replies in order.
func New(replies ...string) *Provider {
	p := &Provider{Fallback: "OK"}
	for _, r := range replies {
		p.Push(r)
	}
	return p
}

func (p *Provider) Push(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, reply{content: content})
}

func (p *Provider) PushError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, reply{err: err})
}

func (p *Provider) Name() string {
	return "fake"
}

func (p *Provider) Ping(ctx context.Context) error {
	return nil
}

func (p *Provider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := reply{content: p.Fallback}
	if len(p.queue) > 0 {
		r = p.queue[0]
		p.queue = p.queue[1:]
	}
	if r.err != nil {
		return nil, r.err
	}
	return &llm.CompletionResponse{Content: r.content, Model: req.Model, FinishReason: "stop"}, nil
}

// Calls returns the number of completion requests received.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// LastPrompt returns the user message of the most recent request.
func (p *Provider) LastPrompt() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return ""
	}
	msgs := p.requests[len(p.requests)-1].Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			return msgs[i].Content
		}
	}
	return ""
}

// Requests returns a copy of all requests received.
func (p *Provider) Requests() []*llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*llm.CompletionRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// Completer wraps p in an llm.Completer with no retry backoff.
func (p *Provider) Completer() *llm.Completer {
	return llm.NewCompleter(p, llm.WithBackoff(0))
}
