package llm

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Params are the generation parameters for one call.
type Params struct {
	// Role names the calling agent for logs and metrics.
	Role        string
	Temperature float64
	MaxTokens   int
	JSON        bool
}

// TextCompleter is the narrow completion capability the agents consume.
type TextCompleter interface {
	Complete(ctx context.Context, system, user string, p Params) (string, error)
}

// Observer receives one call per finished completion attempt.
type Observer interface {
	ObserveCompletion(provider, role string, d time.Duration, err error)
}

// Completer wraps a Provider with a per-call timeout and bounded retry
// of transient and rate-limited failures.
type Completer struct {
	provider   Provider
	model      string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
	observer   Observer
}

type CompleterOption func(*Completer)

func WithModel(model string) CompleterOption {
	return func(c *Completer) { c.model = model }
}

func WithTimeout(d time.Duration) CompleterOption {
	return func(c *Completer) { c.timeout = d }
}

// WithRetries sets the total number of attempts per call.
func WithRetries(n int) CompleterOption {
	return func(c *Completer) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

func WithBackoff(d time.Duration) CompleterOption {
	return func(c *Completer) { c.backoff = d }
}

func WithLogger(l *zap.Logger) CompleterOption {
	return func(c *Completer) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithObserver(o Observer) CompleterOption {
	return func(c *Completer) { c.observer = o }
}

// NewCompleter creates a new Completer
func NewCompleter(p Provider, opts ...CompleterOption) *Completer {
	c := &Completer{
		provider:   p,
		timeout:    60 * time.Second,
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Completer) Provider() Provider {
	return c.provider
}

func (c *Completer) Complete(ctx context.Context, system, user string, p Params) (string, error) {
	if c.provider == nil {
		return "", ErrNoProvider
	}

	req := NewRequest(c.model, system, user)
	if p.MaxTokens > 0 {
		req.MaxTokens = p.MaxTokens
	}
	req.Temperature = p.Temperature
	req.JSON = p.JSON

	log := c.logger.With(
		zap.String("provider", c.provider.Name()),
		zap.String("agent", p.Role),
	)

	var lastErr error
	wait := c.backoff
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		start := time.Now()
		resp, err := c.attempt(ctx, req)
		elapsed := time.Since(start)
		if c.observer != nil {
			c.observer.ObserveCompletion(c.provider.Name(), p.Role, elapsed, err)
		}

		if err == nil {
			log.Debug("completion finished",
				zap.Int("attempt", attempt),
				zap.Duration("duration", elapsed),
				zap.Int("total_tokens", resp.Usage.TotalTokens),
			)
			return strings.TrimSpace(resp.Content), nil
		}

		lastErr = err
		if !IsRetryable(err) || attempt == c.maxRetries {
			break
		}

		log.Warn("completion failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	log.Error("completion failed", zap.Error(lastErr))
	return "", lastErr
}

func (c *Completer) attempt(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.provider.Complete(ctx, req)
	if err != nil && ctx.Err() == context.DeadlineExceeded && KindOf(err) == "" {
		return nil, &ProviderError{Kind: KindTransient, Provider: c.provider.Name(), Err: err}
	}
	return resp, err
}
