package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind classifies provider failures.
type Kind string

const (
	KindTransient   Kind = "transient"
	KindAuth        Kind = "auth"
	KindRateLimited Kind = "rate_limited"
	KindUnavailable Kind = "unavailable"
)

// ErrNoProvider means no credentials or provider are configured.
var ErrNoProvider = &ProviderError{Kind: KindUnavailable, Err: errors.New("no LLM provider configured")}

// ProviderError is returned by every provider call that fails.
type ProviderError struct {
	Kind     Kind
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a provider error, or "" for other errors.
func KindOf(err error) Kind {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

// IsRetryable reports whether a call that failed with err may be retried.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindTransient, KindRateLimited:
		return true
	}
	return false
}

func statusError(provider string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 300 {
		msg = msg[:300]
	}
	var err error
	if msg != "" {
		err = errors.New(msg)
	}

	kind := KindTransient
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status == http.StatusRequestTimeout || status >= 500:
		kind = KindTransient
	case status >= 400:
		// Malformed requests will not improve on retry.
		kind = KindUnavailable
	}
	return &ProviderError{Kind: kind, Provider: provider, Status: status, Err: err}
}

func transportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ProviderError{Kind: KindTransient, Provider: provider, Err: fmt.Errorf("timed out: %w", err)}
	}
	return &ProviderError{Kind: KindTransient, Provider: provider, Err: err}
}
