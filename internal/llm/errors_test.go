package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestStatusErrorKinds(t *testing.T) {
	tests := []struct {
		status    int
		want      Kind
		retryable bool
	}{
		{401, KindAuth, false},
		{403, KindAuth, false},
		{429, KindRateLimited, true},
		{500, KindTransient, true},
		{503, KindTransient, true},
		{408, KindTransient, true},
		{400, KindUnavailable, false},
		{404, KindUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := statusError("groq", tt.status, []byte("boom"))
			if got := KindOf(err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
			if got := IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	if err := transportError("x", context.Canceled); !errors.Is(err, context.Canceled) || KindOf(err) != "" {
		t.Errorf("canceled should pass through, got %v", err)
	}
	err := transportError("x", context.DeadlineExceeded)
	if KindOf(err) != KindTransient {
		t.Errorf("KindOf(deadline) = %q, want transient", KindOf(err))
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("deadline error should unwrap to context.DeadlineExceeded")
	}
}

func TestProviderErrorMessage(t *testing.T) {
	err := statusError("openai", 429, []byte("slow down"))
	want := "openai: rate_limited (status 429): slow down"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if KindOf(fmt.Errorf("wrapped: %w", err)) != KindRateLimited {
		t.Errorf("KindOf should see through wrapping")
	}
}
