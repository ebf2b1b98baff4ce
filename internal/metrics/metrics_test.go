package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sant0-9/hookline/internal/llm"
)

func TestObserveCompletion(t *testing.T) {
	m := New(nil)

	m.ObserveCompletion("openai", "hook", time.Second, nil)
	m.ObserveCompletion("openai", "hook", time.Second, &llm.ProviderError{Kind: llm.KindRateLimited, Provider: "openai"})
	m.ObserveCompletion("openai", "story", time.Second, errors.New("boom"))

	tests := []struct {
		role, status string
		want         float64
	}{
		{"hook", "ok", 1},
		{"hook", "rate_limited", 1},
		{"story", "error", 1},
		{"story", "ok", 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.LLMCallTotal.WithLabelValues("openai", tt.role, tt.status))
		if got != tt.want {
			t.Errorf("call_total{%s,%s} = %v, want %v", tt.role, tt.status, got, tt.want)
		}
	}
}

func TestObserveRule(t *testing.T) {
	m := New(nil)
	m.ObserveRule("selection", time.Millisecond, nil)
	m.ObserveRule("selection", time.Millisecond, nil)

	if got := testutil.ToFloat64(m.RuleTotal.WithLabelValues("selection", "ok")); got != 2 {
		t.Errorf("turns_total = %v, want 2", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(nil)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/healthz", "200")); got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "hookline_http_requests_total") {
		t.Errorf("metrics output missing request counter:\n%s", w.Body.String())
	}
}
