package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/llm/llmtest"
	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const threeHooks = `HOOK 1:
Type: Curiosity Gap
Text: "Your coffee tastes bitter for one reason nobody mentions."

HOOK 2:
Type: Statistical Shock
Text: "Most home brewers waste half their beans without knowing it."

HOOK 3:
Type: Personal Story
Text: "I brewed bad coffee for ten years until a barista showed me this."`

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorBody      `json:"error"`
}

func newServer(t *testing.T, c llm.TextCompleter, degraded bool) *Server {
	t.Helper()
	st, err := store.Open("", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	r := router.New(c, config.DefaultConfig(), router.WithProjects(st))
	return New(st, r, nil, nil, Options{Degraded: degraded})
}

func do(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func chat(t *testing.T, s *Server, req ChatRequest) (int, ChatResponse, *ErrorBody) {
	t.Helper()
	w, env := do(t, s, http.MethodPost, "/api/chat", req)
	var out ChatResponse
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &out))
	}
	return w.Code, out, env.Error
}

// onboard walks the wizard and returns the conversation id.
func onboard(t *testing.T, s *Server) string {
	t.Helper()
	code, out, _ := chat(t, s, ChatRequest{})
	require.Equal(t, http.StatusOK, code)
	id := out.ConversationID
	for _, req := range []ChatRequest{
		{Message: "coffee brewing"},
		{OptionSelected: "tiktok"},
		{Message: "beginners"},
		{OptionSelected: "2"},
	} {
		req.ConversationID = id
		code, _, _ := chat(t, s, req)
		require.Equal(t, http.StatusOK, code)
	}
	return id
}

func TestOnboardingWizard(t *testing.T) {
	fake := llmtest.New(threeHooks)
	s := newServer(t, fake.Completer(), false)

	code, out, _ := chat(t, s, ChatRequest{})
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, out.ConversationID)
	assert.Equal(t, stageTopic, out.State)
	assert.Contains(t, out.Response, "What's your video about?")
	id := out.ConversationID

	_, out, _ = chat(t, s, ChatRequest{ConversationID: id, Message: "coffee brewing"})
	assert.Equal(t, stagePlatform, out.State)
	require.Len(t, out.Options, 4)
	assert.Equal(t, "tiktok", out.Options[1].Value)

	_, out, _ = chat(t, s, ChatRequest{ConversationID: id, OptionSelected: "tiktok"})
	assert.Equal(t, stageAudience, out.State)
	assert.Contains(t, out.Response, "Creating for **TikTok**")

	_, out, _ = chat(t, s, ChatRequest{ConversationID: id, Message: "beginners"})
	assert.Equal(t, stageDuration, out.State)
	require.Len(t, out.Options, 4)
	assert.Equal(t, "15 seconds", out.Options[0].Value)
	assert.Equal(t, "custom", out.Options[3].Value)

	_, out, _ = chat(t, s, ChatRequest{ConversationID: id, OptionSelected: "2"})
	assert.Equal(t, stageReady, out.State)
	assert.Contains(t, out.Response, "**Duration:** 30 seconds")
	require.Len(t, out.Options, 3)
	assert.Equal(t, "onboarding", out.Metadata["rule"])
	assert.Equal(t, 0, fake.Calls())

	code, out, _ = chat(t, s, ChatRequest{ConversationID: id, OptionSelected: "hook"})
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, out.Options, 3)
	assert.Equal(t, "hook", out.State)
	assert.Equal(t, 1, fake.Calls())
}

func TestWizardCustomDuration(t *testing.T) {
	s := newServer(t, llmtest.New().Completer(), false)
	_, out, _ := chat(t, s, ChatRequest{Message: "ignored, asks for topic first"})
	id := out.ConversationID
	assert.Equal(t, stagePlatform, out.State, "a first message is taken as the topic")

	for _, req := range []ChatRequest{{OptionSelected: "3"}, {Message: "designers"}} {
		req.ConversationID = id
		chat(t, s, req)
	}
	_, out, _ = chat(t, s, ChatRequest{ConversationID: id, OptionSelected: "custom"})
	assert.Equal(t, stageDuration, out.State)

	_, out, _ = chat(t, s, ChatRequest{ConversationID: id, Message: "45 seconds"})
	assert.Equal(t, stageReady, out.State)
	assert.Contains(t, out.Response, "**Platform:** Instagram")
	assert.Contains(t, out.Response, "**Duration:** 45 seconds")
}

func TestChatErrors(t *testing.T) {
	s := newServer(t, llmtest.New().Completer(), false)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"unknown conversation", ChatRequest{ConversationID: "missing", Message: "hi"}, http.StatusNotFound, CodeNotFound},
		{"empty turn", ChatRequest{ConversationID: "missing"}, http.StatusBadRequest, CodeValidation},
		{"bad body", "not an object", http.StatusBadRequest, CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, s, http.MethodPost, "/api/chat", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestProviderFailureKeepsConversation(t *testing.T) {
	fake := llmtest.New()
	fake.PushError(&llm.ProviderError{Kind: llm.KindRateLimited, Provider: "fake", Status: 429})
	fake.PushError(&llm.ProviderError{Kind: llm.KindRateLimited, Provider: "fake", Status: 429})
	fake.PushError(&llm.ProviderError{Kind: llm.KindRateLimited, Provider: "fake", Status: 429})
	s := newServer(t, fake.Completer(), false)
	id := onboard(t, s)

	code, out, errBody := chat(t, s, ChatRequest{ConversationID: id, Message: "hook"})
	assert.Equal(t, http.StatusTooManyRequests, code)
	require.NotNil(t, errBody)
	assert.Equal(t, CodeProviderRateLimited, errBody.Code)
	assert.Contains(t, out.Response, "busy")
	assert.Equal(t, stageReady, out.State)
}

func TestConversationEndpoints(t *testing.T) {
	s := newServer(t, llmtest.New(threeHooks).Completer(), false)
	id := onboard(t, s)
	chat(t, s, ChatRequest{ConversationID: id, Message: "hook"})
	chat(t, s, ChatRequest{ConversationID: id, OptionSelected: "1"})

	w, env := do(t, s, http.MethodGet, "/api/conversations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var convs []store.Conversation
	require.NoError(t, json.Unmarshal(env.Data, &convs))
	require.Len(t, convs, 1)
	assert.Equal(t, "coffee brewing", convs[0].Title)

	w, env = do(t, s, http.MethodGet, "/api/conversations/"+id+"/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var msgs []store.Message
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	assert.Len(t, msgs, 14)

	w, _ = do(t, s, http.MethodGet, "/api/conversations/"+id+"/export?format=text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HOOK:\nYour coffee tastes bitter for one reason nobody mentions.", w.Body.String())

	w, _ = do(t, s, http.MethodGet, "/api/conversations/"+id+"/export?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "coffee-brewing.json")

	w, env = do(t, s, http.MethodGet, "/api/conversations/"+id+"/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, s, http.MethodGet, "/api/projects?platform=tiktok", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "coffee brewing")

	w, _ = do(t, s, http.MethodDelete, "/api/conversations/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = do(t, s, http.MethodGet, "/api/conversations/"+id+"/messages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, env.Error.Code)
}

func TestDegradedMode(t *testing.T) {
	s := newServer(t, llm.NewCompleter(nil), true)
	id := onboard(t, s)

	code, out, _ := chat(t, s, ChatRequest{ConversationID: id, Message: "hook"})
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out.Options, 3)
	assert.Equal(t, true, out.Metadata["degraded"])
	assert.Equal(t, "template", out.Metadata["parse_strategy"])
	assert.Contains(t, out.Response, "POV: You just discovered the secret to coffee brewing")

	code, out, _ = chat(t, s, ChatRequest{ConversationID: id, OptionSelected: "1"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "selection", out.Metadata["rule"])
	assert.Equal(t, true, out.Metadata["degraded"])

	code, out, errBody := chat(t, s, ChatRequest{ConversationID: id, Message: "cta"})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NotNil(t, errBody)
	assert.Equal(t, CodeProviderUnavailable, errBody.Code)
	assert.Equal(t, true, out.Metadata["degraded"])
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	s := newServer(t, llmtest.New().Completer(), false)

	w, env := do(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))

	w, _ = do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hookline_http_requests_total{method="GET",path="/healthz",status="200"} 2`)
}

func TestWebsocketChat(t *testing.T) {
	s := newServer(t, llmtest.New().Completer(), false)
	_, out, _ := chat(t, s, ChatRequest{})
	id := out.ConversationID

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(base+"/api/ws/missing", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	conn, _, err := websocket.DefaultDialer.Dial(base+"/api/ws/"+id, nil)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(ChatRequest{Message: "coffee brewing"}))
	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, FrameResponse, f.Type)
	require.NotNil(t, f.Data)
	assert.Equal(t, id, f.Data.ConversationID)
	assert.Equal(t, stagePlatform, f.Data.State)

	require.NoError(t, conn.WriteJSON(ChatRequest{}))
	f = Frame{}
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, FrameError, f.Type)
	assert.Equal(t, CodeValidation, f.Error.Code)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()
}
