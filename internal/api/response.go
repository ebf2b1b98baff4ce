package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInternal            = "INTERNAL_ERROR"
	CodeCanceled            = "CANCELED"
	CodeProviderTransient   = "PROVIDER_TRANSIENT"
	CodeProviderRateLimited = "PROVIDER_RATE_LIMITED"
	CodeProviderAuth        = "PROVIDER_AUTH"
	CodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
)

// Envelope wraps every JSON response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: msg},
	})
}

// failErr maps err to a status and code.
func failErr(c *gin.Context, err error) {
	status, code := classify(err)
	fail(c, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, context.Canceled):
		return 499, CodeCanceled
	}
	switch llm.KindOf(err) {
	case llm.KindTransient:
		return http.StatusServiceUnavailable, CodeProviderTransient
	case llm.KindRateLimited:
		return http.StatusTooManyRequests, CodeProviderRateLimited
	case llm.KindAuth:
		return http.StatusBadGateway, CodeProviderAuth
	case llm.KindUnavailable:
		return http.StatusServiceUnavailable, CodeProviderUnavailable
	}
	return http.StatusInternalServerError, CodeInternal
}

// ChatRequest is the body of POST /api/chat and of websocket frames.
// OptionSelected carries either a 1-based option number or an option
// value such as "tiktok".
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	OptionSelected string `json:"option_selected,omitempty"`
}

type ChatResponse struct {
	Response          string          `json:"response"`
	Options           []router.Option `json:"options"`
	ConversationID    string          `json:"conversation_id"`
	State             string          `json:"state"`
	RequiresUserInput bool            `json:"requires_user_input"`
	Metadata          map[string]any  `json:"metadata,omitempty"`
}

func chatResponse(conversationID string, resp *router.Response, s *script.ProjectState) ChatResponse {
	opts := resp.Options
	if opts == nil {
		opts = []router.Option{}
	}
	return ChatResponse{
		Response:          resp.Content,
		Options:           opts,
		ConversationID:    conversationID,
		State:             stateLabel(s),
		RequiresUserInput: resp.RequiresUserInput,
		Metadata:          resp.Metadata,
	}
}

// stateLabel names where the conversation stands, for clients that
// change their UI per step.
func stateLabel(s *script.ProjectState) string {
	if s == nil {
		return ""
	}
	if st := stageOf(s); st != stageReady {
		return st
	}
	switch {
	case s.Complete():
		return "complete"
	case s.InActDevelopment():
		return "act_development"
	case s.ActiveModule != "" && s.ActiveModule != script.ModuleIdle:
		return string(s.ActiveModule)
	}
	return stageReady
}
