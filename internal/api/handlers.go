package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/session"
	"github.com/sant0-9/hookline/internal/store"
)

func (s *Server) health(c *gin.Context) {
	if p, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			fail(c, http.StatusServiceUnavailable, CodeInternal, "database unreachable")
			return
		}
	}
	success(c, gin.H{"status": "ok", "degraded": s.opts.Degraded})
}

func (s *Server) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}
	if req.ConversationID != "" && strings.TrimSpace(req.Message) == "" && strings.TrimSpace(req.OptionSelected) == "" {
		fail(c, http.StatusBadRequest, CodeValidation, "message or option_selected is required")
		return
	}

	out, turn, err := s.converse(c.Request.Context(), req)
	if err != nil {
		failErr(c, err)
		return
	}
	if turn.Err != nil {
		status, code := classify(turn.Err)
		c.JSON(status, Envelope{
			Success: false,
			Data:    out,
			Error:   &ErrorBody{Code: code, Message: turn.Err.Error()},
		})
		return
	}
	success(c, out)
}

// converse runs one chat turn, starting a conversation when the request
// has none.
func (s *Server) converse(ctx context.Context, req ChatRequest) (*ChatResponse, *session.Turn, error) {
	id := req.ConversationID
	if id == "" {
		conv, err := s.sessions.Start(ctx, newDraft())
		if err != nil {
			return nil, nil, err
		}
		id = conv.ID
	}

	turn, err := s.sessions.Chat(ctx, id, toMessage(req))
	if err != nil {
		return nil, nil, err
	}
	out := chatResponse(id, turn.Response, turn.State)
	return &out, turn, nil
}

// toMessage treats a numeric option as a selection and any other option
// value as the text the user would have typed.
func toMessage(req ChatRequest) router.Message {
	m := router.Message{Text: req.Message}
	v := strings.TrimSpace(req.OptionSelected)
	if v == "" {
		return m
	}
	if n, err := strconv.Atoi(v); err == nil {
		m.OptionSelected = n
		return m
	}
	m.Text = v
	return m
}

func (s *Server) listConversations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	convs, err := s.sessions.Conversations(c.Request.Context(), limit)
	if err != nil {
		failErr(c, err)
		return
	}
	if convs == nil {
		convs = []store.Conversation{}
	}
	success(c, convs)
}

func (s *Server) messages(c *gin.Context) {
	msgs, err := s.sessions.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	if msgs == nil {
		msgs = []store.Message{}
	}
	success(c, msgs)
}

func (s *Server) deleteConversation(c *gin.Context) {
	id := c.Param("id")
	if err := s.sessions.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	success(c, gin.H{"deleted": id})
}

func (s *Server) export(c *gin.Context) {
	_, p, err := s.sessions.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}

	name := exportName(p)
	switch format := c.DefaultQuery("format", "text"); format {
	case "json":
		data, err := script.ExportJSON(p)
		if err != nil {
			failErr(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".json"))
		c.Data(http.StatusOK, "application/json", data)
	case "markdown", "md":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".md"))
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(script.ExportMarkdown(p)))
	case "text", "txt":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".txt"))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(script.ExportText(p)))
	default:
		fail(c, http.StatusBadRequest, CodeValidation, "format must be json, text or markdown")
	}
}

func exportName(p *script.ProjectState) string {
	name := strings.ToLower(strings.TrimSpace(p.Title))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		}
		return '-'
	}, name)
	name = strings.Trim(name, "-")
	if name == "" {
		return "script"
	}
	return name
}

func (s *Server) listProjects(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	f := store.Filter{Status: c.Query("status"), Limit: limit}
	if p := c.Query("platform"); p != "" {
		f.Platform = script.ParsePlatform(p)
	}
	list, err := s.store.List(c.Request.Context(), f)
	if err != nil {
		failErr(c, err)
		return
	}
	if list == nil {
		list = []script.ProjectSummary{}
	}
	success(c, list)
}
