// Package session runs conversations: each message loads the project
// behind a conversation, routes it, and persists the result. Turns on the
// same conversation are serialized; different conversations run in
// parallel.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

// Router is the part of router.Router a Manager drives.
type Router interface {
	Route(ctx context.Context, s *script.ProjectState, m router.Message) (*router.Response, *script.ProjectState, error)
}

// Turn is the outcome of one message.
type Turn struct {
	ConversationID string
	Response       *router.Response
	State          *script.ProjectState

	// Err is set when the router failed. Response then holds the apology
	// and State the unchanged project.
	Err error
}

type Manager struct {
	store  store.Store
	router Router
	locks  *store.Locks
	logger *zap.Logger
}

func NewManager(st store.Store, r Router, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:  st,
		router: r,
		locks:  store.NewLocks(),
		logger: logger,
	}
}

// Start saves a new project and opens a conversation for it.
func (m *Manager) Start(ctx context.Context, p *script.ProjectState) (*store.Conversation, error) {
	if err := m.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return m.Resume(ctx, p.ID)
}

// Resume opens a new conversation on an existing project.
func (m *Manager) Resume(ctx context.Context, projectID string) (*store.Conversation, error) {
	p, err := m.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c := &store.Conversation{ProjectID: p.ID, Title: p.Title}
	if err := m.store.CreateConversation(ctx, c); err != nil {
		return nil, err
	}
	m.logger.Info("conversation started",
		zap.String("conversation_id", c.ID),
		zap.String("project_id", p.ID))
	return c, nil
}

// Open returns a conversation and the current state of its project.
func (m *Manager) Open(ctx context.Context, conversationID string) (*store.Conversation, *script.ProjectState, error) {
	c, err := m.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	p, err := m.store.Load(ctx, c.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return c, p, nil
}

// Chat handles one user message on a conversation. The returned error is
// for storage failures; router failures are reported in Turn.Err.
func (m *Manager) Chat(ctx context.Context, conversationID string, msg router.Message) (*Turn, error) {
	unlock := m.locks.Lock(conversationID)
	defer unlock()

	c, state, err := m.Open(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := m.store.AppendMessage(ctx, &store.Message{
		ConversationID: c.ID,
		Role:           store.RoleUser,
		Content:        messageText(msg),
	}); err != nil {
		return nil, err
	}

	resp, next, routeErr := m.router.Route(ctx, state, msg)
	if routeErr == nil {
		if err := m.store.Save(ctx, next); err != nil {
			return nil, fmt.Errorf("persist turn: %w", err)
		}
	} else {
		m.logger.Warn("turn failed, state kept",
			zap.String("conversation_id", c.ID),
			zap.Error(routeErr))
	}

	if err := m.store.AppendMessage(ctx, &store.Message{
		ConversationID: c.ID,
		Role:           store.RoleAssistant,
		Content:        resp.Content,
	}); err != nil {
		return nil, err
	}

	return &Turn{
		ConversationID: c.ID,
		Response:       resp,
		State:          next,
		Err:            routeErr,
	}, nil
}

func messageText(msg router.Message) string {
	if strings.TrimSpace(msg.Text) == "" && msg.OptionSelected > 0 {
		return strconv.Itoa(msg.OptionSelected)
	}
	return msg.Text
}

func (m *Manager) History(ctx context.Context, conversationID string) ([]store.Message, error) {
	if _, err := m.store.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	return m.store.Messages(ctx, conversationID)
}

func (m *Manager) Conversations(ctx context.Context, limit int) ([]store.Conversation, error) {
	return m.store.ListConversations(ctx, limit)
}

// Delete removes the conversation and its project. It waits for any
// turn in flight on the conversation.
func (m *Manager) Delete(ctx context.Context, conversationID string) error {
	unlock := m.locks.Lock(conversationID)
	defer unlock()
	return m.store.DeleteConversation(ctx, conversationID)
}
