package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
	wsMaxMessage = 64 << 10
)

// Frame is one server-to-client websocket message.
type Frame struct {
	Type  string        `json:"type"`
	Data  *ChatResponse `json:"data,omitempty"`
	Error *ErrorBody    `json:"error,omitempty"`
}

const (
	FrameResponse = "response"
	FrameError    = "error"
)

// chatSocket runs chat turns for one conversation over a websocket. Each
// client frame is a ChatRequest; the conversation id comes from the URL.
func (s *Server) chatSocket(c *gin.Context) {
	id := c.Param("id")
	if _, _, err := s.sessions.Open(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.String("conversation_id", id), zap.Error(err))
		return
	}
	s.metrics.WebsocketConnections.Inc()
	defer s.metrics.WebsocketConnections.Dec()

	s.serveSocket(c.Request.Context(), conn, id)
}

func (s *Server) serveSocket(ctx context.Context, conn *websocket.Conn, id string) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	send := make(chan Frame, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writePump(ctx, cancel, conn, send)
	}()

	conn.SetReadLimit(wsMaxMessage)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		// A turn can outlast the pong window, so the deadline restarts
		// before every read.
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		var req ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", zap.String("conversation_id", id), zap.Error(err))
			}
			break
		}
		req.ConversationID = id

		frame := s.socketTurn(ctx, req)
		select {
		case send <- frame:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}

	cancel()
	<-done
	conn.Close()
}

func (s *Server) socketTurn(ctx context.Context, req ChatRequest) Frame {
	if req.Message == "" && req.OptionSelected == "" {
		return Frame{Type: FrameError, Error: &ErrorBody{Code: CodeValidation, Message: "message or option_selected is required"}}
	}
	out, turn, err := s.converse(ctx, req)
	if err != nil {
		_, code := classify(err)
		return Frame{Type: FrameError, Error: &ErrorBody{Code: code, Message: err.Error()}}
	}
	if turn.Err != nil {
		_, code := classify(turn.Err)
		return Frame{Type: FrameError, Data: out, Error: &ErrorBody{Code: code, Message: turn.Err.Error()}}
	}
	return Frame{Type: FrameResponse, Data: out}
}

// writePump owns all writes to conn. It exits when ctx ends or a write
// fails, cancelling ctx so the reader stops too.
func (s *Server) writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, send <-chan Frame) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case f := <-send:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(f); err != nil {
				cancel()
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cancel()
				conn.Close()
				return
			}
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
