// Package api serves the script assistant over HTTP: a JSON chat endpoint
// with an onboarding wizard, conversation management, export, and a
// websocket variant of chat.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sant0-9/hookline/internal/metrics"
	"github.com/sant0-9/hookline/internal/session"
	"github.com/sant0-9/hookline/internal/store"
)

const requestIDHeader = "X-Request-ID"

type Options struct {
	Addr           string
	AllowedOrigins []string
	// Degraded serves template hooks because no provider is configured.
	Degraded bool
}

type Server struct {
	engine   *gin.Engine
	sessions *session.Manager
	store    store.Store
	metrics  *metrics.Metrics
	logger   *zap.Logger
	opts     Options
	upgrader websocket.Upgrader
}

// New wires the chat router behind the onboarding wizard (and template
// mode when degraded) and registers every route.
func New(st store.Store, r session.Router, m *metrics.Metrics, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}

	chain := r
	if opts.Degraded {
		chain = NewTemplateMode(chain)
	}
	chain = NewWizard(chain)

	s := &Server{
		sessions: session.NewManager(st, chain, logger),
		store:    st,
		metrics:  m,
		logger:   logger,
		opts:     opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(requestID(), s.recovery(), s.accessLog(), s.metrics.Middleware(), s.cors())

	e.GET("/healthz", s.health)
	e.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := e.Group("/api")
	api.POST("/chat", s.chat)
	api.GET("/conversations", s.listConversations)
	api.GET("/conversations/:id/messages", s.messages)
	api.GET("/conversations/:id/export", s.export)
	api.DELETE("/conversations/:id", s.deleteConversation)
	api.GET("/projects", s.listProjects)
	api.GET("/ws/:id", s.chatSocket)
	return e
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.opts.Addr), zap.Bool("degraded", s.opts.Degraded))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	<-errc
	s.logger.Info("http server stopped")
	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")))
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString("request_id")),
					zap.ByteString("stack", debug.Stack()))
				fail(c, http.StatusInternalServerError, CodeInternal, "internal server error")
			}
		}()
		c.Next()
	}
}

func (s *Server) cors() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(s.opts.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.opts.AllowedOrigins
	}
	return cors.New(cfg)
}

// originChecker accepts same-host requests, requests without an Origin
// header, and the configured origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(set) == 0 || set[origin] {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}
