package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/observability"
	"github.com/kbukum/voicelist/server/endpoint"
	"github.com/kbukum/voicelist/server/middleware"
)

const (
	shutdownGrace        = 10 * time.Second
	maxConcurrentStreams = 250
)

// Server serves a Gin engine over HTTP/1.1 and cleartext HTTP/2 on one
// port. net/http middleware wraps the engine, outermost first.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	config Config
	log    *logger.Logger

	mu       sync.Mutex
	chain    []middleware.Middleware
	listener net.Listener
}

// New builds a server with no routes and no middleware. Gin runs in debug
// mode only when the global log level is debug or lower.
func New(cfg Config, log *logger.Logger) *Server {
	mode := gin.ReleaseMode
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		mode = gin.DebugMode
	}
	gin.SetMode(mode)

	return &Server{
		engine: gin.New(),
		config: cfg,
		log:    log.WithComponent("server"),
		http: &http.Server{
			Addr:         cfg.addr(),
			ReadTimeout:  seconds(cfg.ReadTimeout),
			WriteTimeout: seconds(cfg.WriteTimeout),
			IdleTimeout:  seconds(cfg.IdleTimeout),
		},
	}
}

// GinEngine is where routes are registered.
func (s *Server) GinEngine() *gin.Engine { return s.engine }

func (s *Server) Use(mws ...middleware.Middleware) {
	s.mu.Lock()
	s.chain = append(s.chain, mws...)
	s.mu.Unlock()
}

// Handler is the engine wrapped in the middleware chain, without h2c. Tests
// drive it with httptest.
func (s *Server) Handler() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return middleware.Chain(s.chain...)(s.engine)
}

// Start binds the listener and serves in the background. A bind failure is
// returned; later serve errors are only logged.
func (s *Server) Start(context.Context) error {
	s.http.Handler = h2c.NewHandler(s.Handler(), &http2.Server{
		MaxConcurrentStreams: maxConcurrentStreams,
		IdleTimeout:          seconds(s.config.IdleTimeout),
	})

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.http.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}()
	s.log.Info("HTTP server listening", logger.Fields("addr", ln.Addr().String()))
	return nil
}

// Stop drains in-flight requests for up to 10 seconds.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownGrace)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.log.WithError(err).Error("HTTP server shutdown failed")
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.log.Info("HTTP server stopped")
	return nil
}

// Addr is the bound address after Start, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.http.Addr
	}
	return s.listener.Addr().String()
}

// ApplyMiddleware installs, outermost first: recovery, request ID, CORS,
// the body-size limit, metrics when m is set, and request logging.
func (s *Server) ApplyMiddleware(m *observability.Metrics) {
	mws := []middleware.Middleware{
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.CORS(&s.config.CORS),
		middleware.BodySizeLimit(s.config.MaxBodySize),
	}
	if m != nil {
		mws = append(mws, middleware.Metrics(m))
	}
	s.Use(append(mws, middleware.RequestLogger(s.log))...)
}

// RegisterDefaultEndpoints mounts GET /health and GET /info.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/info", endpoint.Info(serviceName))
}

func (s *Server) ApplyDefaults(serviceName string, checker endpoint.HealthChecker, m *observability.Metrics) {
	s.ApplyMiddleware(m)
	s.RegisterDefaultEndpoints(serviceName, checker)
}
