package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"book-chatbot/config"
	"book-chatbot/internal/chat"
	chatHTTP "book-chatbot/internal/chat/delivery/http"
	"book-chatbot/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Chat domain
	chatUC     chat.UseCase
	chatConfig chatHTTP.Config
	rateLimit  config.RateLimitConfig

	readiness map[string]Probe
}

// Probe reports whether a dependency is ready to serve traffic.
type Probe func(ctx context.Context) error

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Chat domain
	ChatUseCase chat.UseCase
	ChatConfig  chatHTTP.Config
	RateLimit   config.RateLimitConfig

	// Readiness probes by name, run on GET /ready
	Readiness map[string]Probe
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		chatUC:      cfg.ChatUseCase,
		chatConfig:  cfg.ChatConfig,
		rateLimit:   cfg.RateLimit,
		readiness:   cfg.Readiness,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatUC == nil {
		return errors.New("chat use case is required")
	}
	return nil
}
