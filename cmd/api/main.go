package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"book-chatbot/config"
	_ "book-chatbot/docs" // Swagger docs
	"book-chatbot/internal/app"
	chatHTTP "book-chatbot/internal/chat/delivery/http"
	"book-chatbot/internal/httpserver"
	"book-chatbot/pkg/log"
)

// @title       Book Chatbot API
// @description Rule-based book recommendation chatbot with a browser chat page and a JSON API.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Book Chatbot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Chat service
	chatApp, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize chat service: ", err)
		return
	}
	defer func() {
		if err := chatApp.Close(); err != nil {
			logger.Warnf(context.Background(), "Close: %v", err)
		}
	}()

	readiness := make(map[string]httpserver.Probe, len(chatApp.Readiness))
	for name, probe := range chatApp.Readiness {
		readiness[name] = probe
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatUseCase: chatApp.UseCase,
		ChatConfig: chatHTTP.Config{
			CookieName:   cfg.Session.CookieName,
			CookieSecure: cfg.Session.CookieSecure,
			CookieMaxAge: cfg.Session.TTL,
		},
		RateLimit: cfg.RateLimit,
		Readiness: readiness,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
