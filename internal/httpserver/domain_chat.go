package httpserver

import (
	"context"
	"fmt"

	chatHTTP "book-chatbot/internal/chat/delivery/http"
	"book-chatbot/internal/middleware"
)

// setupChatDomain builds the chat handler and registers the page and API routes.
func (srv HTTPServer) setupChatDomain(ctx context.Context, mw middleware.Middleware) error {
	h, err := chatHTTP.New(srv.l, srv.chatUC, srv.chatConfig)
	if err != nil {
		return fmt.Errorf("chat handler: %w", err)
	}

	// Page: /, /chat, /chat/new, /conversations/:name
	chatHTTP.RegisterPageRoutes(srv.gin.Group(""), h, mw)

	// API: /api/v1/chat/...
	chatHTTP.RegisterRoutes(srv.gin.Group("/api/v1/chat"), h, mw)

	srv.l.Infof(ctx, "Chat domain registered")
	return nil
}
