package http

import (
	"github.com/gin-gonic/gin"

	"book-chatbot/internal/middleware"
)

// RegisterRoutes maps the JSON API under the given group (e.g. /api/v1/chat).
func RegisterRoutes(r *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	r.Use(mw.RateLimit())

	r.POST("/messages", h.SendMessage)
	r.POST("/sessions", h.NewSession)
	r.GET("/sessions/current", h.CurrentSession)
	r.GET("/conversations", h.ListConversations)
	r.GET("/conversations/:name", h.GetConversation)
}

// RegisterPageRoutes maps the browser chat page at the root.
func RegisterPageRoutes(r *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	r.GET("/", h.Index)
	r.GET("/conversations/:name", h.ViewConversation)

	forms := r.Group("", mw.RateLimit())
	forms.POST("/chat", h.PostChat)
	forms.POST("/chat/new", h.NewChat)
}
