package http

import (
	"embed"
	"html/template"
	"time"

	"book-chatbot/internal/chat"
	"book-chatbot/pkg/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config controls the session cookie.
type Config struct {
	CookieName   string
	CookieSecure bool
	CookieMaxAge time.Duration
}

type handler struct {
	l    log.Logger
	uc   chat.UseCase
	cfg  Config
	page *template.Template
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, uc chat.UseCase, cfg Config) (*handler, error) {
	page, err := template.New("chat.html").Funcs(template.FuncMap{
		"botHTML": botHTML,
	}).ParseFS(templateFS, "templates/chat.html")
	if err != nil {
		return nil, err
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	return &handler{
		l:    l,
		uc:   uc,
		cfg:  cfg,
		page: page,
	}, nil
}
