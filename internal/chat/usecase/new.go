package usecase

import (
	"context"
	"time"

	"book-chatbot/internal/chat/repository"
	"book-chatbot/internal/intent"
	"book-chatbot/pkg/log"
)

// CoverFinder looks up a cover image URL for a book. An empty URL means no cover was found.
type CoverFinder interface {
	Cover(ctx context.Context, title, author string) (string, error)
}

// implUseCase is the private implementation of chat.UseCase.
type implUseCase struct {
	l        log.Logger
	catalog  intent.Provider
	sessions repository.SessionRepository
	history  repository.HistoryRepository
	covers   CoverFinder
	picker   Picker
	now      func() time.Time
}

// Option customizes the use case.
type Option func(*implUseCase)

// WithCoverFinder enables cover enrichment for books without an Image.
func WithCoverFinder(f CoverFinder) Option {
	return func(uc *implUseCase) { uc.covers = f }
}

// WithPicker replaces the random source used for response, prompt and acclaim selection.
func WithPicker(p Picker) Option {
	return func(uc *implUseCase) { uc.picker = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(uc *implUseCase) { uc.now = now }
}

// New creates a new chat UseCase implementation.
func New(
	l log.Logger,
	catalog intent.Provider,
	sessions repository.SessionRepository,
	history repository.HistoryRepository,
	opts ...Option,
) *implUseCase {
	uc := &implUseCase{
		l:        l,
		catalog:  catalog,
		sessions: sessions,
		history:  history,
		picker:   NewRandomPicker(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
