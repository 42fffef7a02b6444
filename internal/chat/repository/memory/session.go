package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/chat/repository"
)

type implSessionRepository struct {
	sessions *expirable.LRU[string, chat.Session]
}

var _ repository.SessionRepository = (*implSessionRepository)(nil)

// New creates an in-process session store. Sessions expire after ttl;
// the least recently used ones are evicted past maxEntries.
func New(maxEntries int, ttl time.Duration) *implSessionRepository {
	return &implSessionRepository{
		sessions: expirable.NewLRU[string, chat.Session](maxEntries, nil, ttl),
	}
}

func (r *implSessionRepository) GetSession(ctx context.Context, id string) (chat.Session, error) {
	s, ok := r.sessions.Get(id)
	if !ok {
		return chat.Session{}, chat.ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (r *implSessionRepository) SaveSession(ctx context.Context, s chat.Session) error {
	if s.ID == "" {
		return repository.ErrInvalidSessionID
	}
	r.sessions.Add(s.ID, s.Clone())
	return nil
}

func (r *implSessionRepository) DeleteSession(ctx context.Context, id string) error {
	r.sessions.Remove(id)
	return nil
}
