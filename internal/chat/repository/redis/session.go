package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/chat/repository"
)

type implSessionRepository struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

var _ repository.SessionRepository = (*implSessionRepository)(nil)

// Options configures the redis session store.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect dials redis and verifies the connection with PING.
func Connect(ctx context.Context, opt Options) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// New creates a session store over an existing client. Sessions are JSON
// values under "<prefix>session:<id>" and expire after ttl of inactivity.
func New(client *goredis.Client, prefix string, ttl time.Duration) *implSessionRepository {
	return &implSessionRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *implSessionRepository) key(id string) string {
	return r.prefix + "session:" + id
}

func (r *implSessionRepository) GetSession(ctx context.Context, id string) (chat.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return chat.Session{}, chat.ErrSessionNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var s chat.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return chat.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if s.PageIndex == nil {
		s.PageIndex = make(map[string]int)
	}
	return s, nil
}

func (r *implSessionRepository) SaveSession(ctx context.Context, s chat.Session) error {
	if s.ID == "" {
		return repository.ErrInvalidSessionID
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *implSessionRepository) DeleteSession(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
