package app

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"book-chatbot/config"
	"book-chatbot/internal/chat"
	"book-chatbot/internal/chat/repository"
	historyFile "book-chatbot/internal/chat/repository/file"
	sessionMemory "book-chatbot/internal/chat/repository/memory"
	sessionRedis "book-chatbot/internal/chat/repository/redis"
	"book-chatbot/internal/chat/usecase"
	"book-chatbot/internal/intent"
	"book-chatbot/pkg/gbooks"
	"book-chatbot/pkg/log"
)

// App is the wired chat service shared by the API server and the CLI.
type App struct {
	UseCase   chat.UseCase
	Catalog   intent.Provider
	Readiness map[string]func(ctx context.Context) error

	closers []func() error
}

// Build wires the catalog, session store, history and optional cover lookup from cfg.
func Build(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	a := &App{Readiness: map[string]func(ctx context.Context) error{}}

	// 1. Intent catalog
	catalog, err := a.catalog(ctx, cfg.Intents, l)
	if err != nil {
		return nil, err
	}
	a.Catalog = catalog
	a.Readiness["catalog"] = func(ctx context.Context) error {
		if catalog.Current() == nil {
			return errors.New("catalog not loaded")
		}
		return nil
	}

	// 2. Session store
	sessions, err := a.sessions(ctx, cfg, l)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 3. Conversation history
	history, err := historyFile.New(cfg.History.Dir, l)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 4. Cover enrichment (optional)
	opts := []usecase.Option{}
	if cfg.GoogleBooks.Enabled {
		books, err := gbooks.New(ctx, gbooks.Config{
			APIKey:          cfg.GoogleBooks.APIKey,
			CredentialsPath: cfg.GoogleBooks.CredentialsPath,
			CacheSize:       cfg.GoogleBooks.CacheSize,
			Timeout:         cfg.GoogleBooks.Timeout,
		})
		if err != nil {
			l.Warnf(ctx, "Google Books not available (optional): %v", err)
		} else {
			opts = append(opts, usecase.WithCoverFinder(books))
			l.Info(ctx, "Google Books cover lookup enabled")
		}
	}

	a.UseCase = usecase.New(l, catalog, sessions, history, opts...)
	return a, nil
}

func (a *App) catalog(ctx context.Context, cfg config.IntentsConfig, l log.Logger) (intent.Provider, error) {
	if !cfg.Watch {
		c, err := intent.LoadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("load intents %s: %w", cfg.Path, err)
		}
		l.Infof(ctx, "Loaded %d intents from %s", c.Len(), cfg.Path)
		return intent.NewStatic(c), nil
	}

	w, err := intent.NewWatcher(cfg.Path, l, intent.WithOnReload(func(c *intent.Catalog) {
		l.Infof(context.Background(), "Reloaded %d intents from %s", c.Len(), cfg.Path)
	}))
	if err != nil {
		return nil, fmt.Errorf("load intents %s: %w", cfg.Path, err)
	}
	if err := w.Start(ctx); err != nil {
		return nil, fmt.Errorf("watch intents: %w", err)
	}
	a.closers = append(a.closers, w.Stop)
	l.Infof(ctx, "Loaded %d intents from %s (watching for changes)", w.Current().Len(), cfg.Path)
	return w, nil
}

func (a *App) sessions(ctx context.Context, cfg *config.Config, l log.Logger) (repository.SessionRepository, error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		l.Infof(ctx, "Session store: memory (max %d, ttl %s)", cfg.Session.MaxEntries, cfg.Session.TTL)
		return sessionMemory.New(cfg.Session.MaxEntries, cfg.Session.TTL), nil
	}

	client, err := sessionRedis.Connect(ctx, sessionRedis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	a.Readiness["session_store"] = func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
	l.Infof(ctx, "Session store: redis at %s", cfg.Redis.Addr)
	return sessionRedis.New(client, cfg.Redis.Prefix, cfg.Session.TTL), nil
}

// Close releases watchers and connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && !errors.Is(err, goredis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
