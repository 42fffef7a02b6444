package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/chat/repository"
	"book-chatbot/internal/chat/repository/memory"
	"book-chatbot/internal/intent"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// fixedPicker always returns the same index, clamped to n.
type fixedPicker int

func (p fixedPicker) Intn(n int) int {
	if int(p) >= n {
		return n - 1
	}
	return int(p)
}

// mockHistory records turns and saved conversations in memory.
type mockHistory struct {
	mu     sync.Mutex
	logs   map[string][]chat.Turn
	saved  map[string][]chat.Turn
	resets []string
	err    error
	// saveErr fails SaveConversation only.
	saveErr error
}

func newMockHistory() *mockHistory {
	return &mockHistory{logs: map[string][]chat.Turn{}, saved: map[string][]chat.Turn{}}
}

func (m *mockHistory) AppendTurns(ctx context.Context, opt repository.AppendTurnsOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.logs[opt.SessionID] = append(m.logs[opt.SessionID], opt.Turns...)
	return nil
}

func (m *mockHistory) ResetLog(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, sessionID)
	delete(m.logs, sessionID)
	return nil
}

func (m *mockHistory) SaveConversation(ctx context.Context, opt repository.SaveConversationOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[opt.Name] = append([]chat.Turn(nil), opt.Turns...)
	return nil
}

func (m *mockHistory) LoadConversation(ctx context.Context, name string) (chat.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	turns, ok := m.saved[name]
	if !ok {
		return chat.Conversation{}, chat.ErrConversationNotFound
	}
	return chat.Conversation{Name: name, Turns: turns}, nil
}

func (m *mockHistory) ListConversations(ctx context.Context) ([]chat.ConversationInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]chat.ConversationInfo, 0, len(m.saved))
	for name := range m.saved {
		out = append(out, chat.ConversationInfo{Name: name})
	}
	return out, nil
}

// mockCovers returns a fixed URL and counts calls.
type mockCovers struct {
	url   string
	err   error
	calls int
}

func (m *mockCovers) Cover(ctx context.Context, title, author string) (string, error) {
	m.calls++
	return m.url, m.err
}

var errDisk = errors.New("disk full")

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func text(s string) intent.Response { return intent.Response{Text: s} }

func book(title string, rate float64) intent.Response {
	return intent.Response{Book: &intent.Book{Title: title, Author: "A", Feedback: "F", Rate: rate, Rated: true, PublishedYear: "2000"}}
}

func unrated(title string) intent.Response {
	return intent.Response{Book: &intent.Book{Title: title, Author: "A", Feedback: "F", PublishedYear: "2000"}}
}

func newTestCatalog(t *testing.T, intents ...intent.Intent) *intent.Catalog {
	t.Helper()
	c, err := intent.NewCatalog(intents)
	require.NoError(t, err)
	return c
}

func defaultCatalog(t *testing.T) *intent.Catalog {
	t.Helper()
	c, err := intent.LoadFile("../../../config/intents.json")
	require.NoError(t, err)
	return c
}

func newTestUseCase(t *testing.T, c *intent.Catalog, opts ...Option) (*implUseCase, *mockHistory) {
	t.Helper()
	h := newMockHistory()
	opts = append([]Option{WithPicker(fixedPicker(0)), WithClock(func() time.Time { return fixedNow })}, opts...)
	uc := New(&mockLogger{}, intent.NewStatic(c), memory.New(100, time.Hour), h, opts...)
	return uc, h
}
