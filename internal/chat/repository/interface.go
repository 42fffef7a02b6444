package repository

import (
	"context"

	"book-chatbot/internal/chat"
)

// SessionRepository stores per-user session state.
// GetSession returns chat.ErrSessionNotFound for unknown or expired IDs.
type SessionRepository interface {
	GetSession(ctx context.Context, id string) (chat.Session, error)
	SaveSession(ctx context.Context, s chat.Session) error
	DeleteSession(ctx context.Context, id string) error
}

// HistoryRepository persists transcripts: an append-only live log per session
// and one saved conversation file per session, rewritten on every save.
type HistoryRepository interface {
	AppendTurns(ctx context.Context, opt AppendTurnsOptions) error
	ResetLog(ctx context.Context, sessionID string) error
	SaveConversation(ctx context.Context, opt SaveConversationOptions) error
	LoadConversation(ctx context.Context, name string) (chat.Conversation, error)
	ListConversations(ctx context.Context) ([]chat.ConversationInfo, error)
}
