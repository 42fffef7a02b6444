package chat

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Sessions
	StartSession(ctx context.Context, input StartSessionInput) (Session, error)
	Session(ctx context.Context, id string) (Session, error)

	// Send matches one user message, formats the reply and persists the exchange.
	Send(ctx context.Context, input SendInput) (SendOutput, error)

	// Saved conversations
	ListConversations(ctx context.Context) ([]ConversationInfo, error)
	LoadConversation(ctx context.Context, name string) (Conversation, error)
}
