package usecase

import (
	"context"
	"errors"

	"book-chatbot/internal/chat"
)

// ListConversations returns saved conversations, newest first.
func (uc *implUseCase) ListConversations(ctx context.Context) ([]chat.ConversationInfo, error) {
	list, err := uc.history.ListConversations(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListConversations: %v", err)
		return nil, err
	}
	return list, nil
}

// LoadConversation reads back a saved conversation by file name.
func (uc *implUseCase) LoadConversation(ctx context.Context, name string) (chat.Conversation, error) {
	conv, err := uc.history.LoadConversation(ctx, name)
	if err != nil {
		if !errors.Is(err, chat.ErrConversationNotFound) {
			uc.l.Errorf(ctx, "uc.LoadConversation %s: %v", name, err)
		}
		return chat.Conversation{}, err
	}
	return conv, nil
}
