package chat

import "errors"

var (
	ErrEmptyMessage         = errors.New("message is empty")
	ErrSessionNotFound      = errors.New("session not found")
	ErrConversationNotFound = errors.New("conversation not found")
)
