package repository

import "errors"

var (
	ErrInvalidConversationName = errors.New("invalid conversation name")
	ErrInvalidSessionID        = errors.New("invalid session id")
)
