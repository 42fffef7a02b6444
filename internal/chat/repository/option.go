package repository

import "book-chatbot/internal/chat"

// AppendTurnsOptions holds the turns of one exchange for the live session log.
type AppendTurnsOptions struct {
	SessionID string
	Turns     []chat.Turn
}

// SaveConversationOptions holds a full transcript to write under Name.
type SaveConversationOptions struct {
	Name  string
	Turns []chat.Turn
}
