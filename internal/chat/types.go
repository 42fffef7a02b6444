package chat

import (
	"time"

	"book-chatbot/internal/intent"
)

// --- Session Domain Model ---

// Role identifies who produced a turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one message in a transcript. Bot text is an HTML fragment.
type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Session is the per-user conversation state. Handlers take a Session and return the updated one.
type Session struct {
	ID           string         `json:"id"`
	StartedAt    time.Time      `json:"started_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	MessagesSeen int            `json:"messages_seen"`
	BooksShown   int            `json:"books_shown"`
	PageIndex    map[string]int `json:"page_index"`
	AcclaimShown bool           `json:"acclaim_shown"`
	Transcript   []Turn         `json:"transcript"`
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (s Session) Clone() Session {
	out := s
	out.PageIndex = make(map[string]int, len(s.PageIndex))
	for k, v := range s.PageIndex {
		out.PageIndex[k] = v
	}
	out.Transcript = append([]Turn(nil), s.Transcript...)
	return out
}

// --- Matching ---

// Source tells which matching stage produced a reply.
type Source string

const (
	SourceLiteral  Source = "literal"
	SourceFallback Source = "fallback"
	SourceNone     Source = "none"
)

// Match is the outcome of matching one input against the catalog.
type Match struct {
	Tag       string
	Source    Source
	Response  intent.Response
	Exhausted bool // fallback tag had no more books to page through
}

// --- Conversations ---

// ConversationInfo describes a saved conversation file.
type ConversationInfo struct {
	Name    string
	ModTime time.Time
	Size    int64
}

// Conversation is a saved transcript loaded back from disk.
type Conversation struct {
	Name  string
	Turns []Turn
}

// --- UseCase Inputs ---

type SendInput struct {
	SessionID string
	Text      string
}

type StartSessionInput struct {
	PreviousID string
}

// --- UseCase Outputs ---

type SendOutput struct {
	Session      Session
	Match        Match
	Reply        string
	Conversation string
}
