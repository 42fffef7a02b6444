package http

import (
	"strings"

	"book-chatbot/internal/chat"
	"book-chatbot/pkg/response"
)

// --- Request DTOs ---

type sendReq struct {
	Message string `json:"message" form:"message"`
}

func (r sendReq) validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return errMessageRequired
	}
	return nil
}

func (r sendReq) toInput(sessionID string) chat.SendInput {
	return chat.SendInput{
		SessionID: sessionID,
		Text:      r.Message,
	}
}

// --- Response DTOs ---

type turnResp struct {
	Role string            `json:"role"`
	Text string            `json:"text"`
	At   response.DateTime `json:"at"`
}

func newTurnResps(turns []chat.Turn) []turnResp {
	out := make([]turnResp, 0, len(turns))
	for _, t := range turns {
		out = append(out, turnResp{Role: string(t.Role), Text: t.Text, At: response.DateTime(t.At)})
	}
	return out
}

type sessionResp struct {
	ID           string            `json:"id"`
	StartedAt    response.DateTime `json:"started_at"`
	UpdatedAt    response.DateTime `json:"updated_at"`
	MessagesSeen int               `json:"messages_seen"`
	BooksShown   int               `json:"books_shown"`
	PageIndex    map[string]int    `json:"page_index"`
	Transcript   []turnResp        `json:"transcript"`
}

func (h *handler) newSessionResp(s chat.Session) sessionResp {
	return sessionResp{
		ID:           s.ID,
		StartedAt:    response.DateTime(s.StartedAt),
		UpdatedAt:    response.DateTime(s.UpdatedAt),
		MessagesSeen: s.MessagesSeen,
		BooksShown:   s.BooksShown,
		PageIndex:    s.PageIndex,
		Transcript:   newTurnResps(s.Transcript),
	}
}

type sendResp struct {
	SessionID    string `json:"session_id"`
	Tag          string `json:"tag,omitempty"`
	Source       string `json:"source"`
	Exhausted    bool   `json:"exhausted"`
	Reply        string `json:"reply"`
	Conversation string `json:"conversation"`
}

func (h *handler) newSendResp(o chat.SendOutput) sendResp {
	return sendResp{
		SessionID:    o.Session.ID,
		Tag:          o.Match.Tag,
		Source:       string(o.Match.Source),
		Exhausted:    o.Match.Exhausted,
		Reply:        o.Reply,
		Conversation: o.Conversation,
	}
}

type conversationInfoResp struct {
	Name    string            `json:"name"`
	ModTime response.DateTime `json:"mod_time"`
	Size    int64             `json:"size"`
}

type conversationListResp struct {
	Conversations []conversationInfoResp `json:"conversations"`
}

func (h *handler) newConversationListResp(list []chat.ConversationInfo) conversationListResp {
	out := make([]conversationInfoResp, 0, len(list))
	for _, c := range list {
		out = append(out, conversationInfoResp{Name: c.Name, ModTime: response.DateTime(c.ModTime), Size: c.Size})
	}
	return conversationListResp{Conversations: out}
}

type conversationResp struct {
	Name  string     `json:"name"`
	Turns []turnResp `json:"turns"`
}

func (h *handler) newConversationResp(c chat.Conversation) conversationResp {
	return conversationResp{Name: c.Name, Turns: newTurnResps(c.Turns)}
}
