package usecase

import (
	"context"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/intent"
)

// conversationName names the saved transcript after the session start time and a short id.
func conversationName(sess chat.Session) string {
	id := sess.ID
	if len(id) > conversationIDLen {
		id = id[:conversationIDLen]
	}
	return "conversation_" + sess.StartedAt.Format(conversationTimeLayout) + "_" + id + ".txt"
}

// withCover fills a missing Image from the cover finder. The catalog's Book is never mutated.
func (uc *implUseCase) withCover(ctx context.Context, r intent.Response) intent.Response {
	if uc.covers == nil || !r.IsBook() || r.Book.Image != "" {
		return r
	}
	url, err := uc.covers.Cover(ctx, r.Book.Title, r.Book.Author)
	if err != nil {
		uc.l.Warnf(ctx, "uc.withCover %q: %v", r.Book.Title, err)
		return r
	}
	if url == "" {
		return r
	}
	b := *r.Book
	b.Image = url
	return intent.Response{Text: r.Text, Book: &b}
}
