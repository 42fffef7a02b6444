package usecase

import (
	"context"
	"strings"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/chat/repository"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Send answers one user message and persists the exchange.
func (uc *implUseCase) Send(ctx context.Context, input chat.SendInput) (chat.SendOutput, error) {
	text := strings.TrimSpace(lineBreaks.Replace(input.Text))
	if text == "" {
		return chat.SendOutput{}, chat.ErrEmptyMessage
	}

	stored, err := uc.loadOrStart(ctx, input.SessionID)
	if err != nil {
		return chat.SendOutput{}, err
	}
	sess := stored.Clone()

	m := uc.match(uc.catalog.Current(), &sess, text)
	m.Response = uc.withCover(ctx, m.Response)
	reply := uc.format(&sess, m)

	now := uc.now()
	turns := []chat.Turn{
		{Role: chat.RoleUser, Text: text, At: now},
		{Role: chat.RoleBot, Text: reply, At: now},
	}
	sess.Transcript = append(sess.Transcript, turns...)
	sess.MessagesSeen++
	sess.UpdatedAt = now

	name := conversationName(sess)
	if err := uc.history.SaveConversation(ctx, repository.SaveConversationOptions{
		Name:  name,
		Turns: sess.Transcript,
	}); err != nil {
		uc.l.Errorf(ctx, "uc.Send SaveConversation: %v", err)
		return chat.SendOutput{}, err
	}

	// Append-only: one write per exchange, after the conversation save succeeds.
	if err := uc.history.AppendTurns(ctx, repository.AppendTurnsOptions{SessionID: sess.ID, Turns: turns}); err != nil {
		uc.l.Errorf(ctx, "uc.Send AppendTurns: %v", err)
		return chat.SendOutput{}, err
	}

	if err := uc.sessions.SaveSession(ctx, sess); err != nil {
		uc.l.Errorf(ctx, "uc.Send SaveSession: %v", err)
		return chat.SendOutput{}, err
	}

	uc.l.Debugf(ctx, "uc.Send: session=%s source=%s tag=%s exhausted=%t", sess.ID, m.Source, m.Tag, m.Exhausted)
	return chat.SendOutput{
		Session:      sess,
		Match:        m,
		Reply:        reply,
		Conversation: name,
	}, nil
}
