package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"book-chatbot/internal/chat"
)

// StartSession creates a fresh session and clears its live log. A previous session, when given, is dropped.
func (uc *implUseCase) StartSession(ctx context.Context, input chat.StartSessionInput) (chat.Session, error) {
	if input.PreviousID != "" {
		if err := uc.sessions.DeleteSession(ctx, input.PreviousID); err != nil {
			uc.l.Warnf(ctx, "uc.StartSession DeleteSession %s: %v", input.PreviousID, err)
		}
	}

	now := uc.now()
	sess := chat.Session{
		ID:        uuid.NewString(),
		StartedAt: now,
		UpdatedAt: now,
		PageIndex: make(map[string]int),
	}

	if err := uc.history.ResetLog(ctx, sess.ID); err != nil {
		uc.l.Errorf(ctx, "uc.StartSession ResetLog: %v", err)
		return chat.Session{}, err
	}
	if err := uc.sessions.SaveSession(ctx, sess); err != nil {
		uc.l.Errorf(ctx, "uc.StartSession SaveSession: %v", err)
		return chat.Session{}, err
	}

	uc.l.Infof(ctx, "uc.StartSession: started session %s", sess.ID)
	return sess, nil
}

// Session returns the stored session, or chat.ErrSessionNotFound.
func (uc *implUseCase) Session(ctx context.Context, id string) (chat.Session, error) {
	if id == "" {
		return chat.Session{}, chat.ErrSessionNotFound
	}
	sess, err := uc.sessions.GetSession(ctx, id)
	if err != nil {
		if !errors.Is(err, chat.ErrSessionNotFound) {
			uc.l.Errorf(ctx, "uc.Session GetSession: %v", err)
		}
		return chat.Session{}, err
	}
	return sess, nil
}

// loadOrStart returns the session for id, starting a new one when it is unknown or expired.
func (uc *implUseCase) loadOrStart(ctx context.Context, id string) (chat.Session, error) {
	sess, err := uc.Session(ctx, id)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, chat.ErrSessionNotFound) {
		return chat.Session{}, err
	}
	return uc.StartSession(ctx, chat.StartSessionInput{})
}
