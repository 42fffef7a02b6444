package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/intent"
)

func TestSend_RejectsBlankText(t *testing.T) {
	uc, h := newTestUseCase(t, defaultCatalog(t))

	for _, in := range []string{"", "   ", "\n\r\n"} {
		_, err := uc.Send(context.Background(), chat.SendInput{Text: in})
		assert.ErrorIs(t, err, chat.ErrEmptyMessage)
	}
	assert.Empty(t, h.saved)
}

func TestSend_StartsSessionWhenUnknown(t *testing.T) {
	ctx := context.Background()
	uc, h := newTestUseCase(t, defaultCatalog(t))

	out, err := uc.Send(ctx, chat.SendInput{SessionID: "does-not-exist", Text: "hello"})
	require.NoError(t, err)

	assert.NotEqual(t, "does-not-exist", out.Session.ID)
	assert.Equal(t, fixedNow, out.Session.StartedAt)
	assert.Contains(t, h.resets, out.Session.ID)

	stored, err := uc.Session(ctx, out.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.MessagesSeen)
}

func TestSend_PersistsExchange(t *testing.T) {
	ctx := context.Background()
	uc, h := newTestUseCase(t, defaultCatalog(t))

	sess, err := uc.StartSession(ctx, chat.StartSessionInput{})
	require.NoError(t, err)

	first, err := uc.Send(ctx, chat.SendInput{SessionID: sess.ID, Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, chat.SourceLiteral, first.Match.Source)
	assert.Equal(t, "greeting", first.Match.Tag)
	assert.Equal(t, "Hello! Looking for your next book?: ", first.Reply)

	second, err := uc.Send(ctx, chat.SendInput{SessionID: sess.ID, Text: "some\nfantasy"})
	require.NoError(t, err)
	assert.Equal(t, chat.SourceFallback, second.Match.Source)
	assert.Contains(t, second.Reply, "<b>Book:</b> The Way of Kings<br>")

	assert.Equal(t, first.Conversation, second.Conversation)
	assert.Equal(t, "conversation_2024-05-01_10-00-00_"+sess.ID[:8]+".txt", second.Conversation)

	saved := h.saved[second.Conversation]
	require.Len(t, saved, 4)
	assert.Equal(t, chat.Turn{Role: chat.RoleUser, Text: "hi", At: fixedNow}, saved[0])
	assert.Equal(t, "some fantasy", saved[2].Text, "newlines are folded into spaces")
	assert.Equal(t, chat.RoleBot, saved[3].Role)

	assert.Len(t, h.logs[sess.ID], 4)

	stored, err := uc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.MessagesSeen)
	assert.Equal(t, 1, stored.BooksShown)
	assert.Equal(t, 1, stored.PageIndex["fantasy"])
	assert.Len(t, stored.Transcript, 4)
}

func TestSend_AcclaimAcrossTurns(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t, defaultCatalog(t))
	sess, err := uc.StartSession(ctx, chat.StartSessionInput{})
	require.NoError(t, err)

	var replies []string
	for range 3 {
		out, err := uc.Send(ctx, chat.SendInput{SessionID: sess.ID, Text: "fantasy"})
		require.NoError(t, err)
		replies = append(replies, out.Reply)
	}

	assert.False(t, strings.HasPrefix(replies[0], "Certainly!"))
	assert.True(t, strings.HasPrefix(replies[1], "Certainly! in fantasy "))
	assert.False(t, strings.HasPrefix(replies[2], "Certainly!"))
}

func TestSend_ExhaustedCategory(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, intent.Intent{Tag: "gone_girl", Patterns: []string{"gillian"}, Responses: []intent.Response{book("Gone Girl", 4.2)}})
	uc, _ := newTestUseCase(t, c)

	first, err := uc.Send(ctx, chat.SendInput{Text: "gillian flynn"})
	require.NoError(t, err)
	require.False(t, first.Match.Exhausted)

	second, err := uc.Send(ctx, chat.SendInput{SessionID: first.Session.ID, Text: "gillian flynn"})
	require.NoError(t, err)
	assert.True(t, second.Match.Exhausted)
	assert.Equal(t, msgNoMoreBooks, second.Reply)
}

func TestSend_HistoryFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	uc, h := newTestUseCase(t, defaultCatalog(t))
	sess, err := uc.StartSession(ctx, chat.StartSessionInput{})
	require.NoError(t, err)

	h.err = errDisk
	_, err = uc.Send(ctx, chat.SendInput{SessionID: sess.ID, Text: "hi"})
	assert.ErrorIs(t, err, errDisk)

	stored, err := uc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.MessagesSeen, "a failed turn leaves the stored session untouched")
}

func TestSend_FailedSaveLeavesLiveLogUntouched(t *testing.T) {
	ctx := context.Background()
	uc, h := newTestUseCase(t, defaultCatalog(t))
	sess, err := uc.StartSession(ctx, chat.StartSessionInput{})
	require.NoError(t, err)

	h.saveErr = errDisk
	_, err = uc.Send(ctx, chat.SendInput{SessionID: sess.ID, Text: "hi"})
	require.ErrorIs(t, err, errDisk)
	assert.Empty(t, h.logs[sess.ID])

	h.saveErr = nil
	_, err = uc.Send(ctx, chat.SendInput{SessionID: sess.ID, Text: "hi"})
	require.NoError(t, err)

	logged := h.logs[sess.ID]
	require.Len(t, logged, 2, "a retried message is logged once")
	assert.Equal(t, chat.RoleUser, logged[0].Role)
	assert.Equal(t, chat.RoleBot, logged[1].Role)
}

func TestSend_CoverEnrichment(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, intent.Intent{Tag: "horror", Patterns: []string{"horror"}, Responses: []intent.Response{book("Dracula", 4.1)}})

	t.Run("fills missing image without touching the catalog", func(t *testing.T) {
		covers := &mockCovers{url: "https://img/dracula.jpg"}
		uc, _ := newTestUseCase(t, c, WithCoverFinder(covers))

		out, err := uc.Send(ctx, chat.SendInput{Text: "horror"})
		require.NoError(t, err)
		assert.Equal(t, 1, covers.calls)
		assert.Contains(t, out.Reply, "<img src='https://img/dracula.jpg'")
		assert.Empty(t, c.Pool("horror")[0].Book.Image)
	})

	t.Run("lookup failure renders without cover", func(t *testing.T) {
		covers := &mockCovers{err: errDisk}
		uc, _ := newTestUseCase(t, c, WithCoverFinder(covers))

		out, err := uc.Send(ctx, chat.SendInput{Text: "horror"})
		require.NoError(t, err)
		assert.NotContains(t, out.Reply, "<img")
	})
}
