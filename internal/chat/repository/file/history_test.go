package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/chat/repository"
	"book-chatbot/pkg/log"
)

func newTestRepo(t *testing.T) (*implHistoryRepository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "chat_history")
	repo, err := New(dir, log.NewNop())
	require.NoError(t, err)
	return repo, dir
}

func TestNew_EnsuresDirectories(t *testing.T) {
	_, dir := newTestRepo(t)
	st, err := os.Stat(filepath.Join(dir, sessionsDir))
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestAppendTurns_AndReset(t *testing.T) {
	ctx := context.Background()
	repo, dir := newTestRepo(t)

	require.NoError(t, repo.AppendTurns(ctx, repository.AppendTurnsOptions{
		SessionID: "s1",
		Turns: []chat.Turn{
			{Role: chat.RoleUser, Text: "<b>hi</b>"},
			{Role: chat.RoleBot, Text: "Hello: \nthere: "},
		},
	}))

	path := filepath.Join(dir, sessionsDir, "session_s1.html")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "You: &lt;b&gt;hi&lt;/b&gt;", "user text must be escaped")
	assert.Contains(t, content, "Hello: <br>there: ")
	assert.Contains(t, content, userColor)
	assert.Contains(t, content, botColor)
	assert.Less(t, strings.Index(content, "You:"), strings.Index(content, "Hello"))

	require.NoError(t, repo.ResetLog(ctx, "s1"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestAppendTurns_RejectsBadSessionID(t *testing.T) {
	repo, _ := newTestRepo(t)
	for _, id := range []string{"", "../escape", `a\b`} {
		err := repo.AppendTurns(context.Background(), repository.AppendTurnsOptions{SessionID: id})
		assert.ErrorIs(t, err, repository.ErrInvalidSessionID, "id %q", id)
	}
}

func TestConversation_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, dir := newTestRepo(t)

	name := "conversation_2024-05-01_10-00-00_abcd1234.txt"
	turns := []chat.Turn{
		{Role: chat.RoleUser, Text: "hi"},
		{Role: chat.RoleBot, Text: "Hello!: "},
		{Role: chat.RoleUser, Text: "fantasy please"},
		{Role: chat.RoleBot, Text: "<b>Book:</b> Dune<br><br>Do you want another suggestion in fantasy\n"},
		{Role: chat.RoleUser, Text: "categories"},
		{Role: chat.RoleBot, Text: "Fantasy: \nMystery: "},
	}
	require.NoError(t, repo.SaveConversation(ctx, repository.SaveConversationOptions{Name: name, Turns: turns}))

	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "You: hi\n"))

	conv, err := repo.LoadConversation(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, name, conv.Name)
	require.Len(t, conv.Turns, len(turns))
	for i, want := range turns {
		assert.Equal(t, want.Role, conv.Turns[i].Role, "turn %d", i)
		assert.Equal(t, strings.TrimRight(want.Text, "\n"), conv.Turns[i].Text, "turn %d", i)
	}

	t.Run("save overwrites wholesale", func(t *testing.T) {
		require.NoError(t, repo.SaveConversation(ctx, repository.SaveConversationOptions{
			Name:  name,
			Turns: turns[:2],
		}))
		conv, err := repo.LoadConversation(ctx, name)
		require.NoError(t, err)
		assert.Len(t, conv.Turns, 2)
	})
}

func TestLoadConversation_NotFound(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	for _, name := range []string{
		"conversation_missing.txt",
		"../secrets.txt",
		"notes.txt",
		"conversation_../../x.txt",
	} {
		_, err := repo.LoadConversation(ctx, name)
		assert.ErrorIs(t, err, chat.ErrConversationNotFound, "name %q", name)
	}
}

func TestListConversations(t *testing.T) {
	ctx := context.Background()
	repo, dir := newTestRepo(t)

	older := "conversation_2024-01-01_00-00-00_aaaa.txt"
	newer := "conversation_2024-02-01_00-00-00_bbbb.txt"
	for _, n := range []string{older, newer} {
		require.NoError(t, repo.SaveConversation(ctx, repository.SaveConversationOptions{
			Name:  n,
			Turns: []chat.Turn{{Role: chat.RoleUser, Text: "hi"}},
		}))
	}
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, older), past, past))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	list, err := repo.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].Name)
	assert.Equal(t, older, list[1].Name)
	assert.Positive(t, list[0].Size)
}
