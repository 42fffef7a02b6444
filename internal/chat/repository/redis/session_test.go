package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-chatbot/internal/chat"
)

func newTestRepo(t *testing.T) (*implSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, "test:", time.Hour), mr
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	started := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	s := chat.Session{
		ID:           "s1",
		StartedAt:    started,
		MessagesSeen: 3,
		BooksShown:   2,
		AcclaimShown: true,
		PageIndex:    map[string]int{"mystery": 1},
		Transcript:   []chat.Turn{{Role: chat.RoleUser, Text: "mystery please", At: started}},
	}
	require.NoError(t, repo.SaveSession(ctx, s))
	assert.True(t, mr.Exists("test:session:s1"))
	assert.Equal(t, time.Hour, mr.TTL("test:session:s1"))

	got, err := repo.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, s.MessagesSeen, got.MessagesSeen)
	assert.Equal(t, s.PageIndex, got.PageIndex)
	assert.True(t, got.AcclaimShown)
	assert.True(t, got.StartedAt.Equal(started))
	require.Len(t, got.Transcript, 1)

	require.NoError(t, repo.DeleteSession(ctx, "s1"))
	_, err = repo.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestSessionRepository_Expired(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	require.NoError(t, repo.SaveSession(ctx, chat.Session{ID: "s2"}))
	mr.FastForward(2 * time.Hour)

	_, err := repo.GetSession(ctx, "s2")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestSessionRepository_NilPageIndex(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)
	require.NoError(t, mr.Set("test:session:s3", `{"id":"s3"}`))

	got, err := repo.GetSession(ctx, "s3")
	require.NoError(t, err)
	assert.NotNil(t, got.PageIndex)
}

func TestSessionRepository_CorruptValue(t *testing.T) {
	repo, mr := newTestRepo(t)
	require.NoError(t, mr.Set("test:session:bad", "not json"))

	_, err := repo.GetSession(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := Connect(context.Background(), Options{Addr: addr})
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = Connect(context.Background(), Options{Addr: addr})
	assert.Error(t, err)
}
