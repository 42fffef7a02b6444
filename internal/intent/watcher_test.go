package intent_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-chatbot/internal/intent"
	"book-chatbot/pkg/log"
)

func TestWatcher_Reload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "intents.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonCatalog), 0o644))

	reloaded := 0
	w, err := intent.NewWatcher(path, log.NewNop(), intent.WithOnReload(func(*intent.Catalog) { reloaded++ }))
	require.NoError(t, err)
	assert.Equal(t, 2, w.Current().Len())

	t.Run("unchanged file is a no-op", func(t *testing.T) {
		w.Reload(ctx)
		assert.Equal(t, 0, reloaded)
	})

	t.Run("broken file keeps previous catalog", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"intents": [`), 0o644))
		w.Reload(ctx)
		assert.Equal(t, 2, w.Current().Len())
		assert.Equal(t, 0, reloaded)
	})

	t.Run("valid change swaps catalog", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"intents": [{"tag": "only", "responses": ["x"]}]}`), 0o644))
		w.Reload(ctx)
		assert.Equal(t, 1, w.Current().Len())
		assert.Equal(t, 1, reloaded)
	})
}

func TestWatcher_ConcurrentReloadSwapsOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "intents.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonCatalog), 0o644))

	var reloaded atomic.Int32
	w, err := intent.NewWatcher(path, log.NewNop(),
		intent.WithDebounce(10*time.Millisecond),
		intent.WithOnReload(func(*intent.Catalog) { reloaded.Add(1) }),
	)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"intents": [{"tag": "only", "responses": ["x"]}]}`), 0o644))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Reload(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, w.Current().Len())
	// the running loop may pick the same write up afterwards; identical content never swaps twice
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), reloaded.Load())
}

func TestWatcher_StartPicksUpWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "intents.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonCatalog), 0o644))

	w, err := intent.NewWatcher(path, log.NewNop(), intent.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"intents": [{"tag": "only", "responses": ["x"]}]}`), 0o644))

	assert.Eventually(t, func() bool {
		return w.Current().Len() == 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestNewWatcher_BadFile(t *testing.T) {
	_, err := intent.NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), log.NewNop())
	assert.Error(t, err)
}
