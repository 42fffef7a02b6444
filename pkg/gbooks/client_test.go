package gbooks_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"book-chatbot/pkg/gbooks"
)

func newTestServer(t *testing.T, body string, status int, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/volumes") {
			http.NotFound(w, r)
			return
		}
		if q := r.URL.Query().Get("q"); !strings.Contains(q, "intitle:") {
			t.Errorf("unexpected query %q", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCover(t *testing.T) {
	ctx := context.Background()

	t.Run("returns https thumbnail and caches it", func(t *testing.T) {
		var calls atomic.Int32
		srv := newTestServer(t, `{"items":[{"volumeInfo":{"imageLinks":{"thumbnail":"http://books.google.com/dune.jpg"}}}]}`, http.StatusOK, &calls)

		c, err := gbooks.NewClientFromHTTP(ctx, srv.Client(), srv.URL+"/", gbooks.Config{})
		if err != nil {
			t.Fatalf("NewClientFromHTTP: %v", err)
		}

		for range 2 {
			url, err := c.Cover(ctx, "Dune", "Frank Herbert")
			if err != nil {
				t.Fatalf("Cover: %v", err)
			}
			if url != "https://books.google.com/dune.jpg" {
				t.Errorf("url = %q", url)
			}
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 upstream call, got %d", calls.Load())
		}
	})

	t.Run("caches misses", func(t *testing.T) {
		var calls atomic.Int32
		srv := newTestServer(t, `{"totalItems":0}`, http.StatusOK, &calls)

		c, _ := gbooks.NewClientFromHTTP(ctx, srv.Client(), srv.URL+"/", gbooks.Config{CacheSize: 4})
		for range 2 {
			url, err := c.Cover(ctx, "Unknown Title", "")
			if err != nil || url != "" {
				t.Fatalf("expected empty miss, got %q, %v", url, err)
			}
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 upstream call, got %d", calls.Load())
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		var calls atomic.Int32
		srv := newTestServer(t, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError, &calls)

		c, _ := gbooks.NewClientFromHTTP(ctx, srv.Client(), srv.URL+"/", gbooks.Config{})
		for range 2 {
			if _, err := c.Cover(ctx, "Dune", ""); err == nil {
				t.Fatal("expected error")
			}
		}
		if calls.Load() < 2 {
			t.Errorf("expected a retry on each call, got %d", calls.Load())
		}
	})

	t.Run("blank title skips lookup", func(t *testing.T) {
		var calls atomic.Int32
		srv := newTestServer(t, `{}`, http.StatusOK, &calls)

		c, _ := gbooks.NewClientFromHTTP(ctx, srv.Client(), srv.URL+"/", gbooks.Config{})
		if url, err := c.Cover(ctx, "  ", "x"); err != nil || url != "" {
			t.Fatalf("got %q, %v", url, err)
		}
		if calls.Load() != 0 {
			t.Errorf("expected no upstream call")
		}
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("api key", func(t *testing.T) {
		if _, err := gbooks.New(ctx, gbooks.Config{APIKey: "test-key"}); err != nil {
			t.Fatalf("expected success: %v", err)
		}
	})

	t.Run("missing auth", func(t *testing.T) {
		if _, err := gbooks.New(ctx, gbooks.Config{}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("broken credentials file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.json")
		os.WriteFile(path, []byte(`{"broken":true}`), 0o644)

		if _, err := gbooks.New(ctx, gbooks.Config{CredentialsPath: path}); err == nil {
			t.Fatal("expected decoding failure")
		}
	})

	t.Run("missing credentials file", func(t *testing.T) {
		if _, err := gbooks.New(ctx, gbooks.Config{CredentialsPath: "/nonexistent/creds.json"}); err == nil {
			t.Fatal("expected read failure")
		}
	})
}
