package gbooks

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/books/v1"
	"google.golang.org/api/option"
)

// Client looks up book covers through the Google Books volumes API.
type Client struct {
	service *books.Service
	cache   *lru.Cache[string, string]
	timeout time.Duration
}

// New builds a client from cfg, authenticating with an API key or a service account file.
func New(ctx context.Context, cfg Config) (*Client, error) {
	switch {
	case cfg.APIKey != "":
		return newClient(ctx, cfg, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsPath != "":
		data, err := os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		return NewClientFromCredentialsJSON(ctx, data, cfg)
	default:
		return nil, fmt.Errorf("google books: api key or credentials path is required")
	}
}

// NewClientFromCredentialsJSON creates a client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, cfg Config) (*Client, error) {
	jwt, err := google.JWTConfigFromJSON(credentialsJSON, books.BooksScope)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}
	return newClient(ctx, cfg, option.WithTokenSource(jwt.TokenSource(ctx)))
}

// NewClientFromHTTP creates a client from a pre-configured HTTP client and API endpoint.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client, endpoint string, cfg Config) (*Client, error) {
	return newClient(ctx, cfg, option.WithHTTPClient(httpClient), option.WithEndpoint(endpoint))
}

func newClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	svc, err := books.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create books service: %w", err)
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cover cache: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{service: svc, cache: cache, timeout: timeout}, nil
}

// Cover returns the thumbnail URL of the best volume match, or "" when none has one.
// Hits and misses are cached; failed requests are not.
func (c *Client) Cover(ctx context.Context, title, author string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", nil
	}
	key := cacheKey(title, author)
	if url, ok := c.cache.Get(key); ok {
		return url, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.service.Volumes.List(query(title, author)).
		MaxResults(1).
		PrintType("books").
		Fields("items(volumeInfo/imageLinks)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to search volumes: %w", err)
	}

	url := thumbnail(res)
	c.cache.Add(key, url)
	return url, nil
}

func cacheKey(title, author string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(author))
}

func query(title, author string) string {
	q := "intitle:" + strings.TrimSpace(title)
	if a := strings.TrimSpace(author); a != "" {
		q += " inauthor:" + a
	}
	return q
}

func thumbnail(res *books.Volumes) string {
	if res == nil {
		return ""
	}
	for _, v := range res.Items {
		if v == nil || v.VolumeInfo == nil || v.VolumeInfo.ImageLinks == nil {
			continue
		}
		links := v.VolumeInfo.ImageLinks
		url := links.Thumbnail
		if url == "" {
			url = links.SmallThumbnail
		}
		if url != "" {
			return strings.Replace(url, "http://", "https://", 1)
		}
	}
	return ""
}
