package gbooks

import "time"

// Config configures the Google Books client.
// APIKey takes precedence over CredentialsPath when both are set.
type Config struct {
	APIKey          string
	CredentialsPath string
	CacheSize       int
	Timeout         time.Duration
}

const (
	defaultCacheSize = 512
	defaultTimeout   = 3 * time.Second
)
