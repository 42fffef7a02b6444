// Command backfill-covers fills the Image field of catalog books that have none,
// using the Google Books volumes API, and writes the catalog back as JSON.
//
// Usage:
//
//	go run ./scripts/backfill-covers <catalog.json> [output.json]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"book-chatbot/config"
	"book-chatbot/internal/intent"
	"book-chatbot/pkg/gbooks"
	"book-chatbot/pkg/log"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./scripts/backfill-covers <catalog.json> [output.json]")
		fmt.Println("Example: go run ./scripts/backfill-covers config/intents.json")
		os.Exit(1)
	}
	in := os.Args[1]
	out := in
	if len(os.Args) > 2 {
		out = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		Encoding:     "console",
		ColorEnabled: true,
	})

	ctx := context.Background()

	client, err := gbooks.New(ctx, gbooks.Config{
		APIKey:          cfg.GoogleBooks.APIKey,
		CredentialsPath: cfg.GoogleBooks.CredentialsPath,
		CacheSize:       cfg.GoogleBooks.CacheSize,
		Timeout:         cfg.GoogleBooks.Timeout,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Google Books: %v", err)
	}

	doc, err := readDocument(in)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read catalog: %v", err)
	}

	filled, missing := backfill(ctx, client, logger, &doc)
	logger.Infof(ctx, "Backfill complete: %d covers added, %d books still without a cover", filled, missing)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Fatalf(ctx, "Failed to encode catalog: %v", err)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		logger.Fatalf(ctx, "Failed to write %s: %v", out, err)
	}
	logger.Infof(ctx, "Wrote %s", out)
}

func readDocument(path string) (intent.Document, error) {
	var doc intent.Document
	format, err := intent.FormatFromPath(path)
	if err != nil {
		return doc, err
	}
	if format != intent.FormatJSON {
		return doc, fmt.Errorf("only JSON catalogs can be rewritten, got %s", format)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, err
	}
	// validate the same way the server would
	if _, err := intent.NewCatalog(doc.Intents); err != nil {
		return doc, err
	}
	return doc, nil
}

type coverFinder interface {
	Cover(ctx context.Context, title, author string) (string, error)
}

// backfill sets Image on every book that lacks one and reports how many were filled and how many remain.
func backfill(ctx context.Context, covers coverFinder, l log.Logger, doc *intent.Document) (filled, missing int) {
	for i := range doc.Intents {
		for j, r := range doc.Intents[i].Responses {
			if !r.IsBook() || r.Book.Image != "" {
				continue
			}
			url, err := covers.Cover(ctx, r.Book.Title, r.Book.Author)
			if err != nil {
				l.Errorf(ctx, "Cover lookup failed for %q: %v", r.Book.Title, err)
				missing++
				continue
			}
			if url == "" {
				l.Warnf(ctx, "No cover found for %q", r.Book.Title)
				missing++
				continue
			}
			b := *r.Book
			b.Image = url
			doc.Intents[i].Responses[j] = intent.Response{Book: &b}
			filled++
		}
	}
	return filled, missing
}
