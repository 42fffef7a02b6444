package intent

import (
	"fmt"
	"strings"
)

// Catalog is an immutable, tag-indexed set of intents in their configured order.
type Catalog struct {
	intents  []Intent
	patterns [][]string // lowercased patterns, parallel to intents
	byTag    map[string]int
}

// NewCatalog validates the intents and indexes them by tag.
func NewCatalog(intents []Intent) (*Catalog, error) {
	if len(intents) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		intents:  make([]Intent, len(intents)),
		patterns: make([][]string, len(intents)),
		byTag:    make(map[string]int, len(intents)),
	}
	for i, in := range intents {
		tag := normalizeTag(in.Tag)
		if tag == "" {
			return nil, fmt.Errorf("intent #%d: %w", i, ErrEmptyTag)
		}
		if _, dup := c.byTag[tag]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, in.Tag)
		}
		c.byTag[tag] = i
		c.intents[i] = in

		lowered := make([]string, 0, len(in.Patterns))
		for _, p := range in.Patterns {
			if p = strings.ToLower(p); p != "" {
				lowered = append(lowered, p)
			}
		}
		c.patterns[i] = lowered
	}
	return c, nil
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Len returns the number of intents.
func (c *Catalog) Len() int { return len(c.intents) }

// Intents returns the intents in configured order.
func (c *Catalog) Intents() []Intent {
	out := make([]Intent, len(c.intents))
	copy(out, c.intents)
	return out
}

// Lookup finds an intent by tag, case-insensitively.
func (c *Catalog) Lookup(tag string) (Intent, bool) {
	i, ok := c.byTag[normalizeTag(tag)]
	if !ok {
		return Intent{}, false
	}
	return c.intents[i], true
}

// Pool returns the response pool for a tag, or nil for unknown tags.
func (c *Catalog) Pool(tag string) []Response {
	in, ok := c.Lookup(tag)
	if !ok {
		return nil
	}
	return in.Responses
}

// MatchPatterns returns every intent with a pattern contained in input, scanning intents
// and each intent's patterns in configured order. Input must already be normalized.
func (c *Catalog) MatchPatterns(input string) []Intent {
	var out []Intent
	for i, patterns := range c.patterns {
		for _, p := range patterns {
			if strings.Contains(input, p) {
				out = append(out, c.intents[i])
				break
			}
		}
	}
	return out
}

// HighestRated returns the rated Book with the maximum Rate in the tag's pool.
// Ties go to the earliest entry.
func (c *Catalog) HighestRated(tag string) (Response, bool) {
	pool := c.Pool(tag)
	i := highestRatedIndex(pool)
	if i < 0 {
		return Response{}, false
	}
	return pool[i], true
}

// Next returns the response at index in the tag's pool.
func (c *Catalog) Next(tag string, index int) (Response, bool) {
	pool := c.Pool(tag)
	if index < 0 || index >= len(pool) {
		return Response{}, false
	}
	return pool[index], true
}

// Page returns the index-th recommendation for a tag: the highest-rated entry first,
// then the rest of the pool in configured order. It reports false once the pool is exhausted
// or when the pool has no rated entry to rank by.
func (c *Catalog) Page(tag string, index int) (Response, bool) {
	pool := c.Pool(tag)
	top := highestRatedIndex(pool)
	if top < 0 || index < 0 || index >= len(pool) {
		return Response{}, false
	}
	if index == 0 {
		return pool[top], true
	}
	// skip the ranked entry already shown at index 0
	pos := index - 1
	if pos >= top {
		pos++
	}
	return c.Next(tag, pos)
}

// HasRated reports whether the tag's pool carries at least one rated Book.
func (c *Catalog) HasRated(tag string) bool {
	return highestRatedIndex(c.Pool(tag)) >= 0
}

// Summaries describes every intent in configured order.
func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, 0, len(c.intents))
	for _, in := range c.intents {
		s := Summary{Tag: in.Tag, Patterns: len(in.Patterns)}
		for _, r := range in.Responses {
			switch {
			case r.Rated():
				s.Books++
				s.Rated++
			case r.IsBook():
				s.Books++
			default:
				s.Texts++
			}
		}
		out = append(out, s)
	}
	return out
}

func highestRatedIndex(pool []Response) int {
	best := -1
	for i, r := range pool {
		if !r.Rated() {
			continue
		}
		if best < 0 || r.Book.Rate > pool[best].Book.Rate {
			best = i
		}
	}
	return best
}
