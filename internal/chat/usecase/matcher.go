package usecase

import (
	"strings"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/intent"
)

func normalizeInput(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// match resolves input against the literal rules first, then against catalog patterns.
// A fallback hit advances the session's page index for that tag, even once the pool is exhausted.
func (uc *implUseCase) match(c *intent.Catalog, sess *chat.Session, input string) chat.Match {
	input = normalizeInput(input)

	for _, rule := range literalRules {
		if !rule.matches(input) {
			continue
		}
		pool := c.Pool(rule.tag)
		if len(pool) == 0 {
			continue
		}
		return chat.Match{
			Tag:      rule.tag,
			Source:   chat.SourceLiteral,
			Response: pick(uc.picker, pool),
		}
	}

	for _, in := range c.MatchPatterns(input) {
		if !c.HasRated(in.Tag) {
			continue
		}
		key := strings.ToLower(in.Tag)
		if sess.PageIndex == nil {
			sess.PageIndex = make(map[string]int)
		}
		idx := sess.PageIndex[key]
		sess.PageIndex[key] = idx + 1

		resp, ok := c.Page(in.Tag, idx)
		return chat.Match{
			Tag:       in.Tag,
			Source:    chat.SourceFallback,
			Response:  resp,
			Exhausted: !ok,
		}
	}

	return chat.Match{Source: chat.SourceNone}
}
