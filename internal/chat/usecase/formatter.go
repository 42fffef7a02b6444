package usecase

import (
	"html"
	"strconv"
	"strings"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/intent"
)

// format renders the matched response as the HTML fragment shown in the chat.
// Book cards advance the session's book counter and may carry the one-time acclaim remark.
func (uc *implUseCase) format(sess *chat.Session, m chat.Match) string {
	switch {
	case m.Exhausted:
		return msgNoMoreBooks
	case m.Response.IsZero():
		return msgNotUnderstood
	case m.Response.IsBook():
		return uc.formatBook(sess, m.Tag, m.Response.Book)
	default:
		return formatText(m.Response.Text)
	}
}

// formatText puts every colon-separated segment on its own line.
func formatText(text string) string {
	parts := strings.Split(text, ":")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, html.EscapeString(strings.TrimSpace(p))+": ")
	}
	return strings.Join(lines, "\n")
}

func (uc *implUseCase) formatBook(sess *chat.Session, tag string, b *intent.Book) string {
	var card strings.Builder
	if b.Image != "" {
		card.WriteString("<img src='" + html.EscapeString(b.Image) + "' alt='Book Cover' style='width: 100px; height:150px;'><br>")
	}
	card.WriteString("<b>Book:</b> " + html.EscapeString(b.Title) + "<br>")
	card.WriteString("<b>Author:</b> " + html.EscapeString(b.Author) + "<br>")
	card.WriteString("<b>Feedback:</b> " + html.EscapeString(b.Feedback) + "<br>")
	card.WriteString("<b>Rate:</b> " + formatRate(b) + "<br>")
	card.WriteString("<b>Published Year:</b> " + html.EscapeString(b.PublishedYear) + "<br>")

	out := card.String()
	category := html.EscapeString(tag)

	sess.BooksShown++
	if sess.BooksShown == 2 && b.Rated && !sess.AcclaimShown {
		out = "Certainly! in " + category + " " + pick(uc.picker, acclaimRemarks) + "<br><br>" + out
		sess.AcclaimShown = true
	}

	return out + "<br>" + pick(uc.picker, continuationPrompts) + " in " + category + "\n"
}

func formatRate(b *intent.Book) string {
	if !b.Rated {
		return "N/A"
	}
	return strconv.FormatFloat(b.Rate, 'f', -1, 64)
}
