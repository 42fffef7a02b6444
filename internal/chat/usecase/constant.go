package usecase

import (
	"slices"
	"strings"
)

const (
	msgNotUnderstood = "I'm sorry, I didn't understand that."
	msgNoMoreBooks   = "No more books found for this category."

	conversationTimeLayout = "2006-01-02_15-04-05"
	conversationIDLen      = 8
)

var continuationPrompts = []string{
	"Let me know if you want another book",
	"Do you want another suggestion",
	"Would you like to explore more books",
}

var acclaimRemarks = []string{
	"That book is considered one of the best in its category, with glowing reviews and high ratings.",
	"That book has earned a stellar reputation within its category, frequently receiving top ratings and recommendations.",
}

// literalRule answers an input from a fixed tag. Rules with exact phrases need the whole
// normalized input to equal one of them; rules with contains need it as a substring.
type literalRule struct {
	tag      string
	exact    []string
	contains string
}

// literalRules are checked in order before any catalog pattern.
var literalRules = []literalRule{
	{tag: "greeting", exact: []string{"hi", "hello", "hey", "greetings", "good morning", "good afternoon", "good evening"}},
	{tag: "goodbye", exact: []string{"goodbye", "bye", "see you later", "adios", "take care"}},
	{tag: "thanks", exact: []string{"thanks", "thank you", "thanks a lot", "appreciate it", "thank you so much"}},
	{tag: "book_search", exact: []string{"can you recommend a book?", "i'm looking for a book", "recommend me something to read"}},
	{tag: "author_jk_rowling", exact: []string{"can you tell me about author j.k. rowling?", "who is author j.k. rowling?", "recommend books by j.k. rowling"}},
	{tag: "author_stephen_king", exact: []string{"can you tell me about author stephen king?", "who is author stephen king?", "recommend books by stephen king"}},
	{tag: "author_agatha_christie", exact: []string{"can you tell me about author agatha christie?", "who is author agatha christie?", "recommend books by agatha christie"}},

	{tag: "author_dan_brown", contains: "dan brown"},
	{tag: "importance_of_books", contains: "importance of books"},
	{tag: "reading_habit", contains: "reading habit"},
	{tag: "reading_spots", contains: "reading spots"},
	{tag: "books_for_beginners", contains: "book for beginners"},
	{tag: "personal_library", contains: "personal library"},
	{tag: "reading_speed", contains: "reading speed"},
	{tag: "book_brief", contains: "brief of the book"},
	{tag: "writing_a_book", contains: "write a book"},
	{tag: "book_categories", contains: "types of category"},
	{tag: "feeling_bored", contains: "feel boring"},
	{tag: "gone_girl", contains: "gone girl"},
	{tag: "the_hobbit", contains: "the hobbit"},
	{tag: "the_great_gatsby", contains: "the great gatsby"},
	{tag: "book_lovers", contains: "loves reading"},
}

func (r literalRule) matches(input string) bool {
	if r.contains != "" {
		return strings.Contains(input, r.contains)
	}
	return slices.Contains(r.exact, input)
}
