package intent

// Book is a structured recommendation record from the catalog.
type Book struct {
	Title         string
	Author        string
	Feedback      string
	Rate          float64
	Rated         bool // false when the catalog carried no numeric Rate
	PublishedYear string
	Image         string
}

// Response is one entry of an intent's response pool: plain text or a Book.
type Response struct {
	Text string
	Book *Book
}

// IsBook reports whether the response is a structured book record.
func (r Response) IsBook() bool { return r.Book != nil }

// IsZero reports whether the response carries nothing to show.
func (r Response) IsZero() bool { return r.Book == nil && r.Text == "" }

// Rated reports whether the response is a Book with a numeric rating.
func (r Response) Rated() bool { return r.Book != nil && r.Book.Rated }

// Intent is a named category of user request.
type Intent struct {
	Tag       string     `json:"tag" yaml:"tag"`
	Patterns  []string   `json:"patterns" yaml:"patterns"`
	Responses []Response `json:"responses" yaml:"responses"`
}

// Document is the on-disk shape of a catalog file.
type Document struct {
	Intents []Intent `json:"intents" yaml:"intents"`
}

// Summary describes one intent for listings and validation output.
type Summary struct {
	Tag      string
	Patterns int
	Texts    int
	Books    int
	Rated    int
}
