package intent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog field names as they appear in the intents document.
const (
	fieldBook          = "Book"
	fieldAuthor        = "Author"
	fieldFeedback      = "Feedback"
	fieldRate          = "Rate"
	fieldPublishedYear = "Published Year"
	fieldImage         = "Image"
)

type bookRecord struct {
	Book          string          `json:"Book"`
	Author        string          `json:"Author"`
	Feedback      string          `json:"Feedback"`
	Rate          json.RawMessage `json:"Rate"`
	PublishedYear json.RawMessage `json:"Published Year"`
	Image         string          `json:"Image"`
}

// UnmarshalJSON accepts either a JSON string or a book object.
func (r *Response) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidResponse
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Response{Text: s}
		return nil
	case '{':
		var rec bookRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		b := &Book{
			Title:         rec.Book,
			Author:        rec.Author,
			Feedback:      rec.Feedback,
			Image:         rec.Image,
			PublishedYear: jsonScalarString(rec.PublishedYear),
		}
		b.Rate, b.Rated = jsonNumber(rec.Rate)
		*r = Response{Book: b}
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrInvalidResponse, truncate(string(data), 20))
	}
}

// MarshalJSON writes the response back in catalog shape.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Book == nil {
		return json.Marshal(r.Text)
	}
	m := map[string]any{
		fieldBook:          r.Book.Title,
		fieldAuthor:        r.Book.Author,
		fieldFeedback:      r.Book.Feedback,
		fieldPublishedYear: r.Book.PublishedYear,
	}
	if r.Book.Rated {
		m[fieldRate] = r.Book.Rate
	}
	if r.Book.Image != "" {
		m[fieldImage] = r.Book.Image
	}
	return json.Marshal(m)
}

// UnmarshalYAML accepts either a scalar string or a book mapping.
func (r *Response) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*r = Response{Text: value.Value}
		return nil
	case yaml.MappingNode:
		b := &Book{}
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i].Value, value.Content[i+1]
			switch key {
			case fieldBook:
				b.Title = val.Value
			case fieldAuthor:
				b.Author = val.Value
			case fieldFeedback:
				b.Feedback = val.Value
			case fieldImage:
				b.Image = val.Value
			case fieldPublishedYear:
				b.PublishedYear = val.Value
			case fieldRate:
				b.Rate, b.Rated = yamlNumber(val)
			}
		}
		*r = Response{Book: b}
		return nil
	default:
		return fmt.Errorf("%w: line %d", ErrInvalidResponse, value.Line)
	}
}

// jsonNumber parses a raw JSON value as a rating. Strings, booleans and null are not ratings.
func jsonNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func yamlNumber(n *yaml.Node) (float64, bool) {
	if n.Kind != yaml.ScalarNode || (n.ShortTag() != "!!int" && n.ShortTag() != "!!float") {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func jsonScalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
