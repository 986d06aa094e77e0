package agent

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const doctype = "<!doctype html>"

var (
	ErrEmptyResponse   = errors.New("model returned no HTML content")
	ErrNotHTMLDocument = errors.New("model response is not a complete HTML document")
	ErrMarkdownFence   = errors.New("model response contains markdown code fences")
)

// ValidateHTML checks that out is a bare, complete HTML document and returns
// it trimmed. Every failing check is reported; use errors.Is to inspect them.
func ValidateHTML(out string) (string, error) {
	doc := strings.TrimSpace(out)
	if doc == "" {
		return "", ErrEmptyResponse
	}

	var errs []error
	if strings.Contains(doc, "```") {
		errs = append(errs, ErrMarkdownFence)
	}
	if !hasDoctype(doc) || !hasHTMLStartTag(doc) {
		errs = append(errs, ErrNotHTMLDocument)
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return doc, nil
}

func hasDoctype(doc string) bool {
	return len(doc) >= len(doctype) && strings.EqualFold(doc[:len(doctype)], doctype)
}

func hasHTMLStartTag(doc string) bool {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Html {
				return true
			}
		}
	}
}

// Title returns the text of the document's <title>, if any.
func Title(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != atom.Title {
				continue
			}
			if z.Next() == html.TextToken {
				return strings.TrimSpace(string(z.Text()))
			}
			return ""
		}
	}
}
