package app

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxBodySnippet = 512

// summarizeBody reduces an error response body to something loggable. HTML
// error pages are reduced to their title or first heading; anything else is
// trimmed to a snippet.
func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "<empty>"
	}

	if looksLikeHTML(trimmed) {
		if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
			if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
				return title
			}
			if heading := strings.TrimSpace(doc.Find("h1").First().Text()); heading != "" {
				return heading
			}
		}
	}

	if len(trimmed) > maxBodySnippet {
		return trimmed[:maxBodySnippet] + "..."
	}
	return trimmed
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html")
}
