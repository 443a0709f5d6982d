// Package sanitize strips markup from data-entry text before it reaches
// the templates. Summaries occasionally arrive with pasted-in HTML.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// Text returns the plain text content of s. Input without markup comes
// back unchanged apart from whitespace normalization at tag boundaries.
func Text(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Keep words from running together when tags are removed.
			if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
		}
	}
}
