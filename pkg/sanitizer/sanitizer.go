// Package sanitizer reduces untrusted markup to plain text.
package sanitizer

import (
	"io"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	spaceRegex   = regexp.MustCompile(`\s+`)
)

// PlainText reduces untrusted input to a single-line plain-text string.
// All markup is removed (script and style bodies included), entities are
// decoded, and runs of whitespace collapse to single spaces.
//
// Examples:
//   - "<p>The <b>bus</b> was late</p>" -> "The bus was late"
//   - "Trains &amp; buses" -> "Trains & buses"
func PlainText(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	cleaned := strictPolicy.Sanitize(input)
	cleaned = html.UnescapeString(cleaned)
	cleaned = spaceRegex.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}

// StripTags removes all HTML/XML tags from the input, keeping only text
// content. It walks the input with an HTML tokenizer and extracts text
// nodes.
//
// Note: this is a content-cleaning helper, not an XSS defense. Use
// PlainText for user-submitted input.
//
// Examples:
//   - "<p>Hello <strong>World</strong></p>" -> "Hello World"
//   - "Plain text" -> "Plain text"
func StripTags(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(input))
	var buf strings.Builder

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			// Parse errors yield an empty string.
			return ""
		}

		if tt == html.TextToken {
			buf.WriteString(tokenizer.Token().Data)
		}
	}

	return strings.TrimSpace(buf.String())
}
