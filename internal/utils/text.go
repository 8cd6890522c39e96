package utils

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanText strips all markup from user-supplied text and trims it.
// bluemonday escapes the surviving text for HTML, so entities are decoded
// back; the API stores plain text and clients escape on render.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// CleanOptional applies CleanText to an optional value. An empty result
// becomes nil.
func CleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := CleanText(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// Length counts characters, not bytes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
