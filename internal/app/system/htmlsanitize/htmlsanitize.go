// Package htmlsanitize cleans user-supplied text before it is stored.
//
// Descriptions may carry a small set of formatting markup. Names, titles,
// and categories are reduced to plain text.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps safe formatting markup and removes scripts, event handlers,
// and dangerous URLs.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(ugc.Sanitize(s))
}

// PlainText strips every tag and returns the remaining text with entities
// decoded, so "R&D" stays "R&D" rather than "R&amp;D".
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
