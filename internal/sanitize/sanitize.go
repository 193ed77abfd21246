// Package sanitize holds the text rules that keep task titles and email
// subjects acceptable to the Tasks and Gmail APIs.
package sanitize

import (
	"strings"
	"unicode/utf8"
)

// Limits applied along the pipeline. Each call site passes its limit
// explicitly to Truncate.
const (
	WorkingTitleLimit = 80
	HostnameLimit     = 50
	TaskTitleLimit    = 50
	// SubjectLimit is kept tiny on purpose: longer subjects were rejected
	// by the mail API.
	SubjectLimit = 5
)

// Ellipsis marks a truncated value.
const Ellipsis = "..."

// Clean removes every rune outside printable 7-bit ASCII (0x20-0x7E) and
// trims the result. Use it for titles and subjects.
func Clean(s string) string {
	return keep(s, isPrintable)
}

// CleanText is Clean for multi-line bodies: tabs and line breaks survive.
func CleanText(s string) string {
	return keep(s, func(r rune) bool {
		return r == '\t' || r == '\n' || r == '\r' || isPrintable(r)
	})
}

func keep(s string, kept func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if kept(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func isPrintable(r rune) bool {
	return r >= 0x20 && r <= 0x7E
}

// Truncate returns the first limit runes of s followed by Ellipsis, or s
// unchanged when it already fits.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + Ellipsis
}
