package sanitize

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	// LongSummaryTitle replaces long URL titles that fail to parse. It has
	// no spaces or symbols so it survives every later cleaning step.
	LongSummaryTitle = "LongSummary"

	summaryPrefix = "Summary: "
)

// IsURL reports whether s starts with an http or https scheme.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// PreprocessTitle derives a bounded working title from a raw task title.
// Titles within WorkingTitleLimit are returned as is. Longer URLs collapse to
// their hostname and other long text is truncated.
func PreprocessTitle(title string) string {
	if utf8.RuneCountInString(title) <= WorkingTitleLimit {
		return title
	}

	if IsURL(title) {
		u, err := url.Parse(title)
		if err != nil || u.Hostname() == "" {
			return LongSummaryTitle
		}
		return summaryPrefix + firstRunes(strings.ToLower(u.Hostname()), HostnameLimit)
	}

	return Truncate(title, WorkingTitleLimit)
}

// firstRunes cuts without a marker; the hostname keeps the "Summary:" prefix
// as its signal instead.
func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
