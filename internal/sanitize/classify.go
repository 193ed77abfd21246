package sanitize

import "strings"

// DefaultSkipKeywords name chores that never need research.
var DefaultSkipKeywords = []string{"book", "call", "pay", "schedule", "buy", "order", "clean", "fix"}

// Classifier decides whether a task is a simple chore.
//
// Matching is plain case-insensitive substring containment, so "bookmark"
// counts as "book". That over-match is accepted.
type Classifier struct {
	keywords []string
}

// NewClassifier returns a Classifier for the given keywords. Blank keywords
// are dropped since they would match every title.
func NewClassifier(keywords []string) Classifier {
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kept = append(kept, k)
		}
	}
	return Classifier{keywords: kept}
}

// IsSimple reports whether title contains any chore keyword.
func (c Classifier) IsSimple(title string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the configured keywords.
func (c Classifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}
