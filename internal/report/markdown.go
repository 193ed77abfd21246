package report

import (
	"regexp"
	"strings"
)

var (
	boldPattern     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletPattern   = regexp.MustCompile(`(?im)^\* ([^\r\n]*)`)
	listRunPattern  = regexp.MustCompile(`(?s)<li>.*</li>`)
	h3Pattern       = regexp.MustCompile(`(?im)^### ([^\r\n]*)`)
	h2Pattern       = regexp.MustCompile(`(?im)^## ([^\r\n]*)`)
	newlineReplacer = strings.NewReplacer("\n", "<br>")
)

// MarkdownToHTML converts the small Markdown subset the worker is asked to
// produce: bold, "* " bullets, "##"/"###" headers and line breaks.
//
// The rules run in a fixed order over each other's output. Everything from
// the first <li> to the last </li> is wrapped in a single <ul>, so separate
// bullet blocks merge into one list.
func MarkdownToHTML(md string) string {
	out := boldPattern.ReplaceAllString(md, "<b>${1}</b>")
	out = bulletPattern.ReplaceAllString(out, "<li>${1}</li>")
	out = wrapFirstListRun(out)
	out = h3Pattern.ReplaceAllString(out, "<h3>${1}</h3>")
	out = h2Pattern.ReplaceAllString(out, "<h2>${1}</h2>")
	return newlineReplacer.Replace(out)
}

func wrapFirstListRun(s string) string {
	loc := listRunPattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + "<ul>" + s[loc[0]:loc[1]] + "</ul>" + s[loc[1]:]
}
