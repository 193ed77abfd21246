package report

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{
			name: "h2 header",
			md:   "## Main Title",
			want: "<h2>Main Title</h2>",
		},
		{
			name: "h3 header",
			md:   "### Sub Title",
			want: "<h3>Sub Title</h3>",
		},
		{
			name: "bold",
			md:   "**important text**",
			want: "<b>important text</b>",
		},
		{
			name: "several bold spans on one line",
			md:   "**a** and **b**",
			want: "<b>a</b> and <b>b</b>",
		},
		{
			name: "bullet list",
			md:   "* item one\n* item two",
			want: "<ul><li>item one</li><br><li>item two</li></ul>",
		},
		{
			name: "separate bullet blocks merge",
			md:   "* a\ntext\n* b",
			want: "<ul><li>a</li><br>text<br><li>b</li></ul>",
		},
		{
			name: "complex",
			md:   "## Title\n**Bold** text\n* List item",
			want: "<h2>Title</h2><br><b>Bold</b> text<br><ul><li>List item</li></ul>",
		},
		{
			name: "bold inside bullet",
			md:   "* **Step 1:** read",
			want: "<ul><li><b>Step 1:</b> read</li></ul>",
		},
		{
			name: "crlf bullets keep the carriage return outside the item",
			md:   "* a\r\n* b",
			want: "<ul><li>a</li>\r<br><li>b</li></ul>",
		},
		{
			name: "crlf header",
			md:   "## Title\r\ntext",
			want: "<h2>Title</h2>\r<br>text",
		},
		{
			name: "plain text",
			md:   "line one\nline two",
			want: "line one<br>line two",
		},
		{
			name: "empty",
			md:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarkdownToHTML(tt.md); got != tt.want {
				t.Errorf("MarkdownToHTML(%q)\n got  %q\n want %q", tt.md, got, tt.want)
			}
		})
	}
}

func TestMarkdownToHTMLSingleList(t *testing.T) {
	got := MarkdownToHTML("* one\n* two\n\n## Next\n* three")
	if n := strings.Count(got, "<ul>"); n != 1 {
		t.Errorf("expected one <ul>, got %d in %q", n, got)
	}
	if n := strings.Count(got, "<li>"); n != 3 {
		t.Errorf("expected three <li>, got %d in %q", n, got)
	}
}
