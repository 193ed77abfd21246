// Package report turns worker output into the research email.
package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/mcao2/tasks-research/internal/agent"
	"github.com/mcao2/tasks-research/internal/mail"
	"github.com/mcao2/tasks-research/internal/sanitize"
)

const subjectPrefix = "Research: "

// Charset is declared on the HTML part of every report.
const Charset = "UTF-8"

// Subject builds the email subject from the original task title. Only the
// first sanitize.SubjectLimit characters of the title are kept.
func Subject(title string) string {
	return sanitize.Clean(subjectPrefix + shortTitle(title))
}

func shortTitle(title string) string {
	return sanitize.Truncate(title, sanitize.SubjectLimit)
}

var emailTemplate = template.Must(template.New("report").Parse(`
<div style="font-family: 'Helvetica', sans-serif; max-width: 650px; color: #333;">
  <div style="background:#4285f4; padding:15px; border-radius:5px 5px 0 0; color:white;">
    <h2 style="margin:0; font-size:18px;">Research Bot: {{.Heading}}</h2>
  </div>

  <div style="background:#f1f3f4; padding:12px; font-size:12px; color:#555; border-bottom:1px solid #ddd;">
    <strong>Strategy:</strong> {{.Reasoning}}<br>
    <strong>Role:</strong> {{.Role}}
  </div>

  <div style="padding:20px; border:1px solid #ddd; border-top:none; background:white;">
    {{.Body}}
  </div>

  <p style="font-size: 11px; color: #999; text-align: center; margin-top: 20px;">
    Automated by tasks-research
  </p>
</div>
`))

type emailData struct {
	Heading   string
	Reasoning string
	Role      string
	Body      template.HTML
}

// Build assembles the report email for a task. The plain-text part is the
// cleaned raw output; the HTML part renders the unsanitized Markdown.
func Build(to, title, raw string, d agent.Decision) (mail.Message, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, emailData{
		Heading:   sanitize.Clean(shortTitle(title)),
		Reasoning: d.Reasoning,
		Role:      d.WorkerRole,
		Body:      template.HTML(MarkdownToHTML(raw)),
	})
	if err != nil {
		return mail.Message{}, fmt.Errorf("failed to render report: %w", err)
	}

	return mail.Message{
		To:      to,
		Subject: Subject(title),
		Text:    sanitize.CleanText(raw),
		HTML:    buf.String(),
		Charset: Charset,
	}, nil
}
