// Package mail sends report emails through the Gmail REST API.
package mail

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"
)

// Message is a two-part (plain text and HTML) email.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
	Charset string
}

// now is replaced in tests.
var now = time.Now

// Bytes renders m as an RFC 2822 multipart/alternative message.
func (m Message) Bytes() ([]byte, error) {
	if m.To == "" {
		return nil, fmt.Errorf("message has no recipient")
	}
	charset := m.Charset
	if charset == "" {
		charset = "UTF-8"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := writePart(mw, "text/plain", charset, m.Text); err != nil {
		return nil, err
	}
	if m.HTML != "" {
		if err := writePart(mw, "text/html", charset, m.HTML); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("MIME-Version: 1.0\r\n")
	if m.From != "" {
		sb.WriteString(fmt.Sprintf("From: %s\r\n", m.From))
	}
	sb.WriteString(fmt.Sprintf("To: %s\r\n", m.To))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode(charset, m.Subject)))
	sb.WriteString(fmt.Sprintf("Date: %s\r\n", now().UTC().Format(time.RFC1123Z)))
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary()))
	sb.WriteString("\r\n")

	return append([]byte(sb.String()), body.Bytes()...), nil
}

func writePart(mw *multipart.Writer, mediaType, charset, content string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", fmt.Sprintf("%s; charset=%q", mediaType, charset))
	header.Set("Content-Transfer-Encoding", "quoted-printable")

	pw, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", mediaType, err)
	}

	qp := quotedprintable.NewWriter(pw)
	if _, err := qp.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to write %s part: %w", mediaType, err)
	}
	return qp.Close()
}
