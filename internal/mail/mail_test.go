package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	netmail "net/mail"
	"strings"
	"testing"
	"time"
)

func parseMessage(t *testing.T, raw []byte) (*netmail.Message, map[string]string) {
	t.Helper()
	msg, err := netmail.ReadMessage(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("bad content type: %v", err)
	}
	if mediaType != "multipart/alternative" {
		t.Fatalf("unexpected media type %q", mediaType)
	}

	parts := map[string]string{}
	mr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read part: %v", err)
		}
		// multipart.Reader decodes quoted-printable transparently.
		data, err := io.ReadAll(p)
		if err != nil {
			t.Fatalf("failed to read part body: %v", err)
		}
		partType, _, _ := mime.ParseMediaType(p.Header.Get("Content-Type"))
		parts[partType] = strings.ReplaceAll(string(data), "\r\n", "\n")
	}
	return msg, parts
}

func TestMessageBytes(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { now = time.Now }()

	m := Message{
		To:      "me@example.com",
		Subject: "Research: buy m...",
		Text:    "plain body\nsecond line",
		HTML:    "<h2>Ideas ✨</h2>",
		Charset: "UTF-8",
	}
	raw, err := m.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg, parts := parseMessage(t, raw)
	if got := msg.Header.Get("To"); got != "me@example.com" {
		t.Errorf("To = %q", got)
	}
	if got := msg.Header.Get("Subject"); got != "Research: buy m..." {
		t.Errorf("Subject = %q", got)
	}
	if got := msg.Header.Get("Date"); got != "Fri, 02 Jan 2026 03:04:05 +0000" {
		t.Errorf("Date = %q", got)
	}
	if parts["text/plain"] != "plain body\nsecond line" {
		t.Errorf("text part = %q", parts["text/plain"])
	}
	if parts["text/html"] != "<h2>Ideas ✨</h2>" {
		t.Errorf("html part = %q", parts["text/html"])
	}
}

func TestMessageBytesTextOnly(t *testing.T) {
	raw, err := Message{To: "a@b.c", Subject: "s", Text: "t"}.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, parts := parseMessage(t, raw)
	if len(parts) != 1 || parts["text/plain"] != "t" {
		t.Errorf("unexpected parts %v", parts)
	}
}

func TestMessageBytesNoRecipient(t *testing.T) {
	if _, err := (Message{Subject: "s"}).Bytes(); err == nil {
		t.Error("expected error for missing recipient")
	}
}

func TestNewSenderRequiresClient(t *testing.T) {
	if _, err := NewSender(nil); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestSend(t *testing.T) {
	var gotRaw string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/messages/send" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Raw string `json:"raw"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad body: %v", err)
		}
		decoded, err := base64.RawURLEncoding.DecodeString(body.Raw)
		if err != nil {
			t.Errorf("raw is not base64url: %v", err)
		}
		gotRaw = string(decoded)
		w.Write([]byte(`{"id":"msg-1","threadId":"th-1"}`))
	}))
	defer server.Close()

	s, err := NewSender(server.Client(), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := s.Send(context.Background(), Message{To: "me@example.com", Subject: "Research: x", Text: "body"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "msg-1" {
		t.Errorf("id = %q", id)
	}
	if !strings.Contains(gotRaw, "Subject: Research: x") {
		t.Errorf("raw message missing subject:\n%s", gotRaw)
	}
}

func TestSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"Invalid To header"}}`))
	}))
	defer server.Close()

	s, _ := NewSender(server.Client(), WithBaseURL(server.URL))
	_, err := s.Send(context.Background(), Message{To: "x", Subject: "s", Text: "t"})
	if err == nil || !strings.Contains(err.Error(), "Invalid To header") {
		t.Fatalf("expected upstream message in error, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"emailAddress":"owner@example.com","messagesTotal":10}`))
	}))
	defer server.Close()

	s, _ := NewSender(server.Client(), WithBaseURL(server.URL))
	addr, err := s.Profile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != "owner@example.com" {
		t.Errorf("addr = %q", addr)
	}
}
