package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://gmail.googleapis.com/gmail/v1/users/me"

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sender posts messages to the Gmail API as the authenticated user.
type Sender struct {
	baseURL    string
	httpClient HTTPClient
}

// SenderOption allows configuring the Sender
type SenderOption func(*Sender)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) SenderOption {
	return func(s *Sender) {
		s.baseURL = url
	}
}

// NewSender creates a Sender. httpClient must attach Google credentials,
// e.g. the client from google.NewHTTPClient.
func NewSender(httpClient HTTPClient, opts ...SenderOption) (*Sender, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("mail sender needs an authenticated HTTP client")
	}
	s := &Sender{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send delivers msg and returns the Gmail message ID.
func (s *Sender) Send(ctx context.Context, msg Message) (string, error) {
	raw, err := msg.Bytes()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]string{
		"raw": base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(raw),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages/send", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var result struct {
		ID       string `json:"id"`
		ThreadID string `json:"threadId"`
	}
	if err := s.do(req, &result); err != nil {
		return "", fmt.Errorf("gmail send: %w", err)
	}
	return result.ID, nil
}

// Profile returns the email address of the authenticated user.
func (s *Sender) Profile(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/profile", nil)
	if err != nil {
		return "", err
	}

	var profile struct {
		EmailAddress string `json:"emailAddress"`
	}
	if err := s.do(req, &profile); err != nil {
		return "", fmt.Errorf("gmail profile: %w", err)
	}
	if profile.EmailAddress == "" {
		return "", fmt.Errorf("gmail profile: no email address")
	}
	return profile.EmailAddress, nil
}

func (s *Sender) do(req *http.Request, v any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseAPIError prefers the Google error.message field over the raw body.
func parseAPIError(statusCode int, body []byte) error {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		return fmt.Errorf("API error (status %d): %s", statusCode, parsed.Error.Message)
	}
	return fmt.Errorf("API error (status %d): %s", statusCode, string(body))
}
