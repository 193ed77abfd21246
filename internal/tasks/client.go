// Package tasks reads and updates Google Tasks through its REST API.
package tasks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://tasks.googleapis.com/tasks/v1"

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client handles communication with the Google Tasks API
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// ClientOption allows configuring the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a Tasks client. httpClient must attach Google
// credentials, e.g. the client from google.NewHTTPClient.
func NewClient(httpClient HTTPClient, opts ...ClientOption) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("tasks client needs an authenticated HTTP client")
	}

	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// APIError is a non-2xx response from the Tasks API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tasks API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("tasks API error (status %d): %s", e.StatusCode, e.Message)
}

// doRequest performs a single request and decodes a JSON body into v. The
// request is never retried.
func (c *Client) doRequest(req *http.Request, v any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return parseAPIError(resp.StatusCode, body)
	}

	if v == nil {
		return nil
	}
	return decodeJSON(resp.Body, v)
}

// decodeJSON reads and decodes JSON from response body
func decodeJSON(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}

func parseAPIError(statusCode int, body []byte) error {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		return &APIError{StatusCode: statusCode, Message: parsed.Error.Message}
	}
	return &APIError{StatusCode: statusCode, Message: string(body)}
}
