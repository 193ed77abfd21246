// Package llm calls a hosted language model with a system instruction and a
// user prompt. Gemini, OpenAI-compatible and Anthropic wire formats are
// supported.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	FormatGemini    = "gemini"
	FormatOpenAI    = "openai"
	FormatAnthropic = "anthropic"

	anthropicMaxTokens = 4096
)

// Provider presets for known LLM providers
var providerDefaults = map[string]struct {
	BaseURL   string
	Model     string
	APIFormat string
}{
	"gemini":     {BaseURL: "https://generativelanguage.googleapis.com/v1beta", Model: "gemini-2.5-flash", APIFormat: FormatGemini},
	"perplexity": {BaseURL: "https://api.perplexity.ai/chat/completions", Model: "sonar", APIFormat: FormatOpenAI},
	"openai":     {BaseURL: "https://api.openai.com/v1/chat/completions", Model: "gpt-4o-mini", APIFormat: FormatOpenAI},
	"anthropic":  {BaseURL: "https://api.anthropic.com/v1/messages", Model: "claude-sonnet-4-5-20250929", APIFormat: FormatAnthropic},
	"ollama":     {BaseURL: "http://localhost:11434/v1/chat/completions", Model: "llama3", APIFormat: FormatOpenAI},
}

// DefaultProvider is used when no provider is configured.
const DefaultProvider = "gemini"

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends one request per Generate call. It never retries.
type Client struct {
	provider   string
	apiFormat  string
	apiKey     string
	model      string
	baseURL    string
	httpClient HTTPClient
}

// Option allows configuring the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithModel sets a custom model
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithAPIFormat sets the wire format ("gemini", "openai" or "anthropic")
func WithAPIFormat(format string) Option {
	return func(c *Client) {
		if format != "" {
			c.apiFormat = format
		}
	}
}

// NewClient creates a model client. An empty provider means gemini.
func NewClient(provider, apiKey string, opts ...Option) (*Client, error) {
	if provider == "" {
		provider = DefaultProvider
	}

	defaults, known := providerDefaults[provider]
	if !known {
		// Unknown provider: require explicit base_url via options
		defaults.BaseURL = ""
		defaults.Model = ""
	}

	client := &Client{
		provider:   provider,
		apiFormat:  defaults.APIFormat,
		apiKey:     apiKey,
		model:      defaults.Model,
		baseURL:    defaults.BaseURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.apiFormat == "" {
		client.apiFormat = FormatOpenAI
	}

	switch client.apiFormat {
	case FormatGemini, FormatOpenAI, FormatAnthropic:
	default:
		return nil, fmt.Errorf("unsupported LLM api format %q", client.apiFormat)
	}

	// Auto-append standard path if base URL has no path component
	if client.baseURL != "" && !strings.Contains(strings.TrimPrefix(strings.TrimPrefix(client.baseURL, "https://"), "http://"), "/") {
		switch client.apiFormat {
		case FormatGemini:
			client.baseURL = strings.TrimRight(client.baseURL, "/") + "/v1beta"
		case FormatAnthropic:
			client.baseURL = strings.TrimRight(client.baseURL, "/") + "/v1/messages"
		default:
			client.baseURL = strings.TrimRight(client.baseURL, "/") + "/v1/chat/completions"
		}
	}

	if client.baseURL == "" {
		return nil, fmt.Errorf("LLM base_url is required for provider %q", provider)
	}
	if client.model == "" {
		return nil, fmt.Errorf("LLM model is required for provider %q", provider)
	}
	if client.apiKey == "" && provider != "ollama" {
		return nil, fmt.Errorf("LLM api_key is required for provider %q", provider)
	}

	return client, nil
}

// Provider returns the configured provider name.
func (c *Client) Provider() string { return c.provider }

// Model returns the model identifier requests are sent to.
func (c *Client) Model() string { return c.model }

// Generate sends a single prompt. A response without any text yields an
// empty string and a nil error.
func (c *Client) Generate(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	req, err := c.newRequest(ctx, systemInstruction, userPrompt)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parseAPIError(resp.StatusCode, respBody)
	}

	return c.extractContent(respBody)
}

func (c *Client) newRequest(ctx context.Context, systemInstruction, userPrompt string) (*http.Request, error) {
	var (
		body []byte
		err  error
		url  = c.baseURL
	)

	switch c.apiFormat {
	case FormatGemini:
		body, err = json.Marshal(GeminiRequest{
			Contents:          []GeminiContent{{Parts: []GeminiPart{{Text: userPrompt}}}},
			SystemInstruction: &GeminiContent{Parts: []GeminiPart{{Text: systemInstruction}}},
			SafetySettings:    defaultSafetySettings,
		})
		url = fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.baseURL, "/"), c.model)
	case FormatAnthropic:
		body, err = json.Marshal(AnthropicRequest{
			Model:     c.model,
			MaxTokens: anthropicMaxTokens,
			System:    systemInstruction,
			Messages:  []ChatMessage{{Role: "user", Content: userPrompt}},
		})
	default:
		body, err = json.Marshal(ChatRequest{
			Model: c.model,
			Messages: []ChatMessage{
				{Role: "system", Content: systemInstruction},
				{Role: "user", Content: userPrompt},
			},
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	switch {
	case c.apiFormat == FormatGemini:
		req.Header.Set("x-goog-api-key", c.apiKey)
	case c.apiFormat == FormatAnthropic:
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", "2023-06-01")
	case c.apiKey != "":
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// extractContent returns the first text the model produced, or "" when
// there is none.
func (c *Client) extractContent(respBody []byte) (string, error) {
	switch c.apiFormat {
	case FormatGemini:
		var geminiResp GeminiResponse
		if err := json.Unmarshal(respBody, &geminiResp); err != nil {
			return "", unexpectedResponse(respBody)
		}
		if geminiResp.Error != nil {
			return "", &APIError{StatusCode: geminiResp.Error.Code, Message: geminiResp.Error.Message}
		}
		if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
			return "", nil
		}
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil

	case FormatAnthropic:
		var anthropicResp AnthropicResponse
		if err := json.Unmarshal(respBody, &anthropicResp); err != nil {
			return "", unexpectedResponse(respBody)
		}
		if anthropicResp.Error != nil {
			return "", &APIError{Message: anthropicResp.Error.Message}
		}
		for _, block := range anthropicResp.Content {
			if block.Type == "text" {
				return block.Text, nil
			}
		}
		return "", nil

	default:
		var chatResp ChatResponse
		if err := json.Unmarshal(respBody, &chatResp); err != nil {
			return "", unexpectedResponse(respBody)
		}
		if chatResp.Error != nil {
			return "", &APIError{Message: chatResp.Error.Message}
		}
		if len(chatResp.Choices) == 0 {
			return "", nil
		}
		return chatResp.Choices[0].Message.Content, nil
	}
}

func unexpectedResponse(body []byte) error {
	preview := string(body)
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return fmt.Errorf("unexpected response (not JSON): %s", preview)
}
