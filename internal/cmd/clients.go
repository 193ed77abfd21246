package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mcao2/tasks-research/internal/config"
	"github.com/mcao2/tasks-research/internal/google"
	"github.com/mcao2/tasks-research/internal/llm"
	"github.com/mcao2/tasks-research/internal/mail"
	"github.com/mcao2/tasks-research/internal/tasks"
)

func googleCredentials(cfg config.Config) google.Credentials {
	return google.Credentials{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RefreshToken: cfg.Google.RefreshToken,
		AccessToken:  cfg.Google.AccessToken,
	}
}

// newGoogleHTTPClient returns the OAuth-authorized client shared by the
// Tasks and Gmail APIs.
func newGoogleHTTPClient(ctx context.Context, cfg config.Config) (*http.Client, error) {
	httpClient, err := google.NewHTTPClient(ctx, googleCredentials(cfg), cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize Google APIs: %w", err)
	}
	return httpClient, nil
}

// newTaskClient builds the Google Tasks client.
func newTaskClient(ctx context.Context, cfg config.Config) (*tasks.Client, error) {
	httpClient, err := newGoogleHTTPClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return tasks.NewClient(httpClient)
}

// newGoogleClients builds the Tasks and Gmail clients over one authorized
// HTTP client.
func newGoogleClients(ctx context.Context, cfg config.Config) (*tasks.Client, *mail.Sender, error) {
	httpClient, err := newGoogleHTTPClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	taskClient, err := tasks.NewClient(httpClient)
	if err != nil {
		return nil, nil, err
	}
	sender, err := mail.NewSender(httpClient)
	if err != nil {
		return nil, nil, err
	}
	return taskClient, sender, nil
}

// newLLMClient builds the model client from the llm section.
func newLLMClient(cfg config.Config) (*llm.Client, error) {
	client, err := llm.NewClient(
		cfg.LLM.Provider,
		cfg.LLM.APIKey,
		llm.WithBaseURL(cfg.LLM.BaseURL),
		llm.WithModel(cfg.LLM.Model),
		llm.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
