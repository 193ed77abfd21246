// Package google builds the authenticated HTTP client shared by the Tasks
// and Gmail clients.
package google

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Scopes the refresh token must have been granted.
var Scopes = []string{
	"https://www.googleapis.com/auth/tasks",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.metadata",
}

// ErrNoCredentials is returned when neither a refresh token nor an access
// token is configured.
var ErrNoCredentials = errors.New("google credentials not configured: set google.refresh_token (with client_id and client_secret) or google.access_token")

// Credentials identify the Google account the tool acts as.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	// AccessToken is used as is when no refresh token is set. It expires
	// after about an hour.
	AccessToken string
}

// TokenSource returns a token source for creds. A refresh token wins over a
// static access token.
func TokenSource(ctx context.Context, creds Credentials) (oauth2.TokenSource, error) {
	switch {
	case creds.RefreshToken != "":
		if creds.ClientID == "" || creds.ClientSecret == "" {
			return nil, errors.New("google refresh_token needs client_id and client_secret")
		}
		conf := &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint:     endpoints.Google,
			Scopes:       Scopes,
		}
		return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken}), nil
	case creds.AccessToken != "":
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken, TokenType: "Bearer"}), nil
	default:
		return nil, ErrNoCredentials
	}
}

// NewHTTPClient returns an *http.Client that authorizes every request with
// creds. A zero timeout leaves requests unbounded.
func NewHTTPClient(ctx context.Context, creds Credentials, timeout time.Duration) (*http.Client, error) {
	base := &http.Client{Timeout: timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	src, err := TokenSource(ctx, creds)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, src)
	client.Timeout = timeout
	return client, nil
}
