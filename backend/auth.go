package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Authenticator is the opaque authentication collaborator: email/password
// sign-in, sign-out, nothing else. Consumers hold the interface so tests can
// substitute a fake.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthClient implements Authenticator against the hosted auth service.
type AuthClient struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
}

// NewAuthClient builds an AuthClient for the given auth base URL.
func NewAuthClient(baseURL, anonKey string) (*AuthClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend: empty auth base URL")
	}
	if anonKey == "" {
		return nil, fmt.Errorf("backend: empty anonymous key")
	}
	return &AuthClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		anonKey:    anonKey,
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client.
func (a *AuthClient) WithHTTPClient(hc *http.Client) *AuthClient {
	a.httpClient = hc
	return a
}

// SignIn exchanges credentials for a session via the password grant.
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (Session, error) {
	body, err := json.Marshal(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password})
	if err != nil {
		return Session{}, fmt.Errorf("backend: encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("backend: build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", a.anonKey)
	req.Header.Set("Authorization", "Bearer "+a.anonKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("backend: sign in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, decodeAuthError(resp)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("backend: decode session: %w", err)
	}
	return session, nil
}

// SignOut revokes the session's access token. A failed sign-out is still a
// local logout; callers may ignore the error.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("backend: build sign-out request: %w", err)
	}
	req.Header.Set("apikey", a.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: sign out: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAuthError(resp)
	}
	return nil
}

func decodeAuthError(resp *http.Response) error {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"msg"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.ErrorDescription
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &AuthError{Status: resp.StatusCode, Message: msg}
}
