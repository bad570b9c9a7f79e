// Package backend is the HTTP client for the remote chat service. The
// gateway consumes three endpoints and implements none of them; every
// failure here is recovered locally by the chat controller.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrBadStatus marks a response the service returned but the gateway cannot
// accept. The controller distinguishes it from transport errors: a bad
// status falls back immediately, a dead network falls back after the typing
// delay.
var ErrBadStatus = errors.New("backend: unexpected status")

// Client talks to the remote chat service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HistoryMessage is one entry of the remote transcript.
type HistoryMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// History fetches the remote transcript for a user. An empty slice means no
// history, not an error.
func (c *Client) History(ctx context.Context, userEmail string) ([]HistoryMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.historyURL(userEmail), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var messages []HistoryMessage
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return messages, nil
}

// ClearHistory deletes the remote transcript for a user. Callers fire and
// forget; any 2xx is success.
func (c *Client) ClearHistory(ctx context.Context, userEmail string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.historyURL(userEmail), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	return nil
}

// Send posts one user message and returns the assistant reply text. The
// reply may be empty when the service answered 2xx without a response
// field; the controller substitutes its acknowledgement in that case.
func (c *Client) Send(ctx context.Context, userEmail, message string) (string, error) {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat?user_email=" + url.QueryEscape(userEmail)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result.Response, nil
}

func (c *Client) historyURL(userEmail string) string {
	return c.baseURL + "/chat/history?user_email=" + url.QueryEscape(userEmail)
}
