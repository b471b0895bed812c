package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is kept in SyncError.
const maxErrorBody = 4 << 10

// Remote is the sync endpoint.
type Remote interface {
	Pull(ctx context.Context, cursor int64) (*PullResponse, error)
	Push(ctx context.Context, cursor int64, changes Changes) (json.RawMessage, error)
}

// Client is a client for the remote sync API.
type Client struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

// NewClient creates a new sync client. timeout bounds each round-trip.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Pull fetches the remote changes after cursor.
func (c *Client) Pull(ctx context.Context, cursor int64) (*PullResponse, error) {
	raw, err := c.post(ctx, opPull, PullRequest{LastSyncCursor: cursor})
	if err != nil {
		return nil, err
	}

	var resp PullResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &SyncError{Op: opPull, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &resp, nil
}

// Push sends local changes and returns the remote response body. A JSON body
// is returned verbatim; anything else is returned as a JSON string.
func (c *Client) Push(ctx context.Context, cursor int64, changes Changes) (json.RawMessage, error) {
	raw, err := c.post(ctx, opPush, PushRequest{LastSyncCursor: cursor, Changes: changes})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || !json.Valid(raw) {
		// Forward non-JSON acknowledgements as a JSON string.
		quoted, _ := json.Marshal(string(raw))
		return quoted, nil
	}
	return raw, nil
}

func (c *Client) post(ctx context.Context, op string, payload any) ([]byte, error) {
	url := fmt.Sprintf("%s/sync/%s", c.BaseURL, op)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &SyncError{Op: op, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &SyncError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SyncError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return raw, nil
}
