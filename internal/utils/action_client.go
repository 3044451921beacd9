package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

// ActionClient fetches action metadata the way a wallet-aware renderer does
type ActionClient struct {
	client  *http.Client
	timeout time.Duration
}

// NewActionClient creates a client with a 30 second timeout
func NewActionClient() *ActionClient {
	return &ActionClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		timeout: 30 * time.Second,
	}
}

// SetTimeout sets the timeout for action requests
func (a *ActionClient) SetTimeout(timeout time.Duration) {
	a.timeout = timeout
	a.client.Timeout = timeout
}

// FetchAction performs GET on actionURL and decodes the action metadata
func (a *ActionClient) FetchAction(ctx context.Context, actionURL string) (*models.ActionGetResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, actionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch action: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var actionErr models.ActionError
		if json.Unmarshal(body, &actionErr) == nil && actionErr.Message != "" {
			return nil, fmt.Errorf("action endpoint returned %d: %s", resp.StatusCode, actionErr.Message)
		}
		return nil, fmt.Errorf("action endpoint returned %d", resp.StatusCode)
	}

	var metadata models.ActionGetResponse
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode action metadata: %w", err)
	}
	return &metadata, nil
}
