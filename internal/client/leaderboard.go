package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LevanIlashvili/stylish-go-app/internal/model"
)

// LeaderboardClient client for the game's off-chain REST API
type LeaderboardClient struct {
	baseURL string
	client  *http.Client
}

// NewLeaderboardClient creates a new REST client rooted at baseURL
func NewLeaderboardClient(baseURL string) *LeaderboardClient {
	return &LeaderboardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// LeaderboardPayload response from GET /leaderboard
type LeaderboardPayload struct {
	Players []model.LeaderboardEntry `json:"players"`
}

// GetLeaderboard gets the ranked players list
func (c *LeaderboardClient) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var payload LeaderboardPayload
	if err := c.getJSON(ctx, c.baseURL+"/leaderboard", &payload); err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return payload.Players, nil
}

// GetBalance gets the native balance of address as reported by the API
func (c *LeaderboardClient) GetBalance(ctx context.Context, address string) (*model.BalanceResponse, error) {
	var balance model.BalanceResponse
	if err := c.getJSON(ctx, c.baseURL+"/balance/"+url.PathEscape(address), &balance); err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &balance, nil
}

func (c *LeaderboardClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
