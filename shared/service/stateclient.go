// shared/service/stateclient.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ftotnem/auction-state/shared/api"
	"github.com/Ftotnem/auction-state/shared/models"
)

// StateServiceClient is a client for the Auction State Service.
type StateServiceClient struct {
	apiClient *api.Client
}

// NewStateClient creates a new Auction State Service client.
// A nil httpClient falls back to api.NewDefaultHTTPClient.
func NewStateClient(baseURL string, httpClient *http.Client) *StateServiceClient {
	if httpClient == nil {
		httpClient = api.NewDefaultHTTPClient()
	}
	return &StateServiceClient{
		apiClient: api.NewClient(baseURL, httpClient),
	}
}

// AddPlayerResponse mirrors the body returned by POST /players.
type AddPlayerResponse struct {
	Message string          `json:"message"`
	Players []models.Player `json:"players"`
}

// MessageResponse mirrors the body returned by the PUT endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Client Methods for Auction State Service API Endpoints ---

// Health calls GET / and returns the liveness string.
func (c *StateServiceClient) Health(ctx context.Context) (string, error) {
	body, err := c.apiClient.GetRaw(ctx, "/")
	if err != nil {
		return "", fmt.Errorf("health check failed: %w", err)
	}
	return string(body), nil
}

// GetPlayersRaw returns the stored player document as-is; it is not guaranteed to be a list.
func (c *StateServiceClient) GetPlayersRaw(ctx context.Context) (json.RawMessage, error) {
	var doc json.RawMessage
	if err := c.apiClient.Get(ctx, "/players", &doc); err != nil {
		return nil, fmt.Errorf("failed to get players from Auction State Service: %w", err)
	}
	return doc, nil
}

// GetPlayers fetches the player list.
func (c *StateServiceClient) GetPlayers(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := c.apiClient.Get(ctx, "/players", &players); err != nil {
		return nil, fmt.Errorf("failed to get players from Auction State Service: %w", err)
	}
	return players, nil
}

// AddPlayer appends player (any JSON object) and returns the service's response.
func (c *StateServiceClient) AddPlayer(ctx context.Context, player any) (*AddPlayerResponse, error) {
	resp := &AddPlayerResponse{}
	if err := c.apiClient.Post(ctx, "/players", player, resp); err != nil {
		return nil, fmt.Errorf("failed to add player in Auction State Service: %w", err)
	}
	return resp, nil
}

// ReplacePlayers overwrites the whole player document with players.
func (c *StateServiceClient) ReplacePlayers(ctx context.Context, players any) (string, error) {
	return c.replace(ctx, "/players", players)
}

// GetTeams fetches the team list.
func (c *StateServiceClient) GetTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := c.apiClient.Get(ctx, "/teams", &teams); err != nil {
		return nil, fmt.Errorf("failed to get teams from Auction State Service: %w", err)
	}
	return teams, nil
}

// ReplaceTeams overwrites the whole team list.
func (c *StateServiceClient) ReplaceTeams(ctx context.Context, teams []models.Team) (string, error) {
	return c.replace(ctx, "/teams", teams)
}

// GetSession fetches the auction session.
func (c *StateServiceClient) GetSession(ctx context.Context) (*models.AuctionSession, error) {
	session := &models.AuctionSession{}
	if err := c.apiClient.Get(ctx, "/session", session); err != nil {
		return nil, fmt.Errorf("failed to get session from Auction State Service: %w", err)
	}
	return session, nil
}

// ReplaceSession overwrites the auction session.
func (c *StateServiceClient) ReplaceSession(ctx context.Context, session models.AuctionSession) (string, error) {
	return c.replace(ctx, "/session", session)
}

func (c *StateServiceClient) replace(ctx context.Context, path string, body any) (string, error) {
	var resp MessageResponse
	if err := c.apiClient.Put(ctx, path, body, &resp); err != nil {
		return "", fmt.Errorf("failed to replace %s in Auction State Service: %w", path, err)
	}
	return resp.Message, nil
}
