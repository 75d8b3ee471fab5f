// auction/api/handler.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Ftotnem/auction-state/auction/service"
	"github.com/Ftotnem/auction-state/auction/store"
	"github.com/Ftotnem/auction-state/shared/api"
	"github.com/gorilla/mux"
)

const (
	// HealthMessage is returned by GET / while the process is up.
	HealthMessage = "Auction Backend is running 🚀"

	maxBodyBytes   = 10 << 20
	requestTimeout = 5 * time.Second
)

// AuctionAPIHandlers holds the service that owns the auction state documents.
type AuctionAPIHandlers struct {
	StateService *service.StateService
}

// NewAuctionAPIHandlers is the constructor for the API handlers.
func NewAuctionAPIHandlers(ss *service.StateService) *AuctionAPIHandlers {
	return &AuctionAPIHandlers{StateService: ss}
}

// AddPlayerResponse is returned by POST /players.
type AddPlayerResponse struct {
	Message string            `json:"message"`
	Players []json.RawMessage `json:"players"`
}

// --- Handler Methods ---

// HealthHandler answers liveness probes without touching storage.
// GET /
func (aah *AuctionAPIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = api.WriteText(w, http.StatusOK, HealthMessage)
}

// GetPlayersHandler returns the whole player list.
// GET /players
func (aah *AuctionAPIHandlers) GetPlayersHandler(w http.ResponseWriter, r *http.Request) {
	aah.getDocument(w, r, "load players", aah.StateService.Players)
}

// AddPlayerHandler appends one player and returns the updated list.
// POST /players
func (aah *AuctionAPIHandlers) AddPlayerHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readDocument(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	players, err := aah.StateService.AddPlayer(ctx, body)
	if err != nil {
		writeServiceError(w, "add player", err)
		return
	}
	api.WriteJSON(w, http.StatusOK, AddPlayerResponse{Message: "Player added", Players: players})
}

// ReplacePlayersHandler replaces the whole player list.
// PUT /players
func (aah *AuctionAPIHandlers) ReplacePlayersHandler(w http.ResponseWriter, r *http.Request) {
	aah.replaceDocument(w, r, "update players", aah.StateService.ReplacePlayers, "Players updated")
}

// GetTeamsHandler returns the whole team list.
// GET /teams
func (aah *AuctionAPIHandlers) GetTeamsHandler(w http.ResponseWriter, r *http.Request) {
	aah.getDocument(w, r, "load teams", aah.StateService.Teams)
}

// ReplaceTeamsHandler replaces the whole team list.
// PUT /teams
func (aah *AuctionAPIHandlers) ReplaceTeamsHandler(w http.ResponseWriter, r *http.Request) {
	aah.replaceDocument(w, r, "update teams", aah.StateService.ReplaceTeams, "Teams updated")
}

// GetSessionHandler returns the auction session.
// GET /session
func (aah *AuctionAPIHandlers) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	aah.getDocument(w, r, "load session", aah.StateService.Session)
}

// ReplaceSessionHandler replaces the auction session.
// PUT /session
func (aah *AuctionAPIHandlers) ReplaceSessionHandler(w http.ResponseWriter, r *http.Request) {
	aah.replaceDocument(w, r, "update session", aah.StateService.ReplaceSession, "Session updated")
}

// getDocument serves the document returned by load.
func (aah *AuctionAPIHandlers) getDocument(w http.ResponseWriter, r *http.Request, action string, load func(context.Context) (json.RawMessage, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	doc, err := load(ctx)
	if err != nil {
		writeServiceError(w, action, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, doc)
}

// replaceDocument hands the request body to replace and answers with message.
func (aah *AuctionAPIHandlers) replaceDocument(w http.ResponseWriter, r *http.Request, action string, replace func(context.Context, json.RawMessage) error, message string) {
	body, ok := readDocument(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := replace(ctx, body); err != nil {
		writeServiceError(w, action, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: message})
}

// readDocument reads the request body. An empty body counts as {}.
func readDocument(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		api.WriteBadRequest(w, "Failed to read request body")
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage(`{}`), true
	}
	if err := service.ValidateDocument(body); err != nil {
		api.WriteBadRequest(w, "Invalid request body: "+err.Error())
		return nil, false
	}
	return json.RawMessage(body), true
}

// writeServiceError maps service-layer errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDocument), errors.Is(err, store.ErrInvalidDocument):
		api.WriteBadRequest(w, "Invalid request body")
	default:
		log.Printf("ERROR: Failed to %s: %v", action, err)
		api.WriteInternalServerError(w, "Failed to "+action)
	}
}

// RegisterRoutes registers all API endpoints for the Auction State Service.
// Resource routes are served both at the root and under /api.
func (aah *AuctionAPIHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", aah.HealthHandler).Methods("GET")

	aah.registerResourceRoutes(router)
	aah.registerResourceRoutes(router.PathPrefix("/api").Subrouter())
}

func (aah *AuctionAPIHandlers) registerResourceRoutes(router *mux.Router) {
	router.HandleFunc("/players", aah.GetPlayersHandler).Methods("GET")
	router.HandleFunc("/players", aah.AddPlayerHandler).Methods("POST")
	router.HandleFunc("/players", aah.ReplacePlayersHandler).Methods("PUT")

	router.HandleFunc("/teams", aah.GetTeamsHandler).Methods("GET")
	router.HandleFunc("/teams", aah.ReplaceTeamsHandler).Methods("PUT")

	router.HandleFunc("/session", aah.GetSessionHandler).Methods("GET")
	router.HandleFunc("/session", aah.ReplaceSessionHandler).Methods("PUT")
}
