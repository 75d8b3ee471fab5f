// auction/service/state_service.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Ftotnem/auction-state/auction/store"
)

// Custom Errors for clear communication to API layer
var (
	ErrInvalidDocument = errors.New("request body must be a JSON object or array")
	ErrNotAList        = errors.New("stored players document is not a list")
)

// StateService serializes access to each resource. Every operation on a resource
// runs inside that resource's critical section, so an append never loses a
// concurrent write and readers see whole documents only.
type StateService struct {
	documentStore store.DocumentStore
	locks         map[store.Resource]*sync.Mutex
}

// NewStateService creates a new StateService instance.
func NewStateService(ds store.DocumentStore) *StateService {
	locks := make(map[store.Resource]*sync.Mutex)
	for _, resource := range store.Resources() {
		locks[resource] = &sync.Mutex{}
	}
	return &StateService{
		documentStore: ds,
		locks:         locks,
	}
}

func (ss *StateService) lock(resource store.Resource) (func(), error) {
	mu, ok := ss.locks[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownResource, resource)
	}
	mu.Lock()
	return mu.Unlock, nil
}

// Document returns the current document of resource.
func (ss *StateService) Document(ctx context.Context, resource store.Resource) (json.RawMessage, error) {
	unlock, err := ss.lock(resource)
	if err != nil {
		return nil, err
	}
	defer unlock()

	doc, err := ss.documentStore.Load(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("service failed to load %s: %w", resource, err)
	}
	return json.RawMessage(doc), nil
}

// Replace swaps the whole document of resource for doc, whatever its shape.
func (ss *StateService) Replace(ctx context.Context, resource store.Resource, doc json.RawMessage) error {
	if err := ValidateDocument(doc); err != nil {
		return err
	}
	unlock, err := ss.lock(resource)
	if err != nil {
		return err
	}
	defer unlock()

	if err := ss.documentStore.Save(ctx, resource, doc); err != nil {
		return fmt.Errorf("service failed to replace %s: %w", resource, err)
	}
	return nil
}

// AddPlayer appends player to the player list and returns the updated list.
func (ss *StateService) AddPlayer(ctx context.Context, player json.RawMessage) ([]json.RawMessage, error) {
	if err := ValidateDocument(player); err != nil {
		return nil, err
	}
	unlock, err := ss.lock(store.ResourcePlayers)
	if err != nil {
		return nil, err
	}
	defer unlock()

	raw, err := ss.documentStore.Load(ctx, store.ResourcePlayers)
	if err != nil {
		return nil, fmt.Errorf("service failed to load players: %w", err)
	}
	var players []json.RawMessage
	if err := json.Unmarshal(raw, &players); err != nil || players == nil {
		return nil, ErrNotAList
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, player); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	players = append(players, compact.Bytes())

	doc, err := json.Marshal(players)
	if err != nil {
		return nil, fmt.Errorf("service failed to encode players: %w", err)
	}
	if err := ss.documentStore.Save(ctx, store.ResourcePlayers, doc); err != nil {
		return nil, fmt.Errorf("service failed to save players: %w", err)
	}
	return players, nil
}

// Players returns the stored player document; after a non-list replace it may not be a list.
func (ss *StateService) Players(ctx context.Context) (json.RawMessage, error) {
	return ss.Document(ctx, store.ResourcePlayers)
}

// ReplacePlayers overwrites the player document.
func (ss *StateService) ReplacePlayers(ctx context.Context, doc json.RawMessage) error {
	return ss.Replace(ctx, store.ResourcePlayers, doc)
}

// Teams returns the stored team document.
func (ss *StateService) Teams(ctx context.Context) (json.RawMessage, error) {
	return ss.Document(ctx, store.ResourceTeams)
}

// ReplaceTeams overwrites the team document.
func (ss *StateService) ReplaceTeams(ctx context.Context, doc json.RawMessage) error {
	return ss.Replace(ctx, store.ResourceTeams, doc)
}

// Session returns the stored auction session.
func (ss *StateService) Session(ctx context.Context) (json.RawMessage, error) {
	return ss.Document(ctx, store.ResourceSession)
}

// ReplaceSession overwrites the auction session.
func (ss *StateService) ReplaceSession(ctx context.Context, doc json.RawMessage) error {
	return ss.Replace(ctx, store.ResourceSession, doc)
}

// ValidateDocument accepts any well-formed JSON whose top-level value is an
// object or an array. Shape and field types are never checked.
func ValidateDocument(doc []byte) error {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 {
		return fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return ErrInvalidDocument
	}
	if !json.Valid(trimmed) {
		return fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	return nil
}
