// auction/store/seed.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Ftotnem/auction-state/shared/models"
)

// DefaultDocument returns the document a resource starts with on first run.
func DefaultDocument(resource Resource, now time.Time) ([]byte, error) {
	var v any
	switch resource {
	case ResourcePlayers:
		v = []models.Player{}
	case ResourceTeams:
		v = models.DefaultTeams()
	case ResourceSession:
		v = models.NewAuctionSession(now)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	return json.Marshal(v)
}

// EnsureDefaults seeds every resource that does not exist yet.
// Existing documents are left alone whatever they contain.
func EnsureDefaults(ctx context.Context, s DocumentStore, now time.Time) error {
	for _, resource := range Resources() {
		exists, err := s.Exists(ctx, resource)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", resource, err)
		}
		if exists {
			continue
		}
		doc, err := DefaultDocument(resource, now)
		if err != nil {
			return err
		}
		if err := s.Save(ctx, resource, doc); err != nil {
			return fmt.Errorf("failed to seed %s: %w", resource, err)
		}
		log.Printf("INFO: Initialized %s with defaults.", resource)
	}
	return nil
}
