// auction/store/document_store.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Resource names one of the whole JSON documents held by the service.
type Resource string

const (
	ResourcePlayers Resource = "players"
	ResourceTeams   Resource = "teams"
	ResourceSession Resource = "session"
)

// Resources lists every resource in seeding order.
func Resources() []Resource {
	return []Resource{ResourcePlayers, ResourceTeams, ResourceSession}
}

// Key returns the storage name of the resource: file base name, row id, document id or redis key part.
func (r Resource) Key() string {
	if r == ResourceSession {
		return "auction_session"
	}
	return string(r)
}

// Valid reports whether r is a known resource.
func (r Resource) Valid() bool {
	switch r {
	case ResourcePlayers, ResourceTeams, ResourceSession:
		return true
	}
	return false
}

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidDocument  = errors.New("document is not valid JSON")
	ErrCorruptDocument  = errors.New("stored document is not valid JSON")
	ErrUnknownResource  = errors.New("unknown resource")
)

// DocumentStore loads and replaces whole JSON documents by resource.
// Implementations are safe for concurrent use but do not serialize
// read-modify-write sequences; callers that need that hold their own lock.
type DocumentStore interface {
	// Load returns the stored document, ErrDocumentNotFound when it was never saved.
	Load(ctx context.Context, resource Resource) ([]byte, error)
	// Save replaces the document with doc, indented with two spaces.
	Save(ctx context.Context, resource Resource, doc []byte) error
	Exists(ctx context.Context, resource Resource) (bool, error)
	Close() error
}

// formatDocument validates doc and renders it the way it is persisted:
// two-space indentation, caller's key order, surrounding whitespace dropped,
// one trailing newline.
func formatDocument(resource Resource, doc []byte) ([]byte, error) {
	if !resource.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(doc), "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, resource, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// checkLoaded rejects stored bytes that no longer parse.
func checkLoaded(resource Resource, data []byte) ([]byte, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrCorruptDocument, resource)
	}
	return data, nil
}

func checkResource(resource Resource) error {
	if !resource.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	return nil
}
