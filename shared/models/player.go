// shared/models/player.go
package models

// Player is an open-ended auction entry. The state service never inspects its fields,
// so every key the client sends is kept.
type Player map[string]any
