// Package version defines the append-only version history of a batch.
package version

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Record is one entry in a batch's version history, keyed by
// (batch, version). Once written, a key is immutable: re-registration is
// rejected, never overwritten. Version numbers are caller-supplied and may
// be non-contiguous or out of order; the ledger enforces no monotonicity.
type Record struct {
	BatchID   id.BatchID   `json:"batch_id"`
	Version   uint64       `json:"version"`
	Hash      types.Hash   `json:"hash"`
	Notes     string       `json:"notes"`
	CreatedAt types.Height `json:"created_at"`
}

// RegisteredEvent is emitted after a version record is appended.
type RegisteredEvent struct {
	EventID id.EventID `json:"event_id"`
	BatchID id.BatchID `json:"batch_id"`
	Version uint64     `json:"version"`
}
