package status

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/id"
)

// Store is the storage surface for status records.
type Store interface {
	// SetStatus unconditionally overwrites the batch's status record.
	SetStatus(ctx context.Context, r *Record) error

	// GetStatus retrieves the batch's current status record.
	GetStatus(ctx context.Context, batchID id.BatchID) (*Record, error)
}
