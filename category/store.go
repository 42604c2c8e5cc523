package category

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/id"
)

// Store is the storage surface for category records.
type Store interface {
	// SetCategory unconditionally overwrites the batch's category record.
	SetCategory(ctx context.Context, r *Record) error

	// GetCategory retrieves the batch's current category record.
	GetCategory(ctx context.Context, batchID id.BatchID) (*Record, error)
}
