package version

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/id"
)

// Store is the storage surface for version records. The store is append-only
// and single-write per key; no update or delete operation exists.
type Store interface {
	// CreateVersion inserts a record, failing if (batch, version) is occupied.
	CreateVersion(ctx context.Context, r *Record) error

	// GetVersion retrieves a record by (batch, version).
	GetVersion(ctx context.Context, batchID id.BatchID, versionNo uint64) (*Record, error)

	// ListVersions returns all records for a batch ordered by version number.
	ListVersions(ctx context.Context, batchID id.BatchID) ([]*Record, error)
}
