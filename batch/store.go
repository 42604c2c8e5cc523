package batch

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Store is the storage surface for batch records and the identity counter.
type Store interface {
	// CreateBatch allocates the next batch ID, assigns it to b, advances the
	// counter, and inserts the record. Allocation and insert are atomic.
	CreateBatch(ctx context.Context, b *Batch) error

	// GetBatch retrieves a batch by ID.
	GetBatch(ctx context.Context, batchID id.BatchID) (*Batch, error)

	// UpdateOwner sets the batch's current owner.
	UpdateOwner(ctx context.Context, batchID id.BatchID, newOwner types.Account) error

	// Counter returns the identity of the most recently minted batch
	// (zero before the first creation).
	Counter(ctx context.Context) (uint64, error)
}
