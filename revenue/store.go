package revenue

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Store is the storage surface for revenue shares.
type Store interface {
	// SetShare inserts or overwrites the (batch, participant) record.
	SetShare(ctx context.Context, s *Share) error

	// GetShare retrieves a share by (batch, participant).
	GetShare(ctx context.Context, batchID id.BatchID, participant types.Account) (*Share, error)

	// ListShares returns all shares for a batch.
	ListShares(ctx context.Context, batchID id.BatchID) ([]*Share, error)
}
