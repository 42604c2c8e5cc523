package collab

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Store is the storage surface for collaborator grants.
type Store interface {
	// AddCollaborator inserts a grant, failing if (batch, collaborator)
	// is occupied.
	AddCollaborator(ctx context.Context, r *Record) error

	// GetCollaborator retrieves a grant by (batch, collaborator).
	GetCollaborator(ctx context.Context, batchID id.BatchID, collaborator types.Account) (*Record, error)

	// ListCollaborators returns all grants for a batch.
	ListCollaborators(ctx context.Context, batchID id.BatchID) ([]*Record, error)
}
