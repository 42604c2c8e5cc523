package license

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Store is the storage surface for license grants.
type Store interface {
	// PutLicense inserts or overwrites the (batch, licensee) record.
	// Overwrite is intentional: re-granting replaces the prior terms.
	PutLicense(ctx context.Context, r *Record) error

	// GetLicense retrieves the raw record regardless of expiry or revocation.
	GetLicense(ctx context.Context, batchID id.BatchID, licensee types.Account) (*Record, error)

	// SetLicenseActive flips the active flag, leaving expiry and terms
	// untouched. Fails if no record exists for the key.
	SetLicenseActive(ctx context.Context, batchID id.BatchID, licensee types.Account, active bool) error
}
