// Package store defines the unified storage interface for the ledger.
package store

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/batch"
	"github.com/bigshegs18/OrganicTrace/category"
	"github.com/bigshegs18/OrganicTrace/collab"
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/license"
	"github.com/bigshegs18/OrganicTrace/revenue"
	"github.com/bigshegs18/OrganicTrace/status"
	"github.com/bigshegs18/OrganicTrace/types"
	"github.com/bigshegs18/OrganicTrace/version"
)

// Store is the unified storage interface for all ledger record stores and
// the persisted scalar state (identity counter, paused flag). The seven
// record stores are independently keyed: no store reads another, and the
// batch store's existence check is the sole gate scoping sub-records to a
// minted batch. Instead of embedding the per-entity sub-interfaces, all
// methods are declared explicitly to avoid naming conflicts.
type Store interface {
	// Batch methods
	CreateBatch(ctx context.Context, b *batch.Batch) error
	GetBatch(ctx context.Context, batchID id.BatchID) (*batch.Batch, error)
	UpdateOwner(ctx context.Context, batchID id.BatchID, newOwner types.Account) error
	Counter(ctx context.Context) (uint64, error)

	// Version methods
	CreateVersion(ctx context.Context, r *version.Record) error
	GetVersion(ctx context.Context, batchID id.BatchID, versionNo uint64) (*version.Record, error)
	ListVersions(ctx context.Context, batchID id.BatchID) ([]*version.Record, error)

	// License methods
	PutLicense(ctx context.Context, r *license.Record) error
	GetLicense(ctx context.Context, batchID id.BatchID, licensee types.Account) (*license.Record, error)
	SetLicenseActive(ctx context.Context, batchID id.BatchID, licensee types.Account, active bool) error

	// Category methods
	SetCategory(ctx context.Context, r *category.Record) error
	GetCategory(ctx context.Context, batchID id.BatchID) (*category.Record, error)

	// Collaborator methods
	AddCollaborator(ctx context.Context, r *collab.Record) error
	GetCollaborator(ctx context.Context, batchID id.BatchID, collaborator types.Account) (*collab.Record, error)
	ListCollaborators(ctx context.Context, batchID id.BatchID) ([]*collab.Record, error)

	// Status methods
	SetStatus(ctx context.Context, r *status.Record) error
	GetStatus(ctx context.Context, batchID id.BatchID) (*status.Record, error)

	// Revenue methods
	SetShare(ctx context.Context, s *revenue.Share) error
	GetShare(ctx context.Context, batchID id.BatchID, participant types.Account) (*revenue.Share, error)
	ListShares(ctx context.Context, batchID id.BatchID) ([]*revenue.Share, error)

	// Administrative state
	SetPaused(ctx context.Context, paused bool) error
	Paused(ctx context.Context) (bool, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
