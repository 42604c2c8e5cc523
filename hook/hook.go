// Package hook provides an extensible lifecycle-hook system for the ledger.
// Hooks observe the structured events emitted by every mutating call; they
// are fire-and-forget notifications for audit and log collaborators, not
// part of the state model.
package hook

import (
	"context"

	"github.com/bigshegs18/OrganicTrace/batch"
	"github.com/bigshegs18/OrganicTrace/category"
	"github.com/bigshegs18/OrganicTrace/collab"
	"github.com/bigshegs18/OrganicTrace/license"
	"github.com/bigshegs18/OrganicTrace/revenue"
	"github.com/bigshegs18/OrganicTrace/status"
	"github.com/bigshegs18/OrganicTrace/version"
)

// Hook is the base interface that all hooks must implement.
type Hook interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the ledger starts.
type OnInit interface {
	Hook
	OnInit(ctx context.Context, ledger interface{}) error
}

// OnShutdown is called when the ledger stops.
type OnShutdown interface {
	Hook
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Batch registry hooks
// ──────────────────────────────────────────────────

// OnBatchCreated is called after a batch is minted.
type OnBatchCreated interface {
	Hook
	OnBatchCreated(ctx context.Context, evt batch.CreatedEvent) error
}

// OnOwnershipTransferred is called after batch ownership changes hands.
type OnOwnershipTransferred interface {
	Hook
	OnOwnershipTransferred(ctx context.Context, evt batch.TransferredEvent) error
}

// OnPaused is called after the admin pauses batch creation.
type OnPaused interface {
	Hook
	OnPaused(ctx context.Context, evt batch.PausedEvent) error
}

// OnUnpaused is called after the admin restores batch creation.
type OnUnpaused interface {
	Hook
	OnUnpaused(ctx context.Context, evt batch.UnpausedEvent) error
}

// ──────────────────────────────────────────────────
// Sub-registry hooks
// ──────────────────────────────────────────────────

// OnVersionRegistered is called after a version record is appended.
type OnVersionRegistered interface {
	Hook
	OnVersionRegistered(ctx context.Context, evt version.RegisteredEvent) error
}

// OnLicenseGranted is called after a license is granted or re-granted.
type OnLicenseGranted interface {
	Hook
	OnLicenseGranted(ctx context.Context, evt license.GrantedEvent) error
}

// OnLicenseRevoked is called after a license is revoked.
type OnLicenseRevoked interface {
	Hook
	OnLicenseRevoked(ctx context.Context, evt license.RevokedEvent) error
}

// OnCategorySet is called after a batch's category is set.
type OnCategorySet interface {
	Hook
	OnCategorySet(ctx context.Context, evt category.SetEvent) error
}

// OnCollaboratorAdded is called after a collaborator is added to a batch.
type OnCollaboratorAdded interface {
	Hook
	OnCollaboratorAdded(ctx context.Context, evt collab.AddedEvent) error
}

// OnStatusSet is called after a batch's status is set.
type OnStatusSet interface {
	Hook
	OnStatusSet(ctx context.Context, evt status.SetEvent) error
}

// OnRevenueShareSet is called after a revenue share is set.
type OnRevenueShareSet interface {
	Hook
	OnRevenueShareSet(ctx context.Context, evt revenue.ShareSetEvent) error
}
