package organictrace

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bigshegs18/OrganicTrace/authz"
	"github.com/bigshegs18/OrganicTrace/batch"
	"github.com/bigshegs18/OrganicTrace/category"
	"github.com/bigshegs18/OrganicTrace/clock"
	"github.com/bigshegs18/OrganicTrace/collab"
	"github.com/bigshegs18/OrganicTrace/hook"
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/license"
	"github.com/bigshegs18/OrganicTrace/revenue"
	"github.com/bigshegs18/OrganicTrace/status"
	"github.com/bigshegs18/OrganicTrace/store"
	"github.com/bigshegs18/OrganicTrace/types"
	"github.com/bigshegs18/OrganicTrace/version"
)

// DefaultMaxMetadataLen is the metadata bound applied when none is configured.
const DefaultMaxMetadataLen = 256

// Ledger is the authoritative batch registry. Every mutating call is gated
// by the authorizer or the batch's current owner, applies all of its writes
// or none, and emits a structured event through the hook registry. Mutations
// are serialized by a single lock; accessors go straight to the store.
type Ledger struct {
	store  store.Store
	auth   authz.Authorizer
	clock  clock.Clock
	hooks  *hook.Registry
	logger *slog.Logger

	maxMetadataLen int

	// Serializes mutating calls so each one observes and applies a
	// consistent state under the single-writer execution model.
	mu sync.Mutex
}

// New creates a Ledger over the given store and authorization gate.
func New(s store.Store, auth authz.Authorizer, opts ...Option) *Ledger {
	l := &Ledger{
		store:          s,
		auth:           auth,
		clock:          clock.Unix(),
		hooks:          hook.NewRegistry(),
		logger:         slog.Default(),
		maxMetadataLen: DefaultMaxMetadataLen,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.hooks.WithLogger(logger)
	}
}

// WithClock sets the logical height source.
func WithClock(c clock.Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

// WithHook registers a lifecycle hook.
func WithHook(h hook.Hook) Option {
	return func(l *Ledger) {
		_ = l.hooks.Register(h) //nolint:errcheck // best-effort hook registration during init
	}
}

// WithMaxMetadataLen sets the batch metadata length bound.
func WithMaxMetadataLen(n int) Option {
	return func(l *Ledger) {
		l.maxMetadataLen = n
	}
}

// Start migrates the store and notifies init hooks.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	l.hooks.EmitInit(ctx, l)

	l.logger.Info("trace ledger started",
		"admin", l.auth.Admin(),
		"max_metadata_len", l.maxMetadataLen,
	)

	return nil
}

// Stop notifies shutdown hooks and closes the store.
func (l *Ledger) Stop() error {
	l.hooks.EmitShutdown(context.Background())
	return l.store.Close()
}

// ──────────────────────────────────────────────────
// Batch Registry
// ──────────────────────────────────────────────────

// CreateBatchInput carries the caller-supplied fields of a new batch.
type CreateBatchInput struct {
	Origin      types.Account
	CropType    string
	HarvestedAt types.Height
	Hash        types.Hash
	Metadata    string
}

// CreateBatch mints a new batch owned by the caller and returns its identity.
// Creation is open to the admin and to authorized producers, and only while
// the ledger is not paused.
func (l *Ledger) CreateBatch(ctx context.Context, caller types.Account, in CreateBatchInput) (id.BatchID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()

	paused, err := l.store.Paused(ctx)
	if err != nil {
		return 0, err
	}
	if paused {
		return 0, ErrUnauthorized
	}
	if caller != l.auth.Admin() && !l.auth.IsAuthorizedProducer(caller) {
		return 0, ErrUnauthorized
	}
	if in.Hash.IsZero() {
		return 0, ErrInvalidHash
	}
	if len(in.Metadata) > l.maxMetadataLen {
		return 0, ErrMetadataTooLong
	}

	b := &batch.Batch{
		Origin:       in.Origin,
		CropType:     in.CropType,
		HarvestedAt:  in.HarvestedAt,
		Hash:         in.Hash,
		Metadata:     in.Metadata,
		Creator:      caller,
		CreatedAt:    now,
		CurrentOwner: caller,
	}

	if err := l.store.CreateBatch(ctx, b); err != nil {
		return 0, err
	}

	l.hooks.EmitBatchCreated(ctx, batch.CreatedEvent{
		EventID: id.NewEventID(),
		BatchID: b.ID,
		Creator: caller,
	})

	return b.ID, nil
}

// TransferOwnership moves a batch to a new owner. Only the current owner may
// transfer; a self-transfer succeeds and leaves the relationship unchanged.
func (l *Ledger) TransferOwnership(ctx context.Context, caller types.Account, batchID id.BatchID, newOwner types.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.ownedBatch(ctx, caller, batchID)
	if err != nil {
		return err
	}

	prev := b.CurrentOwner
	if err := l.store.UpdateOwner(ctx, batchID, newOwner); err != nil {
		return err
	}

	l.hooks.EmitOwnershipTransferred(ctx, batch.TransferredEvent{
		EventID: id.NewEventID(),
		BatchID: batchID,
		From:    prev,
		To:      newOwner,
	})

	return nil
}

// GetBatch retrieves a batch record by identity.
func (l *Ledger) GetBatch(ctx context.Context, batchID id.BatchID) (*batch.Batch, error) {
	return l.store.GetBatch(ctx, batchID)
}

// GetOwner returns a batch's current owner.
func (l *Ledger) GetOwner(ctx context.Context, batchID id.BatchID) (types.Account, error) {
	b, err := l.store.GetBatch(ctx, batchID)
	if err != nil {
		return "", err
	}
	return b.CurrentOwner, nil
}

// Counter returns the identity of the most recently minted batch.
func (l *Ledger) Counter(ctx context.Context) (uint64, error) {
	return l.store.Counter(ctx)
}

// ──────────────────────────────────────────────────
// Version History
// ──────────────────────────────────────────────────

// RegisterVersion appends a version record to a batch's history. The
// (batch, version) key is single-write: a second registration under the same
// key is rejected and leaves the first record untouched. Version numbers are
// caller-supplied; no ordering or contiguity is enforced.
func (l *Ledger) RegisterVersion(ctx context.Context, caller types.Account, batchID id.BatchID, versionNo uint64, hash types.Hash, notes string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()

	if _, err := l.ownedBatch(ctx, caller, batchID); err != nil {
		return err
	}
	if hash.IsZero() {
		return ErrInvalidHash
	}

	if err := l.store.CreateVersion(ctx, &version.Record{
		BatchID:   batchID,
		Version:   versionNo,
		Hash:      hash,
		Notes:     notes,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	l.hooks.EmitVersionRegistered(ctx, version.RegisteredEvent{
		EventID: id.NewEventID(),
		BatchID: batchID,
		Version: versionNo,
	})

	return nil
}

// GetVersion retrieves one version record.
func (l *Ledger) GetVersion(ctx context.Context, batchID id.BatchID, versionNo uint64) (*version.Record, error) {
	return l.store.GetVersion(ctx, batchID, versionNo)
}

// ListVersions returns a batch's version history ordered by version number.
func (l *Ledger) ListVersions(ctx context.Context, batchID id.BatchID) ([]*version.Record, error) {
	return l.store.ListVersions(ctx, batchID)
}

// ──────────────────────────────────────────────────
// Licenses
// ──────────────────────────────────────────────────

// GrantLicense grants (or re-grants, replacing prior terms) a license on a
// batch. Expiry is fixed at grant time as height + duration; a zero duration
// yields an immediately expired grant and is not rejected.
func (l *Ledger) GrantLicense(ctx context.Context, caller types.Account, batchID id.BatchID, licensee types.Account, duration types.Height, terms string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()

	if _, err := l.ownedBatch(ctx, caller, batchID); err != nil {
		return err
	}

	expiry := now.Add(duration)
	if err := l.store.PutLicense(ctx, &license.Record{
		BatchID:   batchID,
		Licensee:  licensee,
		Expiry:    expiry,
		Terms:     terms,
		Active:    true,
		GrantedAt: now,
	}); err != nil {
		return err
	}

	l.hooks.EmitLicenseGranted(ctx, license.GrantedEvent{
		EventID:  id.NewEventID(),
		BatchID:  batchID,
		Licensee: licensee,
		Expiry:   expiry,
	})

	return nil
}

// RevokeLicense deactivates a license, leaving its expiry and terms
// untouched. Revocation does not hide the grant from ActiveLicense while it
// is unexpired; the two signals are independent.
func (l *Ledger) RevokeLicense(ctx context.Context, caller types.Account, batchID id.BatchID, licensee types.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.ownedBatch(ctx, caller, batchID); err != nil {
		return err
	}

	if err := l.store.SetLicenseActive(ctx, batchID, licensee, false); err != nil {
		return err
	}

	l.hooks.EmitLicenseRevoked(ctx, license.RevokedEvent{
		EventID:  id.NewEventID(),
		BatchID:  batchID,
		Licensee: licensee,
	})

	return nil
}

// ActiveLicense returns the license for (batch, licensee) only while its
// expiry lies strictly in the future. An expired-but-present grant is
// reported as absent, not as a distinct error. The active flag is not
// consulted here.
func (l *Ledger) ActiveLicense(ctx context.Context, batchID id.BatchID, licensee types.Account) (*license.Record, error) {
	now := l.clock.Height()

	r, err := l.store.GetLicense(ctx, batchID, licensee)
	if err != nil {
		return nil, err
	}
	if r.Expired(now) {
		return nil, ErrInvalidID
	}
	return r, nil
}

// GetLicense retrieves the raw license record regardless of expiry or
// revocation.
func (l *Ledger) GetLicense(ctx context.Context, batchID id.BatchID, licensee types.Account) (*license.Record, error) {
	return l.store.GetLicense(ctx, batchID, licensee)
}

// ──────────────────────────────────────────────────
// Categorization
// ──────────────────────────────────────────────────

// SetCategory overwrites a batch's category record. No history is kept.
func (l *Ledger) SetCategory(ctx context.Context, caller types.Account, batchID id.BatchID, cat string, tags []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()

	if len(tags) > category.MaxTags {
		return ErrTooManyTags
	}
	if _, err := l.ownedBatch(ctx, caller, batchID); err != nil {
		return err
	}

	if err := l.store.SetCategory(ctx, &category.Record{
		BatchID:   batchID,
		Category:  cat,
		Tags:      tags,
		UpdatedAt: now,
	}); err != nil {
		return err
	}

	l.hooks.EmitCategorySet(ctx, category.SetEvent{
		EventID:  id.NewEventID(),
		BatchID:  batchID,
		Category: cat,
	})

	return nil
}

// GetCategory retrieves a batch's current category record.
func (l *Ledger) GetCategory(ctx context.Context, batchID id.BatchID) (*category.Record, error) {
	return l.store.GetCategory(ctx, batchID)
}

// ──────────────────────────────────────────────────
// Collaborators
// ──────────────────────────────────────────────────

// AddCollaborator grants a collaborator on a batch. The grant is write-once
// and irrevocable: a second add for the same (batch, collaborator) is
// rejected and leaves the first grant untouched.
func (l *Ledger) AddCollaborator(ctx context.Context, caller types.Account, batchID id.BatchID, collaborator types.Account, role string, permissions []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()

	if len(permissions) > collab.MaxPermissions {
		return ErrTooManyPermissions
	}
	if _, err := l.ownedBatch(ctx, caller, batchID); err != nil {
		return err
	}

	if err := l.store.AddCollaborator(ctx, &collab.Record{
		BatchID:      batchID,
		Collaborator: collaborator,
		Role:         role,
		Permissions:  permissions,
		AddedAt:      now,
	}); err != nil {
		return err
	}

	l.hooks.EmitCollaboratorAdded(ctx, collab.AddedEvent{
		EventID:      id.NewEventID(),
		BatchID:      batchID,
		Collaborator: collaborator,
		Role:         role,
	})

	return nil
}

// GetCollaborator retrieves one collaborator grant.
func (l *Ledger) GetCollaborator(ctx context.Context, batchID id.BatchID, collaborator types.Account) (*collab.Record, error) {
	return l.store.GetCollaborator(ctx, batchID, collaborator)
}

// ListCollaborators returns all collaborator grants for a batch.
func (l *Ledger) ListCollaborators(ctx context.Context, batchID id.BatchID) ([]*collab.Record, error) {
	return l.store.ListCollaborators(ctx, batchID)
}

// ──────────────────────────────────────────────────
// Status
// ──────────────────────────────────────────────────

// SetStatus overwrites a batch's status record. The label is free-form.
func (l *Ledger) SetStatus(ctx context.Context, caller types.Account, batchID id.BatchID, statusLabel string, visible bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()

	if _, err := l.ownedBatch(ctx, caller, batchID); err != nil {
		return err
	}

	if err := l.store.SetStatus(ctx, &status.Record{
		BatchID:   batchID,
		Status:    statusLabel,
		Visible:   visible,
		UpdatedAt: now,
	}); err != nil {
		return err
	}

	l.hooks.EmitStatusSet(ctx, status.SetEvent{
		EventID: id.NewEventID(),
		BatchID: batchID,
		Status:  statusLabel,
		Visible: visible,
	})

	return nil
}

// GetStatus retrieves a batch's current status record.
func (l *Ledger) GetStatus(ctx context.Context, batchID id.BatchID) (*status.Record, error) {
	return l.store.GetStatus(ctx, batchID)
}

// ──────────────────────────────────────────────────
// Revenue Shares
// ──────────────────────────────────────────────────

// SetRevenueShare sets a participant's percentage allocation on a batch,
// overwriting any prior share and resetting the received accumulator to
// zero. Shares across participants are not validated against a total.
func (l *Ledger) SetRevenueShare(ctx context.Context, caller types.Account, batchID id.BatchID, participant types.Account, percentage uint8) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Height()

	if percentage < revenue.MinPercentage || percentage > revenue.MaxPercentage {
		return ErrInvalidPercentage
	}
	if _, err := l.ownedBatch(ctx, caller, batchID); err != nil {
		return err
	}

	if err := l.store.SetShare(ctx, &revenue.Share{
		BatchID:       batchID,
		Participant:   participant,
		Percentage:    percentage,
		TotalReceived: 0,
		UpdatedAt:     now,
	}); err != nil {
		return err
	}

	l.hooks.EmitRevenueShareSet(ctx, revenue.ShareSetEvent{
		EventID:     id.NewEventID(),
		BatchID:     batchID,
		Participant: participant,
		Percentage:  percentage,
	})

	return nil
}

// GetRevenueShare retrieves one participant's share on a batch.
func (l *Ledger) GetRevenueShare(ctx context.Context, batchID id.BatchID, participant types.Account) (*revenue.Share, error) {
	return l.store.GetShare(ctx, batchID, participant)
}

// ListRevenueShares returns all shares for a batch.
func (l *Ledger) ListRevenueShares(ctx context.Context, batchID id.BatchID) ([]*revenue.Share, error) {
	return l.store.ListShares(ctx, batchID)
}

// ──────────────────────────────────────────────────
// Administrative Controls
// ──────────────────────────────────────────────────

// Pause stops batch creation. Admin-only; no other mutating operation
// consults the paused flag.
func (l *Ledger) Pause(ctx context.Context, caller types.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.auth.Admin() {
		return ErrUnauthorized
	}
	if err := l.store.SetPaused(ctx, true); err != nil {
		return err
	}

	l.hooks.EmitPaused(ctx, batch.PausedEvent{
		EventID: id.NewEventID(),
		By:      caller,
	})

	return nil
}

// Unpause restores batch creation. Admin-only.
func (l *Ledger) Unpause(ctx context.Context, caller types.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.auth.Admin() {
		return ErrUnauthorized
	}
	if err := l.store.SetPaused(ctx, false); err != nil {
		return err
	}

	l.hooks.EmitUnpaused(ctx, batch.UnpausedEvent{
		EventID: id.NewEventID(),
		By:      caller,
	})

	return nil
}

// Paused reports whether batch creation is paused.
func (l *Ledger) Paused(ctx context.Context) (bool, error) {
	return l.store.Paused(ctx)
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// ownedBatch fetches a batch and checks the caller against its current
// owner, re-read at call time rather than cached.
func (l *Ledger) ownedBatch(ctx context.Context, caller types.Account, batchID id.BatchID) (*batch.Batch, error) {
	b, err := l.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(caller) {
		return nil, ErrNotOwner
	}
	return b, nil
}
