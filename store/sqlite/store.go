// Package sqlite provides a Store backed by SQLite via the CGo-free
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	organictrace "github.com/bigshegs18/OrganicTrace"
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

type Store struct {
	db *sql.DB

	mu     sync.Mutex
	closed bool
}

// New opens a SQLite-backed store at the given DSN (a file path, or
// "file:trace?mode=memory&cache=shared" for an in-memory database).
// Call Migrate before first use.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}

	// The ledger's all-or-nothing call contract assumes a single writer.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// Batch store implementation
func (s *Store) CreateBatch(ctx context.Context, b *batch.Batch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin create batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var counter uint64
	if err := tx.QueryRowContext(ctx,
		`SELECT value FROM trace_config WHERE key = 'counter'`,
	).Scan(&counter); err != nil {
		return fmt.Errorf("sqlite: read counter: %w", err)
	}

	next := id.BatchID(counter + 1)

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM trace_batches WHERE id = ?`, next,
	).Scan(&exists); err != nil {
		return fmt.Errorf("sqlite: check batch id: %w", err)
	}
	if exists > 0 {
		return organictrace.ErrBatchExists
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO trace_batches (id, origin, crop_type, harvested_at, hash, metadata, creator, created_at, current_owner)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		next, b.Origin, b.CropType, b.HarvestedAt, blob(b.Hash), b.Metadata,
		b.Creator, b.CreatedAt, b.CurrentOwner,
	); err != nil {
		return fmt.Errorf("sqlite: insert batch: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE trace_config SET value = ? WHERE key = 'counter'`, counter+1,
	); err != nil {
		return fmt.Errorf("sqlite: advance counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit create batch: %w", err)
	}

	b.ID = next
	return nil
}

func (s *Store) GetBatch(ctx context.Context, batchID id.BatchID) (*batch.Batch, error) {
	var (
		b    batch.Batch
		hash []byte
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, origin, crop_type, harvested_at, hash, metadata, creator, created_at, current_owner
FROM trace_batches WHERE id = ?`, batchID,
	).Scan(&b.ID, &b.Origin, &b.CropType, &b.HarvestedAt, &hash, &b.Metadata,
		&b.Creator, &b.CreatedAt, &b.CurrentOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, organictrace.ErrInvalidID
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get batch %s: %w", batchID, err)
	}

	b.Hash = types.Hash(hash)
	return &b, nil
}

func (s *Store) UpdateOwner(ctx context.Context, batchID id.BatchID, newOwner types.Account) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE trace_batches SET current_owner = ? WHERE id = ?`, newOwner, batchID)
	if err != nil {
		return fmt.Errorf("sqlite: update owner: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: update owner: %w", err)
	}
	if n == 0 {
		return organictrace.ErrInvalidID
	}
	return nil
}

func (s *Store) Counter(ctx context.Context) (uint64, error) {
	var counter uint64
	if err := s.db.QueryRowContext(ctx,
		`SELECT value FROM trace_config WHERE key = 'counter'`,
	).Scan(&counter); err != nil {
		return 0, fmt.Errorf("sqlite: read counter: %w", err)
	}
	return counter, nil
}

// Version store implementation
func (s *Store) CreateVersion(ctx context.Context, r *version.Record) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM trace_versions WHERE batch_id = ? AND version = ?`,
		r.BatchID, r.Version,
	).Scan(&exists); err != nil {
		return fmt.Errorf("sqlite: check version key: %w", err)
	}
	if exists > 0 {
		return organictrace.ErrAlreadyRegistered
	}

	if _, err := s.db.ExecContext(ctx, `
INSERT INTO trace_versions (batch_id, version, hash, notes, created_at)
VALUES (?, ?, ?, ?, ?)`,
		r.BatchID, r.Version, blob(r.Hash), r.Notes, r.CreatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: insert version: %w", err)
	}
	return nil
}

func (s *Store) GetVersion(ctx context.Context, batchID id.BatchID, versionNo uint64) (*version.Record, error) {
	var (
		r    version.Record
		hash []byte
	)
	err := s.db.QueryRowContext(ctx, `
SELECT batch_id, version, hash, notes, created_at
FROM trace_versions WHERE batch_id = ? AND version = ?`, batchID, versionNo,
	).Scan(&r.BatchID, &r.Version, &hash, &r.Notes, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, organictrace.ErrInvalidID
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get version: %w", err)
	}

	r.Hash = types.Hash(hash)
	return &r, nil
}

func (s *Store) ListVersions(ctx context.Context, batchID id.BatchID) ([]*version.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT batch_id, version, hash, notes, created_at
FROM trace_versions WHERE batch_id = ? ORDER BY version`, batchID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list versions: %w", err)
	}
	defer rows.Close()

	result := make([]*version.Record, 0)
	for rows.Next() {
		var (
			r    version.Record
			hash []byte
		)
		if err := rows.Scan(&r.BatchID, &r.Version, &hash, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan version: %w", err)
		}
		r.Hash = types.Hash(hash)
		result = append(result, &r)
	}
	return result, rows.Err()
}

// License store implementation
func (s *Store) PutLicense(ctx context.Context, r *license.Record) error {
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO trace_licenses (batch_id, licensee, expiry, terms, active, granted_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (batch_id, licensee) DO UPDATE SET
    expiry = excluded.expiry,
    terms = excluded.terms,
    active = excluded.active,
    granted_at = excluded.granted_at`,
		r.BatchID, r.Licensee, r.Expiry, r.Terms, r.Active, r.GrantedAt,
	); err != nil {
		return fmt.Errorf("sqlite: put license: %w", err)
	}
	return nil
}

func (s *Store) GetLicense(ctx context.Context, batchID id.BatchID, licensee types.Account) (*license.Record, error) {
	var r license.Record
	err := s.db.QueryRowContext(ctx, `
SELECT batch_id, licensee, expiry, terms, active, granted_at
FROM trace_licenses WHERE batch_id = ? AND licensee = ?`, batchID, licensee,
	).Scan(&r.BatchID, &r.Licensee, &r.Expiry, &r.Terms, &r.Active, &r.GrantedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, organictrace.ErrInvalidID
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get license: %w", err)
	}
	return &r, nil
}

func (s *Store) SetLicenseActive(ctx context.Context, batchID id.BatchID, licensee types.Account, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE trace_licenses SET active = ? WHERE batch_id = ? AND licensee = ?`,
		active, batchID, licensee)
	if err != nil {
		return fmt.Errorf("sqlite: set license active: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: set license active: %w", err)
	}
	if n == 0 {
		return organictrace.ErrInvalidID
	}
	return nil
}

// Category store implementation
func (s *Store) SetCategory(ctx context.Context, r *category.Record) error {
	tags, err := json.Marshal(r.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: encode tags: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
INSERT INTO trace_categories (batch_id, category, tags, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (batch_id) DO UPDATE SET
    category = excluded.category,
    tags = excluded.tags,
    updated_at = excluded.updated_at`,
		r.BatchID, r.Category, string(tags), r.UpdatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: set category: %w", err)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, batchID id.BatchID) (*category.Record, error) {
	var (
		r    category.Record
		tags string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT batch_id, category, tags, updated_at
FROM trace_categories WHERE batch_id = ?`, batchID,
	).Scan(&r.BatchID, &r.Category, &tags, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, organictrace.ErrInvalidID
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get category: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
		return nil, fmt.Errorf("sqlite: decode tags: %w", err)
	}
	return &r, nil
}

// Collaborator store implementation
func (s *Store) AddCollaborator(ctx context.Context, r *collab.Record) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM trace_collaborators WHERE batch_id = ? AND collaborator = ?`,
		r.BatchID, r.Collaborator,
	).Scan(&exists); err != nil {
		return fmt.Errorf("sqlite: check collaborator key: %w", err)
	}
	if exists > 0 {
		return organictrace.ErrAlreadyRegistered
	}

	perms, err := json.Marshal(r.Permissions)
	if err != nil {
		return fmt.Errorf("sqlite: encode permissions: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
INSERT INTO trace_collaborators (batch_id, collaborator, role, permissions, added_at)
VALUES (?, ?, ?, ?, ?)`,
		r.BatchID, r.Collaborator, r.Role, string(perms), r.AddedAt,
	); err != nil {
		return fmt.Errorf("sqlite: insert collaborator: %w", err)
	}
	return nil
}

func (s *Store) GetCollaborator(ctx context.Context, batchID id.BatchID, collaborator types.Account) (*collab.Record, error) {
	var (
		r     collab.Record
		perms string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT batch_id, collaborator, role, permissions, added_at
FROM trace_collaborators WHERE batch_id = ? AND collaborator = ?`, batchID, collaborator,
	).Scan(&r.BatchID, &r.Collaborator, &r.Role, &perms, &r.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, organictrace.ErrInvalidID
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get collaborator: %w", err)
	}

	if err := json.Unmarshal([]byte(perms), &r.Permissions); err != nil {
		return nil, fmt.Errorf("sqlite: decode permissions: %w", err)
	}
	return &r, nil
}

func (s *Store) ListCollaborators(ctx context.Context, batchID id.BatchID) ([]*collab.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT batch_id, collaborator, role, permissions, added_at
FROM trace_collaborators WHERE batch_id = ? ORDER BY collaborator`, batchID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list collaborators: %w", err)
	}
	defer rows.Close()

	result := make([]*collab.Record, 0)
	for rows.Next() {
		var (
			r     collab.Record
			perms string
		)
		if err := rows.Scan(&r.BatchID, &r.Collaborator, &r.Role, &perms, &r.AddedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan collaborator: %w", err)
		}
		if err := json.Unmarshal([]byte(perms), &r.Permissions); err != nil {
			return nil, fmt.Errorf("sqlite: decode permissions: %w", err)
		}
		result = append(result, &r)
	}
	return result, rows.Err()
}

// Status store implementation
func (s *Store) SetStatus(ctx context.Context, r *status.Record) error {
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO trace_statuses (batch_id, status, visible, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (batch_id) DO UPDATE SET
    status = excluded.status,
    visible = excluded.visible,
    updated_at = excluded.updated_at`,
		r.BatchID, r.Status, r.Visible, r.UpdatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: set status: %w", err)
	}
	return nil
}

func (s *Store) GetStatus(ctx context.Context, batchID id.BatchID) (*status.Record, error) {
	var r status.Record
	err := s.db.QueryRowContext(ctx, `
SELECT batch_id, status, visible, updated_at
FROM trace_statuses WHERE batch_id = ?`, batchID,
	).Scan(&r.BatchID, &r.Status, &r.Visible, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, organictrace.ErrInvalidID
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get status: %w", err)
	}
	return &r, nil
}

// Revenue store implementation
func (s *Store) SetShare(ctx context.Context, share *revenue.Share) error {
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO trace_shares (batch_id, participant, percentage, total_received, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (batch_id, participant) DO UPDATE SET
    percentage = excluded.percentage,
    total_received = excluded.total_received,
    updated_at = excluded.updated_at`,
		share.BatchID, share.Participant, share.Percentage, share.TotalReceived, share.UpdatedAt,
	); err != nil {
		return fmt.Errorf("sqlite: set share: %w", err)
	}
	return nil
}

func (s *Store) GetShare(ctx context.Context, batchID id.BatchID, participant types.Account) (*revenue.Share, error) {
	var share revenue.Share
	err := s.db.QueryRowContext(ctx, `
SELECT batch_id, participant, percentage, total_received, updated_at
FROM trace_shares WHERE batch_id = ? AND participant = ?`, batchID, participant,
	).Scan(&share.BatchID, &share.Participant, &share.Percentage, &share.TotalReceived, &share.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, organictrace.ErrInvalidID
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get share: %w", err)
	}
	return &share, nil
}

func (s *Store) ListShares(ctx context.Context, batchID id.BatchID) ([]*revenue.Share, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT batch_id, participant, percentage, total_received, updated_at
FROM trace_shares WHERE batch_id = ? ORDER BY participant`, batchID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list shares: %w", err)
	}
	defer rows.Close()

	result := make([]*revenue.Share, 0)
	for rows.Next() {
		var share revenue.Share
		if err := rows.Scan(&share.BatchID, &share.Participant, &share.Percentage,
			&share.TotalReceived, &share.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan share: %w", err)
		}
		result = append(result, &share)
	}
	return result, rows.Err()
}

// Administrative state
func (s *Store) SetPaused(ctx context.Context, paused bool) error {
	v := 0
	if paused {
		v = 1
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE trace_config SET value = ? WHERE key = 'paused'`, v,
	); err != nil {
		return fmt.Errorf("sqlite: set paused: %w", err)
	}
	return nil
}

func (s *Store) Paused(ctx context.Context) (bool, error) {
	var v int
	if err := s.db.QueryRowContext(ctx,
		`SELECT value FROM trace_config WHERE key = 'paused'`,
	).Scan(&v); err != nil {
		return false, fmt.Errorf("sqlite: read paused: %w", err)
	}
	return v != 0, nil
}

// Store management
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", organictrace.ErrMigrationFailed, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return organictrace.ErrStoreClosed
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	return s.db.Close()
}

// blob returns a non-nil byte slice for binding. A nil hash would bind as
// SQL NULL and trip the schema's NOT NULL constraint; the memory driver
// stores the same record as-is, so an empty blob keeps the drivers aligned.
func blob(h types.Hash) []byte {
	if h == nil {
		return []byte{}
	}
	return h
}
