// Package memory provides an in-memory Store for tests and single-process
// deployments.
package memory

import (
	"context"
	"sort"
	"sync"

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

type versionKey struct {
	batchID   id.BatchID
	versionNo uint64
}

type accountKey struct {
	batchID id.BatchID
	account types.Account
}

type Store struct {
	mu sync.RWMutex

	// Batch storage and identity counter
	batches map[id.BatchID]*batch.Batch
	counter uint64

	// Sub-registry storage, each independently keyed
	versions      map[versionKey]*version.Record
	licenses      map[accountKey]*license.Record
	categories    map[id.BatchID]*category.Record
	collaborators map[accountKey]*collab.Record
	statuses      map[id.BatchID]*status.Record
	shares        map[accountKey]*revenue.Share

	// Administrative state
	paused bool
}

func New() *Store {
	return &Store{
		batches:       make(map[id.BatchID]*batch.Batch),
		versions:      make(map[versionKey]*version.Record),
		licenses:      make(map[accountKey]*license.Record),
		categories:    make(map[id.BatchID]*category.Record),
		collaborators: make(map[accountKey]*collab.Record),
		statuses:      make(map[id.BatchID]*status.Record),
		shares:        make(map[accountKey]*revenue.Share),
	}
}

// Batch store implementation
func (s *Store) CreateBatch(_ context.Context, b *batch.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := id.BatchID(s.counter + 1)
	if _, exists := s.batches[next]; exists {
		return organictrace.ErrBatchExists
	}

	b.ID = next
	s.batches[next] = b
	s.counter++
	return nil
}

func (s *Store) GetBatch(_ context.Context, batchID id.BatchID) (*batch.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.batches[batchID]; ok {
		return b, nil
	}
	return nil, organictrace.ErrInvalidID
}

func (s *Store) UpdateOwner(_ context.Context, batchID id.BatchID, newOwner types.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[batchID]
	if !ok {
		return organictrace.ErrInvalidID
	}
	b.CurrentOwner = newOwner
	return nil
}

func (s *Store) Counter(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counter, nil
}

// Version store implementation
func (s *Store) CreateVersion(_ context.Context, r *version.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := versionKey{r.BatchID, r.Version}
	if _, exists := s.versions[key]; exists {
		return organictrace.ErrAlreadyRegistered
	}
	s.versions[key] = r
	return nil
}

func (s *Store) GetVersion(_ context.Context, batchID id.BatchID, versionNo uint64) (*version.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.versions[versionKey{batchID, versionNo}]; ok {
		return r, nil
	}
	return nil, organictrace.ErrInvalidID
}

func (s *Store) ListVersions(_ context.Context, batchID id.BatchID) ([]*version.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*version.Record, 0)
	for key, r := range s.versions {
		if key.batchID == batchID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

// License store implementation
func (s *Store) PutLicense(_ context.Context, r *license.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.licenses[accountKey{r.BatchID, r.Licensee}] = r
	return nil
}

func (s *Store) GetLicense(_ context.Context, batchID id.BatchID, licensee types.Account) (*license.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.licenses[accountKey{batchID, licensee}]; ok {
		return r, nil
	}
	return nil, organictrace.ErrInvalidID
}

func (s *Store) SetLicenseActive(_ context.Context, batchID id.BatchID, licensee types.Account, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.licenses[accountKey{batchID, licensee}]
	if !ok {
		return organictrace.ErrInvalidID
	}
	r.Active = active
	return nil
}

// Category store implementation
func (s *Store) SetCategory(_ context.Context, r *category.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories[r.BatchID] = r
	return nil
}

func (s *Store) GetCategory(_ context.Context, batchID id.BatchID) (*category.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.categories[batchID]; ok {
		return r, nil
	}
	return nil, organictrace.ErrInvalidID
}

// Collaborator store implementation
func (s *Store) AddCollaborator(_ context.Context, r *collab.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := accountKey{r.BatchID, r.Collaborator}
	if _, exists := s.collaborators[key]; exists {
		return organictrace.ErrAlreadyRegistered
	}
	s.collaborators[key] = r
	return nil
}

func (s *Store) GetCollaborator(_ context.Context, batchID id.BatchID, collaborator types.Account) (*collab.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.collaborators[accountKey{batchID, collaborator}]; ok {
		return r, nil
	}
	return nil, organictrace.ErrInvalidID
}

func (s *Store) ListCollaborators(_ context.Context, batchID id.BatchID) ([]*collab.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*collab.Record, 0)
	for key, r := range s.collaborators {
		if key.batchID == batchID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Collaborator < result[j].Collaborator
	})
	return result, nil
}

// Status store implementation
func (s *Store) SetStatus(_ context.Context, r *status.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statuses[r.BatchID] = r
	return nil
}

func (s *Store) GetStatus(_ context.Context, batchID id.BatchID) (*status.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.statuses[batchID]; ok {
		return r, nil
	}
	return nil, organictrace.ErrInvalidID
}

// Revenue store implementation
func (s *Store) SetShare(_ context.Context, share *revenue.Share) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shares[accountKey{share.BatchID, share.Participant}] = share
	return nil
}

func (s *Store) GetShare(_ context.Context, batchID id.BatchID, participant types.Account) (*revenue.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if share, ok := s.shares[accountKey{batchID, participant}]; ok {
		return share, nil
	}
	return nil, organictrace.ErrInvalidID
}

func (s *Store) ListShares(_ context.Context, batchID id.BatchID) ([]*revenue.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*revenue.Share, 0)
	for key, share := range s.shares {
		if key.batchID == batchID {
			result = append(result, share)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Participant < result[j].Participant
	})
	return result, nil
}

// Administrative state
func (s *Store) SetPaused(_ context.Context, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paused = paused
	return nil
}

func (s *Store) Paused(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused, nil
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}
