package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	organictrace "github.com/bigshegs18/OrganicTrace"
	"github.com/bigshegs18/OrganicTrace/batch"
	"github.com/bigshegs18/OrganicTrace/category"
	"github.com/bigshegs18/OrganicTrace/collab"
	"github.com/bigshegs18/OrganicTrace/license"
	"github.com/bigshegs18/OrganicTrace/revenue"
	"github.com/bigshegs18/OrganicTrace/store/sqlite"
	"github.com/bigshegs18/OrganicTrace/types"
	"github.com/bigshegs18/OrganicTrace/version"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.New(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestCreateBatchRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := &batch.Batch{
		Origin:       "acct_farm",
		CropType:     "heirloom tomato",
		HarvestedAt:  90,
		Hash:         types.Hash{0xDE, 0xAD, 0xBE, 0xEF},
		Metadata:     "lot 7",
		Creator:      "acct_farm",
		CreatedAt:    100,
		CurrentOwner: "acct_farm",
	}
	require.NoError(t, s.CreateBatch(ctx, in))
	assert.EqualValues(t, 1, in.ID)

	got, err := s.GetBatch(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, in.CropType, got.CropType)
	assert.EqualValues(t, in.HarvestedAt, got.HarvestedAt)
	assert.True(t, got.Hash.Equal(in.Hash))
	assert.EqualValues(t, "acct_farm", got.CurrentOwner)

	counter, err := s.Counter(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counter)
}

func TestCounterPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trace.db")

	s, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(ctx))

	require.NoError(t, s.CreateBatch(ctx, &batch.Batch{CurrentOwner: "acct_farm", Hash: types.Hash{0x01}}))
	require.NoError(t, s.CreateBatch(ctx, &batch.Batch{CurrentOwner: "acct_farm", Hash: types.Hash{0x02}}))
	require.NoError(t, s.SetPaused(ctx, true))
	require.NoError(t, s.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Migrate(ctx))

	counter, err := reopened.Counter(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counter)

	paused, err := reopened.Paused(ctx)
	require.NoError(t, err)
	assert.True(t, paused)

	// The counter resumes where it left off.
	b := &batch.Batch{CurrentOwner: "acct_farm", Hash: types.Hash{0x03}}
	require.NoError(t, reopened.CreateBatch(ctx, b))
	assert.EqualValues(t, 3, b.ID)
}

func TestGetBatchUnknown(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBatch(context.Background(), 42)
	assert.ErrorIs(t, err, organictrace.ErrInvalidID)
}

func TestUpdateOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := &batch.Batch{CurrentOwner: "acct_farm"}
	require.NoError(t, s.CreateBatch(ctx, b))
	require.NoError(t, s.UpdateOwner(ctx, b.ID, "acct_dist"))

	got, err := s.GetBatch(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, "acct_dist", got.CurrentOwner)

	assert.ErrorIs(t, s.UpdateOwner(ctx, 42, "acct_dist"), organictrace.ErrInvalidID)
}

func TestVersionWriteOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateVersion(ctx, &version.Record{
		BatchID: 1, Version: 1, Hash: types.Hash{0x01}, Notes: "first",
	}))
	assert.ErrorIs(t, s.CreateVersion(ctx, &version.Record{
		BatchID: 1, Version: 1, Hash: types.Hash{0x02}, Notes: "second",
	}), organictrace.ErrAlreadyRegistered)

	got, err := s.GetVersion(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Notes)
	assert.True(t, got.Hash.Equal(types.Hash{0x01}))
}

func TestListVersionsOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, v := range []uint64{9, 2, 5} {
		require.NoError(t, s.CreateVersion(ctx, &version.Record{BatchID: 1, Version: v}))
	}

	list, err := s.ListVersions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.EqualValues(t, 2, list[0].Version)
	assert.EqualValues(t, 9, list[2].Version)
}

func TestPutLicenseUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutLicense(ctx, &license.Record{
		BatchID: 1, Licensee: "acct_r", Expiry: 10, Terms: "old", Active: true,
	}))
	require.NoError(t, s.PutLicense(ctx, &license.Record{
		BatchID: 1, Licensee: "acct_r", Expiry: 99, Terms: "new", Active: true,
	}))

	got, err := s.GetLicense(ctx, 1, "acct_r")
	require.NoError(t, err)
	assert.EqualValues(t, 99, got.Expiry)
	assert.Equal(t, "new", got.Terms)

	require.NoError(t, s.SetLicenseActive(ctx, 1, "acct_r", false))
	got, err = s.GetLicense(ctx, 1, "acct_r")
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestCategoryTagsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetCategory(ctx, &category.Record{
		BatchID: 1, Category: "produce", Tags: []string{"organic", "local"}, UpdatedAt: 100,
	}))

	got, err := s.GetCategory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"organic", "local"}, got.Tags)

	// Upsert replaces tags entirely.
	require.NoError(t, s.SetCategory(ctx, &category.Record{BatchID: 1, Category: "export"}))
	got, err = s.GetCategory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "export", got.Category)
	assert.Empty(t, got.Tags)
}

func TestCollaboratorWriteOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddCollaborator(ctx, &collab.Record{
		BatchID: 1, Collaborator: "acct_i", Role: "inspector", Permissions: []string{"read"},
	}))
	assert.ErrorIs(t, s.AddCollaborator(ctx, &collab.Record{
		BatchID: 1, Collaborator: "acct_i", Role: "auditor",
	}), organictrace.ErrAlreadyRegistered)

	got, err := s.GetCollaborator(ctx, 1, "acct_i")
	require.NoError(t, err)
	assert.Equal(t, "inspector", got.Role)
	assert.Equal(t, []string{"read"}, got.Permissions)
}

func TestSharesUpsertAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetShare(ctx, &revenue.Share{
		BatchID: 1, Participant: "acct_z", Percentage: 30, TotalReceived: 500,
	}))
	require.NoError(t, s.SetShare(ctx, &revenue.Share{
		BatchID: 1, Participant: "acct_z", Percentage: 60, TotalReceived: 0,
	}))
	require.NoError(t, s.SetShare(ctx, &revenue.Share{
		BatchID: 1, Participant: "acct_a", Percentage: 10,
	}))

	list, err := s.ListShares(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.EqualValues(t, "acct_a", list[0].Participant)
	assert.EqualValues(t, 60, list[1].Percentage)
	assert.Zero(t, list[1].TotalReceived)
}

func TestHashlessRecordsAreStored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Records built without a hash must be accepted just like the memory
	// driver accepts them, not rejected by the NOT NULL hash column.
	b := &batch.Batch{CurrentOwner: "acct_farm"}
	require.NoError(t, s.CreateBatch(ctx, b))

	got, err := s.GetBatch(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Hash.IsZero())

	require.NoError(t, s.CreateVersion(ctx, &version.Record{BatchID: b.ID, Version: 1}))

	v, err := s.GetVersion(ctx, b.ID, 1)
	require.NoError(t, err)
	assert.True(t, v.Hash.IsZero())
}

func TestConcurrentPingAndClose(t *testing.T) {
	s, err := sqlite.New(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Ping(ctx)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Close()
	}()
	wg.Wait()

	assert.ErrorIs(t, s.Ping(ctx), organictrace.ErrStoreClosed)
}

func TestPingAfterClose(t *testing.T) {
	s, err := sqlite.New(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Ping(context.Background()), organictrace.ErrStoreClosed)
}
