package organictrace_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	trace "github.com/bigshegs18/OrganicTrace"
	"github.com/bigshegs18/OrganicTrace/authz"
	"github.com/bigshegs18/OrganicTrace/batch"
	"github.com/bigshegs18/OrganicTrace/clock"
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/license"
	"github.com/bigshegs18/OrganicTrace/store/memory"
	"github.com/bigshegs18/OrganicTrace/types"
)

const (
	admin       = types.Account("acct_admin")
	producer    = types.Account("acct_farm_co")
	distributor = types.Account("acct_distributor")
	retailer    = types.Account("acct_retailer")
	outsider    = types.Account("acct_outsider")
)

func testHash(b byte) types.Hash {
	h := make(types.Hash, 32)
	for i := range h {
		h[i] = b
	}
	return h
}

// recordingHook captures every event it observes, for asserting that
// mutations emit exactly what they should.
type recordingHook struct {
	mu       sync.Mutex
	created  []batch.CreatedEvent
	moved    []batch.TransferredEvent
	paused   int
	unpaused int
	granted  []license.GrantedEvent
}

func (h *recordingHook) Name() string { return "recording" }

func (h *recordingHook) OnBatchCreated(_ context.Context, evt batch.CreatedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.created = append(h.created, evt)
	return nil
}

func (h *recordingHook) OnOwnershipTransferred(_ context.Context, evt batch.TransferredEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.moved = append(h.moved, evt)
	return nil
}

func (h *recordingHook) OnPaused(_ context.Context, _ batch.PausedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paused++
	return nil
}

func (h *recordingHook) OnUnpaused(_ context.Context, _ batch.UnpausedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unpaused++
	return nil
}

func (h *recordingHook) OnLicenseGranted(_ context.Context, evt license.GrantedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.granted = append(h.granted, evt)
	return nil
}

func newTestLedger(t *testing.T, opts ...trace.Option) (*trace.Ledger, *clock.Manual, *recordingHook) {
	t.Helper()

	clk := clock.NewManual(100)
	hk := &recordingHook{}
	opts = append([]trace.Option{trace.WithClock(clk), trace.WithHook(hk)}, opts...)

	l := trace.New(memory.New(), authz.NewStatic(admin, producer), opts...)
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	t.Cleanup(func() { _ = l.Stop() })

	return l, clk, hk
}

func mustCreate(t *testing.T, l *trace.Ledger, caller types.Account) id.BatchID {
	t.Helper()

	batchID, err := l.CreateBatch(context.Background(), caller, trace.CreateBatchInput{
		Origin:      caller,
		CropType:    "heirloom tomato",
		HarvestedAt: 90,
		Hash:        testHash(0xAB),
		Metadata:    "lot 7, field 3",
	})
	if err != nil {
		t.Fatalf("create batch failed: %v", err)
	}
	return batchID
}

// ──────────────────────────────────────────────────
// Batch registry
// ──────────────────────────────────────────────────

func TestCreateBatch(t *testing.T) {
	l, clk, hk := newTestLedger(t)
	ctx := context.Background()

	batchID, err := l.CreateBatch(ctx, producer, trace.CreateBatchInput{
		Origin:      producer,
		CropType:    "heirloom tomato",
		HarvestedAt: 90,
		Hash:        testHash(0x01),
		Metadata:    "lot 7",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if batchID != 1 {
		t.Errorf("expected first batch id 1, got %d", batchID)
	}

	b, err := l.GetBatch(ctx, batchID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if b.Creator != producer {
		t.Errorf("expected creator %q, got %q", producer, b.Creator)
	}
	if b.CurrentOwner != producer {
		t.Errorf("expected initial owner %q, got %q", producer, b.CurrentOwner)
	}
	if b.CreatedAt != clk.Height() {
		t.Errorf("expected created_at %d, got %d", clk.Height(), b.CreatedAt)
	}
	if !b.Hash.Equal(testHash(0x01)) {
		t.Error("stored hash does not match input")
	}

	if len(hk.created) != 1 {
		t.Fatalf("expected 1 created event, got %d", len(hk.created))
	}
	if hk.created[0].BatchID != batchID || hk.created[0].Creator != producer {
		t.Errorf("created event mismatch: %+v", hk.created[0])
	}
	if hk.created[0].EventID.IsNil() {
		t.Error("created event carries nil event id")
	}
}

func TestCreateBatchIDsAreSequential(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	for want := id.BatchID(1); want <= 5; want++ {
		got := mustCreate(t, l, producer)
		if got != want {
			t.Fatalf("expected id %d, got %d", want, got)
		}
	}

	counter, err := l.Counter(ctx)
	if err != nil {
		t.Fatalf("counter failed: %v", err)
	}
	if counter != 5 {
		t.Errorf("expected counter 5, got %d", counter)
	}
}

func TestCreateBatchAuthorization(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  types.Account
		wantErr error
	}{
		{"admin allowed", admin, nil},
		{"producer allowed", producer, nil},
		{"outsider rejected", outsider, trace.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.CreateBatch(ctx, tt.caller, trace.CreateBatchInput{
				Hash: testHash(0x02),
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateBatchValidation(t *testing.T) {
	l, _, _ := newTestLedger(t, trace.WithMaxMetadataLen(8))
	ctx := context.Background()

	_, err := l.CreateBatch(ctx, producer, trace.CreateBatchInput{Hash: nil})
	if !errors.Is(err, trace.ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash for empty hash, got %v", err)
	}

	_, err = l.CreateBatch(ctx, producer, trace.CreateBatchInput{
		Hash:     testHash(0x03),
		Metadata: "far too long for this ledger",
	})
	if !errors.Is(err, trace.ErrMetadataTooLong) {
		t.Errorf("expected ErrMetadataTooLong, got %v", err)
	}

	// A failed create must not consume an identity.
	counter, err := l.Counter(ctx)
	if err != nil {
		t.Fatalf("counter failed: %v", err)
	}
	if counter != 0 {
		t.Errorf("failed creates consumed ids: counter %d", counter)
	}
}

func TestGetBatchUnknownID(t *testing.T) {
	l, _, _ := newTestLedger(t)

	_, err := l.GetBatch(context.Background(), 99)
	if !errors.Is(err, trace.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if !trace.IsNotFound(err) {
		t.Error("IsNotFound should report true")
	}
}

// ──────────────────────────────────────────────────
// Ownership
// ──────────────────────────────────────────────────

func TestTransferOwnership(t *testing.T) {
	l, _, hk := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.TransferOwnership(ctx, producer, batchID, distributor); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	owner, err := l.GetOwner(ctx, batchID)
	if err != nil {
		t.Fatalf("get owner failed: %v", err)
	}
	if owner != distributor {
		t.Errorf("expected owner %q, got %q", distributor, owner)
	}

	// The previous owner lost all gated rights with the transfer.
	err = l.TransferOwnership(ctx, producer, batchID, retailer)
	if !errors.Is(err, trace.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for previous owner, got %v", err)
	}

	// The new owner can chain a further transfer.
	if err := l.TransferOwnership(ctx, distributor, batchID, retailer); err != nil {
		t.Fatalf("chained transfer failed: %v", err)
	}

	if len(hk.moved) != 2 {
		t.Fatalf("expected 2 transfer events, got %d", len(hk.moved))
	}
	if hk.moved[0].From != producer || hk.moved[0].To != distributor {
		t.Errorf("first transfer event mismatch: %+v", hk.moved[0])
	}
	if hk.moved[1].From != distributor || hk.moved[1].To != retailer {
		t.Errorf("second transfer event mismatch: %+v", hk.moved[1])
	}
}

func TestTransferOwnershipToSelf(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.TransferOwnership(ctx, producer, batchID, producer); err != nil {
		t.Fatalf("self-transfer should succeed: %v", err)
	}

	owner, err := l.GetOwner(ctx, batchID)
	if err != nil {
		t.Fatalf("get owner failed: %v", err)
	}
	if owner != producer {
		t.Errorf("expected owner %q, got %q", producer, owner)
	}
}

func TestTransferOwnershipUnknownBatch(t *testing.T) {
	l, _, _ := newTestLedger(t)

	err := l.TransferOwnership(context.Background(), producer, 404, distributor)
	if !errors.Is(err, trace.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Version history
// ──────────────────────────────────────────────────

func TestRegisterVersion(t *testing.T) {
	l, clk, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.RegisterVersion(ctx, producer, batchID, 1, testHash(0x10), "initial"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	r, err := l.GetVersion(ctx, batchID, 1)
	if err != nil {
		t.Fatalf("get version failed: %v", err)
	}
	if r.Notes != "initial" {
		t.Errorf("expected notes %q, got %q", "initial", r.Notes)
	}
	if r.CreatedAt != clk.Height() {
		t.Errorf("expected created_at %d, got %d", clk.Height(), r.CreatedAt)
	}
}

func TestRegisterVersionWriteOnce(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.RegisterVersion(ctx, producer, batchID, 1, testHash(0x10), "first"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err := l.RegisterVersion(ctx, producer, batchID, 1, testHash(0x11), "overwrite attempt")
	if !errors.Is(err, trace.ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}

	// The original record is untouched.
	r, err := l.GetVersion(ctx, batchID, 1)
	if err != nil {
		t.Fatalf("get version failed: %v", err)
	}
	if !r.Hash.Equal(testHash(0x10)) || r.Notes != "first" {
		t.Errorf("first record was modified: %+v", r)
	}
}

func TestRegisterVersionNumbersAreCallerChosen(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	// Out of order and non-contiguous numbers are all accepted.
	for _, v := range []uint64{7, 3, 100} {
		if err := l.RegisterVersion(ctx, producer, batchID, v, testHash(byte(v)), ""); err != nil {
			t.Fatalf("register version %d failed: %v", v, err)
		}
	}

	list, err := l.ListVersions(ctx, batchID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(list))
	}
	for i, want := range []uint64{3, 7, 100} {
		if list[i].Version != want {
			t.Errorf("expected version %d at index %d, got %d", want, i, list[i].Version)
		}
	}
}

func TestRegisterVersionGates(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	err := l.RegisterVersion(ctx, outsider, batchID, 1, testHash(0x10), "")
	if !errors.Is(err, trace.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	err = l.RegisterVersion(ctx, producer, batchID, 1, nil, "")
	if !errors.Is(err, trace.ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Licenses
// ──────────────────────────────────────────────────

func TestGrantLicense(t *testing.T) {
	l, clk, hk := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.GrantLicense(ctx, producer, batchID, retailer, 50, "resale"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	r, err := l.ActiveLicense(ctx, batchID, retailer)
	if err != nil {
		t.Fatalf("active license lookup failed: %v", err)
	}
	if r.Expiry != clk.Height()+50 {
		t.Errorf("expected expiry %d, got %d", clk.Height()+50, r.Expiry)
	}
	if r.Terms != "resale" {
		t.Errorf("expected terms %q, got %q", "resale", r.Terms)
	}

	if len(hk.granted) != 1 {
		t.Fatalf("expected 1 granted event, got %d", len(hk.granted))
	}
	if hk.granted[0].Licensee != retailer || hk.granted[0].Expiry != r.Expiry {
		t.Errorf("granted event mismatch: %+v", hk.granted[0])
	}
}

func TestLicenseExpiry(t *testing.T) {
	l, clk, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.GrantLicense(ctx, producer, batchID, retailer, 10, ""); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	// One height before expiry the grant is still active.
	clk.Advance(9)
	if _, err := l.ActiveLicense(ctx, batchID, retailer); err != nil {
		t.Fatalf("expected active license at height %d: %v", clk.Height(), err)
	}

	// At the expiry height it is gone: expiry is exclusive.
	clk.Advance(1)
	if _, err := l.ActiveLicense(ctx, batchID, retailer); !errors.Is(err, trace.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID at expiry height, got %v", err)
	}

	// The raw record survives expiry.
	if _, err := l.GetLicense(ctx, batchID, retailer); err != nil {
		t.Errorf("raw record should survive expiry: %v", err)
	}
}

func TestGrantLicenseZeroDuration(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	// A zero duration grant is accepted but born expired.
	if err := l.GrantLicense(ctx, producer, batchID, retailer, 0, ""); err != nil {
		t.Fatalf("zero-duration grant should be accepted: %v", err)
	}
	if _, err := l.ActiveLicense(ctx, batchID, retailer); !errors.Is(err, trace.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID for born-expired grant, got %v", err)
	}
}

func TestRevokeLicenseIsIndependentOfExpiry(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.GrantLicense(ctx, producer, batchID, retailer, 100, ""); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := l.RevokeLicense(ctx, producer, batchID, retailer); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	// Revocation flips the flag but does not hide the unexpired grant.
	r, err := l.ActiveLicense(ctx, batchID, retailer)
	if err != nil {
		t.Fatalf("unexpired revoked grant should still be returned: %v", err)
	}
	if r.Active {
		t.Error("expected active flag false after revoke")
	}
}

func TestRegrantReplacesTerms(t *testing.T) {
	l, clk, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.GrantLicense(ctx, producer, batchID, retailer, 10, "old"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := l.RevokeLicense(ctx, producer, batchID, retailer); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := l.GrantLicense(ctx, producer, batchID, retailer, 200, "new"); err != nil {
		t.Fatalf("re-grant failed: %v", err)
	}

	r, err := l.GetLicense(ctx, batchID, retailer)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if r.Terms != "new" || !r.Active || r.Expiry != clk.Height()+200 {
		t.Errorf("re-grant did not replace prior terms: %+v", r)
	}
}

// ──────────────────────────────────────────────────
// Categorization
// ──────────────────────────────────────────────────

func TestSetCategory(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.SetCategory(ctx, producer, batchID, "produce", []string{"organic", "local"}); err != nil {
		t.Fatalf("set category failed: %v", err)
	}

	// A later set overwrites entirely; no history is kept.
	if err := l.SetCategory(ctx, producer, batchID, "export", nil); err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	r, err := l.GetCategory(ctx, batchID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if r.Category != "export" {
		t.Errorf("expected category %q, got %q", "export", r.Category)
	}
	if len(r.Tags) != 0 {
		t.Errorf("expected tags cleared, got %v", r.Tags)
	}
}

func TestSetCategoryTagBound(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	ten := make([]string, 10)
	if err := l.SetCategory(ctx, producer, batchID, "produce", ten); err != nil {
		t.Fatalf("10 tags should be accepted: %v", err)
	}

	eleven := make([]string, 11)
	if err := l.SetCategory(ctx, producer, batchID, "produce", eleven); !errors.Is(err, trace.ErrTooManyTags) {
		t.Errorf("expected ErrTooManyTags, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Collaborators
// ──────────────────────────────────────────────────

func TestAddCollaborator(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.AddCollaborator(ctx, producer, batchID, distributor, "inspector", []string{"read"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// The grant is write-once.
	err := l.AddCollaborator(ctx, producer, batchID, distributor, "auditor", nil)
	if !errors.Is(err, trace.ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}

	r, err := l.GetCollaborator(ctx, batchID, distributor)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if r.Role != "inspector" {
		t.Errorf("first grant was modified: role %q", r.Role)
	}
}

func TestAddCollaboratorPermissionBound(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	six := make([]string, 6)
	err := l.AddCollaborator(ctx, producer, batchID, distributor, "inspector", six)
	if !errors.Is(err, trace.ErrTooManyPermissions) {
		t.Errorf("expected ErrTooManyPermissions, got %v", err)
	}

	five := make([]string, 5)
	if err := l.AddCollaborator(ctx, producer, batchID, distributor, "inspector", five); err != nil {
		t.Fatalf("5 permissions should be accepted: %v", err)
	}
}

func TestCollaboratorsSurviveOwnershipTransfer(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.AddCollaborator(ctx, producer, batchID, retailer, "inspector", nil); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := l.TransferOwnership(ctx, producer, batchID, distributor); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	list, err := l.ListCollaborators(ctx, batchID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].Collaborator != retailer {
		t.Errorf("collaborator grant should survive transfer: %+v", list)
	}
}

// ──────────────────────────────────────────────────
// Status
// ──────────────────────────────────────────────────

func TestSetStatus(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.SetStatus(ctx, producer, batchID, "in transit", true); err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if err := l.SetStatus(ctx, producer, batchID, "delivered", false); err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	r, err := l.GetStatus(ctx, batchID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if r.Status != "delivered" || r.Visible {
		t.Errorf("expected latest status only: %+v", r)
	}
}

// ──────────────────────────────────────────────────
// Revenue shares
// ──────────────────────────────────────────────────

func TestSetRevenueShare(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	tests := []struct {
		name       string
		percentage uint8
		wantErr    error
	}{
		{"zero rejected", 0, trace.ErrInvalidPercentage},
		{"over 100 rejected", 101, trace.ErrInvalidPercentage},
		{"lower bound", 1, nil},
		{"upper bound", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.SetRevenueShare(ctx, producer, batchID, retailer, tt.percentage)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSetRevenueShareResetsReceived(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.SetRevenueShare(ctx, producer, batchID, retailer, 30); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// Updating the percentage zeroes the received accumulator.
	if err := l.SetRevenueShare(ctx, producer, batchID, retailer, 60); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	s, err := l.GetRevenueShare(ctx, batchID, retailer)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if s.Percentage != 60 {
		t.Errorf("expected percentage 60, got %d", s.Percentage)
	}
	if s.TotalReceived != 0 {
		t.Errorf("expected received reset to 0, got %d", s.TotalReceived)
	}
}

func TestSharesAreNotValidatedAgainstATotal(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	// 100 + 100 across participants is allowed.
	if err := l.SetRevenueShare(ctx, producer, batchID, retailer, 100); err != nil {
		t.Fatalf("first share failed: %v", err)
	}
	if err := l.SetRevenueShare(ctx, producer, batchID, distributor, 100); err != nil {
		t.Fatalf("second share failed: %v", err)
	}

	list, err := l.ListRevenueShares(ctx, batchID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 shares, got %d", len(list))
	}
}

// ──────────────────────────────────────────────────
// Pause / unpause
// ──────────────────────────────────────────────────

func TestPauseGatesOnlyCreation(t *testing.T) {
	l, _, hk := newTestLedger(t)
	ctx := context.Background()
	batchID := mustCreate(t, l, producer)

	if err := l.Pause(ctx, admin); err != nil {
		t.Fatalf("pause failed: %v", err)
	}

	paused, err := l.Paused(ctx)
	if err != nil {
		t.Fatalf("paused check failed: %v", err)
	}
	if !paused {
		t.Fatal("expected paused state")
	}

	_, err = l.CreateBatch(ctx, producer, trace.CreateBatchInput{Hash: testHash(0x05)})
	if !errors.Is(err, trace.ErrUnauthorized) {
		t.Errorf("expected creation blocked while paused, got %v", err)
	}

	// Every other mutation still works on existing batches.
	if err := l.TransferOwnership(ctx, producer, batchID, distributor); err != nil {
		t.Errorf("transfer should work while paused: %v", err)
	}
	if err := l.RegisterVersion(ctx, distributor, batchID, 1, testHash(0x06), ""); err != nil {
		t.Errorf("version register should work while paused: %v", err)
	}
	if err := l.SetStatus(ctx, distributor, batchID, "held", true); err != nil {
		t.Errorf("status set should work while paused: %v", err)
	}

	if err := l.Unpause(ctx, admin); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}
	if _, err := l.CreateBatch(ctx, producer, trace.CreateBatchInput{Hash: testHash(0x07)}); err != nil {
		t.Errorf("creation should resume after unpause: %v", err)
	}

	if hk.paused != 1 || hk.unpaused != 1 {
		t.Errorf("expected 1 paused and 1 unpaused event, got %d/%d", hk.paused, hk.unpaused)
	}
}

func TestPauseIsAdminOnly(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	if err := l.Pause(ctx, producer); !errors.Is(err, trace.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for producer pause, got %v", err)
	}
	if err := l.Unpause(ctx, producer); !errors.Is(err, trace.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for producer unpause, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Error classification
// ──────────────────────────────────────────────────

func TestErrorClassifiers(t *testing.T) {
	if !trace.IsAuthFailure(trace.ErrUnauthorized) || !trace.IsAuthFailure(trace.ErrNotOwner) {
		t.Error("auth errors should classify as auth failures")
	}
	if !trace.IsValidation(trace.ErrInvalidHash) || !trace.IsValidation(trace.ErrInvalidPercentage) {
		t.Error("input errors should classify as validation")
	}
	if trace.IsNotFound(trace.ErrUnauthorized) {
		t.Error("auth error should not classify as not-found")
	}
}
