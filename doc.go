// Package organictrace provides an embeddable batch ledger for traceable
// physical inventory.
//
// OrganicTrace is designed as a library, not a service. Import it directly
// into your Go application and wire it to a store driver. It provides:
//
//   - A batch registry with strictly increasing identities and a
//     transferable single owner per batch
//   - Append-only version history keyed by (batch, version)
//   - Expiring license grants with independent revocation
//   - Category, collaborator, status, and revenue-share registries
//     scoped to each batch
//   - Admin pause/unpause of batch creation
//   - Structured lifecycle events via a typed hook registry
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    trace "github.com/bigshegs18/OrganicTrace"
//	    "github.com/bigshegs18/OrganicTrace/authz"
//	    "github.com/bigshegs18/OrganicTrace/store/sqlite"
//	)
//
//	// Initialize store
//	st, err := sqlite.New("trace.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create ledger
//	l := trace.New(st, authz.NewStatic("acct_admin", "acct_farm_co"))
//
//	// Start the ledger (runs migrations)
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// Batches are the root entity. The admin and authorized producers mint
// them; the creator becomes the first owner:
//
//	batchID, err := l.CreateBatch(ctx, "acct_farm_co", trace.CreateBatchInput{
//	    Origin:   "acct_farm_co",
//	    CropType: "heirloom tomato",
//	    Hash:     docHash,
//	})
//
// Everything else hangs off a batch and is gated by its current owner:
//
//	err = l.RegisterVersion(ctx, "acct_farm_co", batchID, 1, revisedHash, "relabel")
//	err = l.GrantLicense(ctx, "acct_farm_co", batchID, "acct_retailer", 1000, "resale")
//	err = l.TransferOwnership(ctx, "acct_farm_co", batchID, "acct_distributor")
//
// Time is a logical height supplied by a clock.Clock; inject clock.Manual
// in tests to make expiry and timestamps deterministic.
//
// # Stores
//
// Two drivers ship with the library: store/memory for tests and embedded
// use, and store/sqlite for durable single-writer deployments. Both
// implement the full store.Store interface.
//
// # Hooks
//
// Hooks observe lifecycle events without participating in them. Register
// them at construction:
//
//	l := trace.New(st, auth, trace.WithHook(myHook))
//
// The audithook package provides a ready-made hook that forwards every
// event to an audit Recorder.
package organictrace
