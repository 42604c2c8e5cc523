// Package license defines time-bounded usage grants per (batch, licensee).
package license

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Record is a license grant keyed by (batch, licensee). Expiry is fixed at
// grant time and never recomputed.
//
// Active and expiry are two independent lifecycle signals, not a unified
// one: revocation flips Active without touching Expiry, and the active-query
// path filters on Expiry without consulting Active. A license can therefore
// be Active=true yet already expired, or revoked yet still unexpired.
type Record struct {
	BatchID   id.BatchID    `json:"batch_id"`
	Licensee  types.Account `json:"licensee"`
	Expiry    types.Height  `json:"expiry"`
	Terms     string        `json:"terms"`
	Active    bool          `json:"active"`
	GrantedAt types.Height  `json:"granted_at"`
}

// Expired reports whether the grant's expiry has been reached at the given
// height. A zero-duration grant expires at the height it was issued.
func (r *Record) Expired(now types.Height) bool {
	return r.Expiry <= now
}

// GrantedEvent is emitted after a license is granted or re-granted.
type GrantedEvent struct {
	EventID  id.EventID    `json:"event_id"`
	BatchID  id.BatchID    `json:"batch_id"`
	Licensee types.Account `json:"licensee"`
	Expiry   types.Height  `json:"expiry"`
}

// RevokedEvent is emitted after a license is revoked.
type RevokedEvent struct {
	EventID  id.EventID    `json:"event_id"`
	BatchID  id.BatchID    `json:"batch_id"`
	Licensee types.Account `json:"licensee"`
}
