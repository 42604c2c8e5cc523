// Package batch defines the primary batch record of the OrganicTrace ledger.
package batch

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Batch represents one traceable lot of produce. A batch identity, once
// minted, is never reassigned or deleted. CurrentOwner is the single source
// of truth for every owner-gated mutation; there is no separate ownership
// table to keep in sync.
type Batch struct {
	ID           id.BatchID    `json:"id"`
	Origin       types.Account `json:"origin"`
	CropType     string        `json:"crop_type"`
	HarvestedAt  types.Height  `json:"harvested_at"`
	Hash         types.Hash    `json:"hash"`
	Metadata     string        `json:"metadata"`
	Creator      types.Account `json:"creator"`
	CreatedAt    types.Height  `json:"created_at"`
	CurrentOwner types.Account `json:"current_owner"`
}

// OwnedBy reports whether the account is the batch's current owner.
func (b *Batch) OwnedBy(account types.Account) bool {
	return b.CurrentOwner == account
}
