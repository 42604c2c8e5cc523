// Package collab defines per-batch collaborator grants.
package collab

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// MaxPermissions is the upper bound on the permission-label list of one grant.
const MaxPermissions = 5

// Record is a collaborator grant keyed by (batch, collaborator). Grants are
// write-once: no update or revoke operation exists, so a collaborator, once
// added, is permanent for that batch.
type Record struct {
	BatchID      id.BatchID    `json:"batch_id"`
	Collaborator types.Account `json:"collaborator"`
	Role         string        `json:"role"`
	Permissions  []string      `json:"permissions"`
	AddedAt      types.Height  `json:"added_at"`
}

// AddedEvent is emitted after a collaborator is added to a batch.
type AddedEvent struct {
	EventID      id.EventID    `json:"event_id"`
	BatchID      id.BatchID    `json:"batch_id"`
	Collaborator types.Account `json:"collaborator"`
	Role         string        `json:"role"`
}
