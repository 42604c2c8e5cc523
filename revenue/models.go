// Package revenue defines percentage-based revenue allocations per batch.
package revenue

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Percentage bounds for one share, inclusive.
const (
	MinPercentage = 1
	MaxPercentage = 100
)

// Share is a revenue allocation keyed by (batch, participant). Setting a
// share overwrites the prior record and resets TotalReceived to zero —
// re-setting a share wipes prior accrual tracking. Nothing in this ledger
// ever increments TotalReceived; accrual and payout belong to an external
// collaborator. The sum of all shares for a batch is never checked
// against 100.
type Share struct {
	BatchID       id.BatchID    `json:"batch_id"`
	Participant   types.Account `json:"participant"`
	Percentage    uint8         `json:"percentage"`
	TotalReceived uint64        `json:"total_received"`
	UpdatedAt     types.Height  `json:"updated_at"`
}

// ShareSetEvent is emitted after a revenue share is set.
type ShareSetEvent struct {
	EventID     id.EventID    `json:"event_id"`
	BatchID     id.BatchID    `json:"batch_id"`
	Participant types.Account `json:"participant"`
	Percentage  uint8         `json:"percentage"`
}
