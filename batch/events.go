package batch

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// CreatedEvent is emitted after a batch is minted.
type CreatedEvent struct {
	EventID id.EventID    `json:"event_id"`
	BatchID id.BatchID    `json:"batch_id"`
	Creator types.Account `json:"creator"`
}

// TransferredEvent is emitted after batch ownership changes hands.
type TransferredEvent struct {
	EventID id.EventID    `json:"event_id"`
	BatchID id.BatchID    `json:"batch_id"`
	From    types.Account `json:"from"`
	To      types.Account `json:"to"`
}

// PausedEvent is emitted when the admin pauses batch creation.
type PausedEvent struct {
	EventID id.EventID    `json:"event_id"`
	By      types.Account `json:"by"`
}

// UnpausedEvent is emitted when the admin restores batch creation.
type UnpausedEvent struct {
	EventID id.EventID    `json:"event_id"`
	By      types.Account `json:"by"`
}
