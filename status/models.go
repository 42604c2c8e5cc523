// Package status defines the single current lifecycle status of a batch.
package status

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Record is a batch's current status, overwritten on each write. The status
// label is free-form: any caller-supplied string is accepted, no enumerated
// state set is enforced.
type Record struct {
	BatchID   id.BatchID   `json:"batch_id"`
	Status    string       `json:"status"`
	Visible   bool         `json:"visible"`
	UpdatedAt types.Height `json:"updated_at"`
}

// SetEvent is emitted after a batch's status is set.
type SetEvent struct {
	EventID id.EventID `json:"event_id"`
	BatchID id.BatchID `json:"batch_id"`
	Status  string     `json:"status"`
	Visible bool       `json:"visible"`
}
