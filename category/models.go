// Package category defines the single current categorization of a batch.
package category

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// MaxTags is the upper bound on the tag set of one record.
const MaxTags = 10

// Record is a batch's current category and tag set. There is exactly one per
// batch; each write overwrites the previous record, no history is kept. The
// category label is an open string field; no enumeration is enforced.
type Record struct {
	BatchID   id.BatchID   `json:"batch_id"`
	Category  string       `json:"category"`
	Tags      []string     `json:"tags"`
	UpdatedAt types.Height `json:"updated_at"`
}

// SetEvent is emitted after a batch's category is set.
type SetEvent struct {
	EventID  id.EventID `json:"event_id"`
	BatchID  id.BatchID `json:"batch_id"`
	Category string     `json:"category"`
}
