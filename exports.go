package organictrace

import (
	"github.com/bigshegs18/OrganicTrace/id"
	"github.com/bigshegs18/OrganicTrace/types"
)

// Re-export common types for convenience so users don't have to import types package.

// Account is re-exported from types package.
type Account = types.Account

// Height is re-exported from types package.
type Height = types.Height

// Hash is re-exported from types package.
type Hash = types.Hash

// BatchID is re-exported from id package.
type BatchID = id.BatchID

// EventID is re-exported from id package.
type EventID = id.EventID

// Re-export parsers
var (
	ParseBatchID = id.ParseBatchID
	ParseEventID = id.ParseEventID
)
