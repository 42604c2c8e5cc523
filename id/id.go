// Package id defines identity types for OrganicTrace entities.
//
// Batch identity is deliberately NOT globally unique or random: batches are
// numbered by a strictly increasing, never-reused counter owned by the batch
// registry, so BatchID is a plain integer newtype. Emitted ledger events, by
// contrast, carry a TypeID-based EventID ("evt_...") that is K-sortable,
// globally unique, and URL-safe.
package id

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"go.jetify.com/typeid/v2"
)

// ──────────────────────────────────────────────────
// BatchID
// ──────────────────────────────────────────────────

// BatchID identifies a batch. IDs are allocated by the registry counter
// starting at 1; zero is the invalid sentinel.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type BatchID uint64

// IsZero reports whether the ID is the invalid zero value.
func (b BatchID) IsZero() bool { return b == 0 }

// String returns the decimal representation of the ID.
func (b BatchID) String() string { return strconv.FormatUint(uint64(b), 10) }

// ParseBatchID parses a decimal batch ID string.
func ParseBatchID(s string) (BatchID, error) {
	if s == "" {
		return 0, fmt.Errorf("id: parse batch id %q: empty string", s)
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id: parse batch id %q: %w", s, err)
	}

	return BatchID(n), nil
}

// MarshalText implements encoding.TextMarshaler.
func (b BatchID) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BatchID) UnmarshalText(data []byte) error {
	parsed, err := ParseBatchID(string(data))
	if err != nil {
		return err
	}

	*b = parsed
	return nil
}

// Value implements driver.Valuer for database storage.
func (b BatchID) Value() (driver.Value, error) {
	return int64(b), nil
}

// Scan implements sql.Scanner for database retrieval.
func (b *BatchID) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*b = BatchID(v)
		return nil
	case string:
		return b.UnmarshalText([]byte(v))
	case []byte:
		return b.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into BatchID", src)
	}
}

// ──────────────────────────────────────────────────
// EventID
// ──────────────────────────────────────────────────

// PrefixEvent is the TypeID prefix for ledger events.
const PrefixEvent = "evt"

// EventID is the unique identifier stamped on every emitted ledger event.
type EventID struct {
	inner typeid.TypeID
	valid bool
}

// NilEvent is the zero-value EventID.
var NilEvent EventID

// NewEventID generates a new globally unique event ID.
func NewEventID() EventID {
	tid, err := typeid.Generate(PrefixEvent)
	if err != nil {
		panic(fmt.Sprintf("id: generate event id: %v", err))
	}

	return EventID{inner: tid, valid: true}
}

// ParseEventID parses an event ID string (e.g., "evt_01h2xcejqtf2nbrexx3vqjhp41").
func ParseEventID(s string) (EventID, error) {
	if s == "" {
		return NilEvent, fmt.Errorf("id: parse event id %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return NilEvent, fmt.Errorf("id: parse event id %q: %w", s, err)
	}

	if tid.Prefix() != PrefixEvent {
		return NilEvent, fmt.Errorf("id: expected prefix %q, got %q", PrefixEvent, tid.Prefix())
	}

	return EventID{inner: tid, valid: true}, nil
}

// String returns the full TypeID string ("evt_suffix"), or "" for the nil ID.
func (e EventID) String() string {
	if !e.valid {
		return ""
	}

	return e.inner.String()
}

// IsNil reports whether this EventID is the zero value.
func (e EventID) IsNil() bool { return !e.valid }

// MarshalText implements encoding.TextMarshaler.
func (e EventID) MarshalText() ([]byte, error) {
	if !e.valid {
		return []byte{}, nil
	}

	return []byte(e.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EventID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*e = NilEvent
		return nil
	}

	parsed, err := ParseEventID(string(data))
	if err != nil {
		return err
	}

	*e = parsed
	return nil
}
