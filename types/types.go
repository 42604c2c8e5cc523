// Package types provides common primitive types used across OrganicTrace.
package types

import (
	"encoding/hex"
	"fmt"
)

// Account is an opaque reference to a caller identity. The ledger never
// interprets it; ownership and authorization checks compare accounts for
// equality only.
type Account string

// IsZero reports whether the account is the empty reference.
func (a Account) IsZero() bool { return a == "" }

// String returns the raw account reference.
func (a Account) String() string { return string(a) }

// Height is a monotonically non-decreasing logical timestamp supplied by an
// external clock source. All timestamp fields in the ledger are heights; the
// ledger itself never reads wall-clock time.
type Height uint64

// Add returns the height advanced by d.
func (h Height) Add(d Height) Height { return h + d }

// Hash is a batch integrity hash. A valid hash is non-empty; the ledger does
// not otherwise constrain its length or contents.
type Hash []byte

// IsZero reports whether the hash is empty.
func (h Hash) IsZero() bool { return len(h) == 0 }

// String returns the hex encoding of the hash.
func (h Hash) String() string { return hex.EncodeToString(h) }

// Equal reports whether two hashes are byte-for-byte identical.
func (h Hash) Equal(other Hash) bool {
	if len(h) != len(other) {
		return false
	}
	for i := range h {
		if h[i] != other[i] {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler using hex encoding.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*h = nil
		return nil
	}

	decoded, err := hex.DecodeString(string(data))
	if err != nil {
		return fmt.Errorf("types: decode hash %q: %w", string(data), err)
	}

	*h = decoded
	return nil
}
