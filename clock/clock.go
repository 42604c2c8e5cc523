// Package clock supplies the logical timestamp ("current height") consumed
// by the ledger. The ledger reads the height exactly once per call and never
// consults wall-clock time itself.
package clock

import (
	"sync"
	"time"

	"github.com/bigshegs18/OrganicTrace/types"
)

// Clock is an external source of monotonically non-decreasing heights.
// Implementations must be safe for concurrent use.
type Clock interface {
	Height() types.Height
}

// Unix returns a Clock backed by the host's Unix time in seconds. It is the
// default source when none is injected.
func Unix() Clock { return unixClock{} }

type unixClock struct{}

func (unixClock) Height() types.Height {
	return types.Height(time.Now().Unix())
}

// Manual is a hand-advanced Clock for tests and deterministic replay.
// It never moves backwards: Set to a lower height is ignored.
type Manual struct {
	mu sync.RWMutex
	h  types.Height
}

var _ Clock = (*Manual)(nil)

// NewManual creates a Manual clock at the given starting height.
func NewManual(start types.Height) *Manual {
	return &Manual{h: start}
}

// Height implements Clock.
func (m *Manual) Height() types.Height {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.h
}

// Advance moves the clock forward by d heights.
func (m *Manual) Advance(d types.Height) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.h += d
}

// Set moves the clock to h if h is not behind the current height.
func (m *Manual) Set(h types.Height) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h > m.h {
		m.h = h
	}
}
