package viewport

import (
	"sync"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// Tracker is the default Provider: it holds the physical viewport size last
// reported by the client and hands it to whoever builds viewport-dependent
// actions.
type Tracker struct {
	mu   sync.RWMutex
	size types.Size
}

// NewTracker creates a tracker with an initial size.
func NewTracker(initial types.Size) *Tracker {
	return &Tracker{size: initial}
}

// Set records a reported viewport size. Zero or negative dimensions are
// ignored; a hidden or zero-sized client keeps the last usable value.
func (t *Tracker) Set(size types.Size) {
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	t.mu.Lock()
	t.size = size
	t.mu.Unlock()
}

// Viewport returns the last reported size.
func (t *Tracker) Viewport() types.Size {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}
