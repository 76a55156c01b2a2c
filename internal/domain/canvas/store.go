package canvas

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/logging"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/monitoring"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// Store holds the canonical CanvasState and serializes every mutation through
// the reducer. Concurrent dispatches (two pointers dragging two windows)
// are applied one at a time; each sees the other's committed result.
type Store struct {
	mu      sync.RWMutex
	state   *types.CanvasState
	reducer *Reducer

	logger  *logging.Logger
	metrics *monitoring.Metrics

	subMu   sync.Mutex
	subs    map[int]func(*types.CanvasState)
	nextSub int
}

// NewStore creates a store with an empty canvas. metrics may be nil.
func NewStore(cfg Config, logger *logging.Logger, metrics *monitoring.Metrics) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	reducer := NewReducer(cfg)
	return &Store{
		state:   reducer.NewCanvasState(),
		reducer: reducer,
		logger:  logger,
		metrics: metrics,
		subs:    make(map[int]func(*types.CanvasState)),
	}
}

// Dispatch applies one action and reports whether the state changed.
// Subscribers are notified with an isolated snapshot after the swap.
func (st *Store) Dispatch(a Action) bool {
	start := time.Now()

	st.mu.Lock()
	next, changed := st.reducer.Apply(st.state, a)
	var snapshot *types.CanvasState
	if changed {
		st.state = next
		snapshot = next.Clone()
	}
	st.mu.Unlock()

	if st.metrics != nil {
		st.metrics.RecordAction(string(a.Type), changed, time.Since(start))
		if changed {
			if a.Type == ActionOpen {
				st.metrics.WindowsOpened.Inc()
			}
			stats := ComputeStats(snapshot)
			st.metrics.SetWindowGauges(stats.TotalWindows, stats.MinimizedWindows)
		}
	}

	if !changed {
		st.logger.Debug("action ignored",
			zap.String("type", string(a.Type)),
			zap.String("window_id", a.WindowID))
		return false
	}

	st.logger.Debug("action applied",
		zap.String("type", string(a.Type)),
		zap.String("window_id", a.WindowID))

	st.notify(snapshot)
	return true
}

// State returns an isolated snapshot of the current state.
func (st *Store) State() *types.CanvasState {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.Clone()
}

// Get retrieves a copy of one window.
func (st *Store) Get(id string) (*types.WindowEntity, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	w, ok := st.state.Windows[id]
	if !ok {
		return nil, false
	}
	return w.Clone(), true
}

// ListVisible returns copies of all non-minimized windows in stack order.
func (st *Store) ListVisible() []*types.WindowEntity {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return cloneAll(ListVisible(st.state))
}

// ListMinimized returns copies of all minimized windows in stack order.
func (st *Store) ListMinimized() []*types.WindowEntity {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return cloneAll(ListMinimized(st.state))
}

// Stats summarizes the current state.
func (st *Store) Stats() types.Stats {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return ComputeStats(st.state)
}

// Subscribe registers a listener called with a snapshot after every applied
// action. The returned function deregisters it; callers own that lifecycle
// and must release on disconnect so handlers do not leak across connections.
func (st *Store) Subscribe(fn func(*types.CanvasState)) func() {
	st.subMu.Lock()
	idx := st.nextSub
	st.nextSub++
	st.subs[idx] = fn
	st.subMu.Unlock()

	return func() {
		st.subMu.Lock()
		delete(st.subs, idx)
		st.subMu.Unlock()
	}
}

func (st *Store) notify(snapshot *types.CanvasState) {
	st.subMu.Lock()
	listeners := make([]func(*types.CanvasState), 0, len(st.subs))
	for _, fn := range st.subs {
		listeners = append(listeners, fn)
	}
	st.subMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func cloneAll(ws []*types.WindowEntity) []*types.WindowEntity {
	out := make([]*types.WindowEntity, len(ws))
	for i, w := range ws {
		out[i] = w.Clone()
	}
	return out
}
