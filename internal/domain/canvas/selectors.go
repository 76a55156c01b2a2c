package canvas

import (
	"sort"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// Selectors derive views from CanvasState functionally on every call. Nothing
// here is cached: derived state can never drift from the canonical store.

// GetWindow returns the window with the given id.
func GetWindow(s *types.CanvasState, id string) (*types.WindowEntity, bool) {
	w, ok := s.Windows[id]
	return w, ok
}

// ListVisible returns all non-minimized windows in stack order (bottom first).
func ListVisible(s *types.CanvasState) []*types.WindowEntity {
	out := make([]*types.WindowEntity, 0, len(s.Windows))
	for _, w := range s.Windows {
		if w.Visible() {
			out = append(out, w)
		}
	}
	sortByStack(out)
	return out
}

// ListMinimized returns all minimized windows in stack order; this is the
// taskbar's source of truth.
func ListMinimized(s *types.CanvasState) []*types.WindowEntity {
	out := make([]*types.WindowEntity, 0, len(s.Windows))
	for _, w := range s.Windows {
		if !w.Visible() {
			out = append(out, w)
		}
	}
	sortByStack(out)
	return out
}

// Focused returns the focused window, if any.
func Focused(s *types.CanvasState) (*types.WindowEntity, bool) {
	for _, w := range s.Windows {
		if w.Focused {
			return w, true
		}
	}
	return nil, false
}

// ComputeStats summarizes the state for health and metrics surfaces.
func ComputeStats(s *types.CanvasState) types.Stats {
	stats := types.Stats{}
	for _, w := range s.Windows {
		stats.TotalWindows++
		if w.Visible() {
			stats.VisibleWindows++
		} else {
			stats.MinimizedWindows++
		}
		if w.Pinned {
			stats.PinnedWindows++
		}
		if w.Focused {
			id := w.ID
			stats.FocusedID = &id
		}
	}
	return stats
}

func sortByStack(ws []*types.WindowEntity) {
	sort.Slice(ws, func(i, j int) bool { return ws[i].StackIndex < ws[j].StackIndex })
}
