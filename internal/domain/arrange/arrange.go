// Package arrange computes window arrangement plans: cascade, horizontal and
// vertical tiling, and gathering off-viewport windows back into view.
//
// Plans are pure: they map window ids to target rectangles without touching
// state. The reducer applies a whole plan as one atomic transition, so manual
// and programmatic repositioning share a single code path.
package arrange

import (
	"sort"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// SortByStack orders windows bottom-of-stack first, giving every arrangement
// a stable visiting order.
func SortByStack(ws []*types.WindowEntity) {
	sort.Slice(ws, func(i, j int) bool { return ws[i].StackIndex < ws[j].StackIndex })
}

// Cascade assigns each window the previous one's position plus a fixed
// diagonal step, wrapping back toward the origin when a window would exceed
// the viewport. Sizes are left unchanged. Windows must be pre-sorted.
func Cascade(ws []*types.WindowEntity, offset types.Position, vp types.Size, origin types.Position, step int) map[string]types.Rect {
	if len(ws) == 0 {
		return nil
	}

	// Arrangements work in the currently visible region of the canvas.
	visOrigin := types.Position{X: -offset.X + origin.X, Y: -offset.Y + origin.Y}

	plan := make(map[string]types.Rect, len(ws))
	pos := visOrigin
	for _, w := range ws {
		exceedsX := pos.X+w.Size.Width > -offset.X+vp.Width
		exceedsY := pos.Y+w.Size.Height > -offset.Y+vp.Height
		if pos != visOrigin && (exceedsX || exceedsY) {
			pos = visOrigin
		}
		plan[w.ID] = types.Rect{Position: pos, Size: w.Size}
		pos.X += step
		pos.Y += step
	}
	return plan
}

// TileHorizontal partitions the viewport width evenly across the windows,
// each filling the full viewport height. Windows must be pre-sorted.
func TileHorizontal(ws []*types.WindowEntity, offset types.Position, vp types.Size) map[string]types.Rect {
	n := len(ws)
	if n == 0 {
		return nil
	}

	plan := make(map[string]types.Rect, n)
	slice := vp.Width / n
	x := -offset.X
	for i, w := range ws {
		width := slice
		if i == n-1 {
			// Last window absorbs the integer-division remainder.
			width = vp.Width - slice*(n-1)
		}
		plan[w.ID] = types.Rect{
			Position: types.Position{X: x, Y: -offset.Y},
			Size:     types.Size{Width: width, Height: vp.Height},
		}
		x += width
	}
	return plan
}

// TileVertical partitions the viewport height evenly across the windows,
// each filling the full viewport width. Windows must be pre-sorted.
func TileVertical(ws []*types.WindowEntity, offset types.Position, vp types.Size) map[string]types.Rect {
	n := len(ws)
	if n == 0 {
		return nil
	}

	plan := make(map[string]types.Rect, n)
	slice := vp.Height / n
	y := -offset.Y
	for i, w := range ws {
		height := slice
		if i == n-1 {
			height = vp.Height - slice*(n-1)
		}
		plan[w.ID] = types.Rect{
			Position: types.Position{X: -offset.X, Y: y},
			Size:     types.Size{Width: vp.Width, Height: height},
		}
		y += height
	}
	return plan
}

// visibleRegion is the rectangle of the canvas currently on screen.
func visibleRegion(offset types.Position, vp types.Size) types.Rect {
	return types.Rect{
		Position: types.Position{X: -offset.X, Y: -offset.Y},
		Size:     vp,
	}
}

// HasOffscreen reports whether any normal-state window lies entirely or
// partly outside the current viewport. Minimized windows have no rectangle
// on the canvas and maximized windows always render at the viewport origin,
// so only normal windows count. The same rule decides which windows Gather
// repositions, keeping the query and the action in agreement. Re-derived on
// every call; never persisted.
func HasOffscreen(ws []*types.WindowEntity, offset types.Position, vp types.Size) bool {
	region := visibleRegion(offset, vp)
	for _, w := range ws {
		if w.Lifecycle != types.StateNormal {
			continue
		}
		if !region.Contains(w.Bounds()) {
			return true
		}
	}
	return false
}

// Gather repositions every normal-state window that is entirely or partly
// outside the viewport so its rectangle fits within visible bounds,
// preserving relative order and leaving fully-visible windows untouched.
// Sizes never change.
func Gather(ws []*types.WindowEntity, offset types.Position, vp types.Size) map[string]types.Rect {
	region := visibleRegion(offset, vp)

	plan := make(map[string]types.Rect)
	for _, w := range ws {
		if w.Lifecycle != types.StateNormal {
			continue
		}
		b := w.Bounds()
		if region.Contains(b) {
			continue
		}
		plan[w.ID] = types.Rect{
			Position: types.Position{
				X: fitAxis(b.X, b.Width, region.X, region.Width),
				Y: fitAxis(b.Y, b.Height, region.Y, region.Height),
			},
			Size: w.Size,
		}
	}
	return plan
}

// fitAxis moves a span the minimum distance needed to fit inside the region;
// spans wider than the region align to its near edge.
func fitAxis(pos, length, regionPos, regionLen int) int {
	if pos < regionPos {
		return regionPos
	}
	if pos+length > regionPos+regionLen {
		moved := regionPos + regionLen - length
		if moved < regionPos {
			return regionPos
		}
		return moved
	}
	return pos
}
