// Package viewport translates window geometry on the unbounded virtual
// canvas into a navigable viewport: bounding-box computation, scrollbar
// geometry, pan-offset clamping and drag-to-scroll.
//
// Everything here is a pure function of CanvasState plus the physical
// viewport size; nothing is cached between calls.
package viewport

import (
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// MinThumbRatio keeps the scrollbar thumb grabbable: it never shrinks below
// a tenth of the track, and never exceeds the track.
const MinThumbRatio = 0.1

// Bounds computes the axis-aligned bounding box over all non-minimized,
// non-chat windows, expanded by padding on all sides. An empty window set
// yields a zero-size box at the origin.
func Bounds(windows []*types.WindowEntity, padding int) types.Rect {
	first := true
	var minX, minY, maxX, maxY int
	for _, w := range windows {
		if !w.Visible() || w.Kind == types.KindChat {
			continue
		}
		b := w.Bounds()
		if first {
			minX, minY, maxX, maxY = b.X, b.Y, b.Right(), b.Bottom()
			first = false
			continue
		}
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.Right())
		maxY = max(maxY, b.Bottom())
	}
	if first {
		return types.Rect{}
	}
	return types.Rect{
		Position: types.Position{X: minX - padding, Y: minY - padding},
		Size:     types.Size{Width: maxX - minX + 2*padding, Height: maxY - minY + 2*padding},
	}
}

// Effective returns the viewport available to the canvas: the physical area
// minus the docked chat strip. A collapsed strip still occupies its icon
// width; a floating chat occupies nothing.
func Effective(physical types.Size, chat types.ChatPanelConfig, collapsedWidth int) types.Size {
	if chat.Mode != types.ChatDocked {
		return physical
	}
	strip := chat.DockedWidth
	if chat.Collapsed {
		strip = collapsedWidth
	}
	out := physical
	out.Width -= strip
	if out.Width < 0 {
		out.Width = 0
	}
	return out
}

// Scrollbar describes one axis's scrollbar: whether it renders, the thumb
// length as a fraction of the track, and the normalized scroll progress.
type Scrollbar struct {
	Visible  bool    `json:"visible"`
	Thumb    float64 `json:"thumb"`    // Fraction of track length, [MinThumbRatio, 1]
	Progress float64 `json:"progress"` // Normalized thumb position, [0, 1]
}

// Scrollbars derives both axes' scrollbar geometry. An axis scrolls whenever
// the bounds exceed the viewport on it, or extend into negative coordinates,
// or past the viewport's positive extent, i.e. whenever panning is possible
// or necessary to reach every window.
func Scrollbars(bounds types.Rect, vp types.Size, offset types.Position) (horizontal, vertical Scrollbar) {
	horizontal = axisScrollbar(bounds.X, bounds.Width, vp.Width, offset.X)
	vertical = axisScrollbar(bounds.Y, bounds.Height, vp.Height, offset.Y)
	return horizontal, vertical
}

func axisScrollbar(boundsMin, boundsLen, vpLen int, offset int) Scrollbar {
	if boundsLen <= 0 || vpLen <= 0 {
		return Scrollbar{Thumb: 1}
	}

	visible := boundsLen > vpLen || boundsMin < 0 || boundsMin+boundsLen > vpLen

	thumb := float64(vpLen) / float64(boundsLen)
	if thumb < MinThumbRatio {
		thumb = MinThumbRatio
	}
	if thumb > 1 {
		thumb = 1
	}

	progress := 0.0
	if scrollRange := boundsLen - vpLen; scrollRange > 0 {
		progress = float64(-offset-boundsMin) / float64(scrollRange)
		if progress < 0 {
			progress = 0
		}
		if progress > 1 {
			progress = 1
		}
	}

	return Scrollbar{Visible: visible, Thumb: thumb, Progress: progress}
}

// ClampOffset snaps a pan offset into the range where the visible region
// cannot scroll past the padded union of window bounds. When the bounds fit
// inside the viewport the range still admits the nearest valid offset rather
// than rejecting the pan.
func ClampOffset(offset types.Position, bounds types.Rect, vp types.Size) types.Position {
	if bounds.Width == 0 && bounds.Height == 0 {
		return types.Position{}
	}
	return types.Position{
		X: clampAxis(offset.X, bounds.X, bounds.Right(), vp.Width),
		Y: clampAxis(offset.Y, bounds.Y, bounds.Bottom(), vp.Height),
	}
}

func clampAxis(offset, boundsMin, boundsMax, vpLen int) int {
	lo := -(boundsMax - vpLen)
	hi := -boundsMin
	if lo > hi {
		lo, hi = hi, lo
	}
	if offset < lo {
		return lo
	}
	if offset > hi {
		return hi
	}
	return offset
}

// Axis selects a scrollbar axis for drag-to-scroll.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Drag converts scrollbar-thumb pointer movement into pan offsets. It is
// created at pointer-down with the offset captured at drag start; every
// update maps the total pointer delta against that captured offset, so
// coalesced or dropped intermediate moves cannot compound rounding.
type Drag struct {
	axis   Axis
	start  types.Position
	bounds types.Rect
	vp     types.Size
	track  int // Scrollbar track length in device pixels
}

// NewDrag begins a scrollbar drag.
func NewDrag(axis Axis, start types.Position, bounds types.Rect, vp types.Size, trackLength int) *Drag {
	return &Drag{axis: axis, start: start, bounds: bounds, vp: vp, track: trackLength}
}

// OffsetAt returns the clamped pan offset for the given total pointer delta
// since drag start.
func (d *Drag) OffsetAt(pointerDelta int) types.Position {
	out := d.start

	boundsLen, vpLen := d.bounds.Width, d.vp.Width
	if d.axis == Vertical {
		boundsLen, vpLen = d.bounds.Height, d.vp.Height
	}

	scrollRange := boundsLen - vpLen
	if scrollRange > 0 && d.track > 0 {
		thumbPx := int(float64(d.track) * float64(vpLen) / float64(boundsLen))
		available := d.track - thumbPx
		if available > 0 {
			delta := pointerDelta * scrollRange / available
			if d.axis == Horizontal {
				out.X -= delta
			} else {
				out.Y -= delta
			}
		}
	}

	return ClampOffset(out, d.bounds, d.vp)
}

// Provider supplies the current physical viewport size. The engine never
// measures the screen itself; the client reports sizes on resize events.
type Provider interface {
	Viewport() types.Size
}
