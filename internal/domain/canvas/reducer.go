package canvas

import (
	"sort"
	"time"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/arrange"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/viewport"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/id"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// Config holds reducer tuning. Values come from infrastructure/config; the
// defaults here keep the package usable standalone in tests.
type Config struct {
	Padding       int            // Bounding-box margin for pan clamping
	CascadeStep   int            // Diagonal offset between cascaded windows
	DefaultSize   types.Size     // Size for specs that omit one
	DefaultOrigin types.Position // First default position per kind

	ChatDockedWidth    int
	ChatMinWidth       int
	ChatMaxWidth       int
	ChatCollapsedWidth int
	ChatFloatSize      types.Size // Floating chat window size on undock
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Padding:            64,
		CascadeStep:        32,
		DefaultSize:        types.Size{Width: 800, Height: 600},
		DefaultOrigin:      types.Position{X: 96, Y: 64},
		ChatDockedWidth:    360,
		ChatMinWidth:       240,
		ChatMaxWidth:       640,
		ChatCollapsedWidth: 48,
		ChatFloatSize:      types.Size{Width: 360, Height: 520},
	}
}

// Reducer is the lifecycle state machine. Apply is a total function: every
// action either produces a fully-consistent next state or returns the input
// unchanged. It never mutates its input.
type Reducer struct {
	cfg Config
}

// NewReducer creates a reducer with the given tuning.
func NewReducer(cfg Config) *Reducer {
	return &Reducer{cfg: cfg}
}

// NewCanvasState returns an empty state with this reducer's chat defaults.
func (r *Reducer) NewCanvasState() *types.CanvasState {
	return types.NewCanvasState(types.ChatPanelConfig{
		Mode:        types.ChatDocked,
		DockedWidth: r.cfg.ChatDockedWidth,
	})
}

// Apply applies one action and reports whether the state changed. Unknown
// action types, unknown window ids and illegal transitions are no-ops.
func (r *Reducer) Apply(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	if s == nil {
		return s, false
	}

	switch a.Type {
	case ActionOpen:
		return r.applyOpen(s, a)
	case ActionClose:
		return r.applyClose(s, a)
	case ActionFocus:
		return r.applyFocus(s, a)
	case ActionMove:
		return r.applyMove(s, a)
	case ActionResize:
		return r.applyResize(s, a)
	case ActionMinimize:
		return r.applyMinimize(s, a)
	case ActionMaximize:
		return r.applyMaximize(s, a)
	case ActionRestore:
		return r.applyRestore(s, a)
	case ActionPin, ActionUnpin, ActionTogglePin:
		return r.applyPin(s, a)
	case ActionSetBadge:
		return r.applySetBadge(s, a)
	case ActionMinimizeAll:
		return r.applyMinimizeAll(s)
	case ActionRestoreAll:
		return r.applyRestoreAll(s)
	case ActionCloseAll:
		return r.applyCloseAll(s)
	case ActionCascade, ActionTileHorizontal, ActionTileVertical, ActionGather:
		return r.applyArrangement(s, a)
	case ActionPan:
		return r.applyPan(s, a)
	case ActionSetWallpaper:
		return r.applySetWallpaper(s, a)
	case ActionLoadState:
		return r.applyLoadState(s, a)
	case ActionClearLayout:
		return r.applyClearLayout(s)
	case ActionChatSetMode:
		return r.applyChatSetMode(s, a)
	case ActionChatToggleCollapsed:
		return r.applyChatToggleCollapsed(s)
	case ActionChatSetWidth:
		return r.applyChatSetWidth(s, a)
	}
	return s, false
}

func (r *Reducer) applyOpen(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	if a.Spec == nil {
		return s, false
	}
	spec := *a.Spec

	// At most one chat surface: the docked strip or one floating window.
	if spec.Kind == types.KindChat && chatSurfaceExists(s) {
		return s, false
	}

	next := s.Clone()

	size := r.cfg.DefaultSize
	if spec.Size != nil {
		size = *spec.Size
	}
	size = size.Clamp(spec.MinSize, spec.MaxSize)

	pos := r.defaultPosition(next, spec.Kind)
	if spec.Position != nil {
		pos = *spec.Position
	}

	win := &types.WindowEntity{
		ID:         id.NewWindowID().String(),
		Kind:       spec.Kind,
		SubjectID:  spec.SubjectID,
		Title:      spec.Title,
		Lifecycle:  types.StateNormal,
		Position:   pos,
		Size:       size,
		MinSize:    spec.MinSize,
		MaxSize:    spec.MaxSize,
		Resizable:  boolOr(spec.Resizable, true),
		Draggable:  boolOr(spec.Draggable, true),
		Closable:   boolOr(spec.Closable, true),
		Pinned:     spec.Pinned,
		Badge:      spec.Badge,
		StackIndex: next.NextStackIndex,
		CreatedAt:  time.Now(),
	}
	next.NextStackIndex++

	clearFocus(next)
	win.Focused = true
	next.Windows[win.ID] = win

	if spec.Kind == types.KindChat {
		next.Chat.Mode = types.ChatFloating
		next.Chat.WindowID = &win.ID
	}

	return next, true
}

// defaultPosition cascades from the last-opened window of the same kind, or
// falls back to the configured origin.
func (r *Reducer) defaultPosition(s *types.CanvasState, kind types.Kind) types.Position {
	var last *types.WindowEntity
	for _, w := range s.Windows {
		if w.Kind != kind {
			continue
		}
		if last == nil || w.StackIndex > last.StackIndex {
			last = w
		}
	}
	if last == nil {
		return r.cfg.DefaultOrigin
	}
	return types.Position{
		X: last.Position.X + r.cfg.CascadeStep,
		Y: last.Position.Y + r.cfg.CascadeStep,
	}
}

func (r *Reducer) applyClose(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	w, ok := s.Windows[a.WindowID]
	if !ok || !w.Closable {
		return s, false
	}

	next := s.Clone()
	wasFocused := w.Focused
	delete(next.Windows, a.WindowID)
	reconcileChat(next)
	if wasFocused {
		focusTopmost(next)
	}
	return next, true
}

func (r *Reducer) applyFocus(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	w, ok := s.Windows[a.WindowID]
	if !ok || w.Lifecycle == types.StateMinimized {
		return s, false
	}

	// Always bump, even when already focused: re-affirming top-of-stack keeps
	// multi-actor updates convergent.
	next := s.Clone()
	raiseAndFocus(next, a.WindowID)
	return next, true
}

func (r *Reducer) applyMove(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	w, ok := s.Windows[a.WindowID]
	if !ok || a.Position == nil || !w.Draggable || w.Lifecycle != types.StateNormal {
		return s, false
	}

	next := s.Clone()
	next.Windows[a.WindowID].Position = *a.Position
	return next, true
}

func (r *Reducer) applyResize(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	w, ok := s.Windows[a.WindowID]
	if !ok || a.Size == nil || !w.Resizable || w.Lifecycle != types.StateNormal {
		return s, false
	}

	next := s.Clone()
	target := next.Windows[a.WindowID]
	target.Size = a.Size.Clamp(target.MinSize, target.MaxSize)
	return next, true
}

func (r *Reducer) applyMinimize(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	w, ok := s.Windows[a.WindowID]
	if !ok || w.Lifecycle == types.StateMinimized {
		return s, false
	}

	next := s.Clone()
	target := next.Windows[a.WindowID]
	minimizeWindow(target)
	if target.Focused {
		target.Focused = false
		focusTopmost(next)
	}
	return next, true
}

func minimizeWindow(w *types.WindowEntity) {
	w.Saved = &types.SavedGeometry{
		Position:  w.Position,
		Size:      w.Size,
		Lifecycle: w.Lifecycle,
	}
	w.Lifecycle = types.StateMinimized
}

func (r *Reducer) applyMaximize(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	w, ok := s.Windows[a.WindowID]
	if !ok || w.Lifecycle == types.StateMinimized {
		return s, false
	}

	next := s.Clone()
	target := next.Windows[a.WindowID]
	if target.Lifecycle == types.StateNormal {
		target.Saved = &types.SavedGeometry{
			Position:  target.Position,
			Size:      target.Size,
			Lifecycle: types.StateNormal,
		}
		target.Lifecycle = types.StateMaximized
	}
	raiseAndFocus(next, a.WindowID)
	return next, true
}

func (r *Reducer) applyRestore(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	w, ok := s.Windows[a.WindowID]
	if !ok || w.Lifecycle == types.StateNormal {
		return s, false
	}

	next := s.Clone()
	restoreWindow(next.Windows[a.WindowID])
	raiseAndFocus(next, a.WindowID)
	return next, true
}

// restoreWindow returns a window to its saved geometry. A window minimized
// while maximized goes back to maximized, keeping the normal geometry saved
// for the next restore.
func restoreWindow(w *types.WindowEntity) {
	saved := w.Saved
	if saved == nil {
		w.Lifecycle = types.StateNormal
		return
	}

	w.Position = saved.Position
	w.Size = saved.Size
	if w.Lifecycle == types.StateMinimized && saved.Lifecycle == types.StateMaximized {
		w.Lifecycle = types.StateMaximized
		w.Saved = &types.SavedGeometry{
			Position:  saved.Position,
			Size:      saved.Size,
			Lifecycle: types.StateNormal,
		}
		return
	}
	w.Lifecycle = types.StateNormal
	w.Saved = nil
}

func (r *Reducer) applyPin(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	w, ok := s.Windows[a.WindowID]
	if !ok {
		return s, false
	}

	pinned := w.Pinned
	switch a.Type {
	case ActionPin:
		pinned = true
	case ActionUnpin:
		pinned = false
	case ActionTogglePin:
		pinned = !pinned
	}
	if pinned == w.Pinned {
		return s, false
	}

	next := s.Clone()
	next.Windows[a.WindowID].Pinned = pinned
	return next, true
}

func (r *Reducer) applySetBadge(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	if _, ok := s.Windows[a.WindowID]; !ok {
		return s, false
	}
	next := s.Clone()
	next.Windows[a.WindowID].Badge = a.Badge
	return next, true
}

func (r *Reducer) applyMinimizeAll(s *types.CanvasState) (*types.CanvasState, bool) {
	any := false
	for _, w := range s.Windows {
		if w.Lifecycle != types.StateMinimized {
			any = true
			break
		}
	}
	if !any {
		return s, false
	}

	next := s.Clone()
	for _, w := range next.Windows {
		if w.Lifecycle == types.StateMinimized {
			continue
		}
		minimizeWindow(w)
		w.Focused = false
	}
	return next, true
}

func (r *Reducer) applyRestoreAll(s *types.CanvasState) (*types.CanvasState, bool) {
	any := false
	for _, w := range s.Windows {
		if w.Lifecycle == types.StateMinimized {
			any = true
			break
		}
	}
	if !any {
		return s, false
	}

	next := s.Clone()
	for _, w := range next.Windows {
		if w.Lifecycle == types.StateMinimized {
			restoreWindow(w)
		}
	}
	focusTopmost(next)
	return next, true
}

func (r *Reducer) applyCloseAll(s *types.CanvasState) (*types.CanvasState, bool) {
	any := false
	for _, w := range s.Windows {
		if w.Closable {
			any = true
			break
		}
	}
	if !any {
		return s, false
	}

	next := s.Clone()
	for idx, w := range next.Windows {
		if w.Closable {
			delete(next.Windows, idx)
		}
	}
	reconcileChat(next)
	focusTopmost(next)
	return next, true
}

func (r *Reducer) applyArrangement(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	if a.Viewport == nil {
		return s, false
	}
	vp := viewport.Effective(*a.Viewport, s.Chat, r.cfg.ChatCollapsedWidth)

	eligible := make([]*types.WindowEntity, 0, len(s.Windows))
	for _, w := range s.Windows {
		if w.Lifecycle == types.StateNormal {
			eligible = append(eligible, w)
		}
	}
	if len(eligible) == 0 {
		return s, false
	}
	arrange.SortByStack(eligible)

	var plan map[string]types.Rect
	switch a.Type {
	case ActionCascade:
		plan = arrange.Cascade(eligible, s.Offset, vp, r.cfg.DefaultOrigin, r.cfg.CascadeStep)
	case ActionTileHorizontal:
		plan = arrange.TileHorizontal(eligible, s.Offset, vp)
	case ActionTileVertical:
		plan = arrange.TileVertical(eligible, s.Offset, vp)
	case ActionGather:
		plan = arrange.Gather(eligible, s.Offset, vp)
	}
	if len(plan) == 0 {
		return s, false
	}

	// Full next-state map, then swap: no observer sees a half-arranged layout.
	next := s.Clone()
	changed := false
	for wid, rect := range plan {
		w := next.Windows[wid]
		if w.Position != rect.Position {
			w.Position = rect.Position
			changed = true
		}
		clamped := rect.Size.Clamp(w.MinSize, w.MaxSize)
		if w.Size != clamped {
			w.Size = clamped
			changed = true
		}
	}
	if !changed {
		return s, false
	}
	return next, true
}

func (r *Reducer) applyPan(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	if a.Position == nil || a.Viewport == nil {
		return s, false
	}

	vp := viewport.Effective(*a.Viewport, s.Chat, r.cfg.ChatCollapsedWidth)
	bounds := viewport.Bounds(windowSlice(s), r.cfg.Padding)
	clamped := viewport.ClampOffset(*a.Position, bounds, vp)
	if clamped == s.Offset {
		return s, false
	}

	next := s.Clone()
	next.Offset = clamped
	return next, true
}

func (r *Reducer) applySetWallpaper(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	if a.Name == nil || *a.Name == s.Wallpaper {
		return s, false
	}
	next := s.Clone()
	next.Wallpaper = *a.Name
	return next, true
}

// applyLoadState replaces the whole state with a snapshot, repairing invariant
// violations deterministically: duplicate ids collapse to the first occurrence,
// stack indices are reassigned in snapshot stacking order, the topmost visible
// window gets focus, and the chat config is reconciled to exactly one surface.
func (r *Reducer) applyLoadState(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	if a.Snapshot == nil {
		return s, false
	}

	next := a.Snapshot.Clone()
	if next.Windows == nil {
		next.Windows = make(map[string]*types.WindowEntity)
	}

	// Normalize map keys against entity ids.
	windows := make(map[string]*types.WindowEntity, len(next.Windows))
	for key, w := range next.Windows {
		if w == nil {
			continue
		}
		if w.ID == "" {
			w.ID = key
		}
		if _, dup := windows[w.ID]; dup {
			continue
		}
		windows[w.ID] = w
	}
	next.Windows = windows

	// Reassign stack indices in snapshot order; the counter must never reuse
	// a previously issued index, even across sessions.
	ordered := windowSlice(next)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].StackIndex != ordered[j].StackIndex {
			return ordered[i].StackIndex < ordered[j].StackIndex
		}
		return ordered[i].ID < ordered[j].ID
	})
	base := next.NextStackIndex
	if base < 1 {
		base = 1
	}
	for i, w := range ordered {
		if w.StackIndex >= base {
			base = w.StackIndex + 1
		}
		w.StackIndex = i + 1
	}
	next.NextStackIndex = len(ordered) + 1
	if next.NextStackIndex < base {
		next.NextStackIndex = base
	}

	clearFocus(next)
	focusTopmost(next)

	if next.Chat.DockedWidth == 0 {
		next.Chat.DockedWidth = r.cfg.ChatDockedWidth
	}
	next.Chat.DockedWidth = clampInt(next.Chat.DockedWidth, r.cfg.ChatMinWidth, r.cfg.ChatMaxWidth)
	reconcileChat(next)

	return next, true
}

func (r *Reducer) applyClearLayout(s *types.CanvasState) (*types.CanvasState, bool) {
	any := false
	for _, w := range s.Windows {
		if !w.Pinned {
			any = true
			break
		}
	}
	if !any {
		return s, false
	}

	next := s.Clone()
	for idx, w := range next.Windows {
		if !w.Pinned {
			delete(next.Windows, idx)
		}
	}
	reconcileChat(next)
	focusTopmost(next)
	return next, true
}

// raiseAndFocus gives id sole focus and the maximum stack index. Must only be
// called on a cloned state with a known id.
func raiseAndFocus(s *types.CanvasState, wid string) {
	clearFocus(s)
	w := s.Windows[wid]
	w.Focused = true
	w.StackIndex = s.NextStackIndex
	s.NextStackIndex++
}

func clearFocus(s *types.CanvasState) {
	for _, w := range s.Windows {
		w.Focused = false
	}
}

// focusTopmost transfers focus to the visible window with the highest stack
// index without bumping the counter; it already draws on top.
func focusTopmost(s *types.CanvasState) {
	var top *types.WindowEntity
	for _, w := range s.Windows {
		if w.Lifecycle == types.StateMinimized {
			continue
		}
		if top == nil || w.StackIndex > top.StackIndex {
			top = w
		}
	}
	clearFocus(s)
	if top != nil {
		top.Focused = true
	}
}

func windowSlice(s *types.CanvasState) []*types.WindowEntity {
	out := make([]*types.WindowEntity, 0, len(s.Windows))
	for _, w := range s.Windows {
		out = append(out, w)
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
