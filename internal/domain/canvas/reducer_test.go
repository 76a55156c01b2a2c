package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/arrange"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

func newTestReducer() (*Reducer, *types.CanvasState) {
	r := NewReducer(DefaultConfig())
	return r, r.NewCanvasState()
}

// open dispatches an open action and returns the created window.
func open(t *testing.T, r *Reducer, s *types.CanvasState, spec types.WindowSpec) (*types.CanvasState, *types.WindowEntity) {
	t.Helper()
	next, changed := r.Apply(s, Open(spec))
	require.True(t, changed)

	var created *types.WindowEntity
	for _, w := range next.Windows {
		if _, existed := s.Windows[w.ID]; !existed {
			created = w
		}
	}
	require.NotNil(t, created)
	return next, created
}

func TestApplyNilState(t *testing.T) {
	r := NewReducer(DefaultConfig())
	next, changed := r.Apply(nil, Open(types.WindowSpec{Kind: "report"}))
	assert.Nil(t, next)
	assert.False(t, changed)
}

func TestApplyUnknownAction(t *testing.T) {
	r, s := newTestReducer()
	next, changed := r.Apply(s, Action{Type: "bogus"})
	assert.Same(t, s, next)
	assert.False(t, changed)
}

func TestOpenAssignsUniqueIDs(t *testing.T) {
	r, s := newTestReducer()
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		var w *types.WindowEntity
		s, w = open(t, r, s, types.WindowSpec{Kind: "report", Title: "Report"})
		assert.False(t, seen[w.ID])
		seen[w.ID] = true
	}
	assert.Len(t, s.Windows, 10)
}

func TestOpenFocusesNewWindow(t *testing.T) {
	r, s := newTestReducer()
	s, a := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, b := open(t, r, s, types.WindowSpec{Kind: "board"})

	assert.False(t, s.Windows[a.ID].Focused)
	assert.True(t, s.Windows[b.ID].Focused)
	assert.Greater(t, b.StackIndex, a.StackIndex)
}

func TestOpenDefaults(t *testing.T) {
	r, s := newTestReducer()
	_, w := open(t, r, s, types.WindowSpec{Kind: "report"})

	assert.Equal(t, types.Size{Width: 800, Height: 600}, w.Size)
	assert.Equal(t, types.Position{X: 96, Y: 64}, w.Position)
	assert.Equal(t, types.StateNormal, w.Lifecycle)
	assert.True(t, w.Resizable)
	assert.True(t, w.Draggable)
	assert.True(t, w.Closable)
	assert.False(t, w.Pinned)
}

func TestOpenCascadesSameKind(t *testing.T) {
	r, s := newTestReducer()
	s, first := open(t, r, s, types.WindowSpec{Kind: "report"})
	_, second := open(t, r, s, types.WindowSpec{Kind: "report"})

	assert.Equal(t, first.Position.X+32, second.Position.X)
	assert.Equal(t, first.Position.Y+32, second.Position.Y)
}

func TestOpenExplicitGeometry(t *testing.T) {
	r, s := newTestReducer()
	pos := types.Position{X: 10, Y: 20}
	size := types.Size{Width: 300, Height: 200}
	_, w := open(t, r, s, types.WindowSpec{Kind: "report", Position: &pos, Size: &size})

	assert.Equal(t, pos, w.Position)
	assert.Equal(t, size, w.Size)
}

func TestOpenClampsToMinSize(t *testing.T) {
	r, s := newTestReducer()
	size := types.Size{Width: 100, Height: 100}
	minSize := types.Size{Width: 400, Height: 300}
	_, w := open(t, r, s, types.WindowSpec{Kind: "report", Size: &size, MinSize: &minSize})

	assert.Equal(t, minSize, w.Size)
}

func TestOpenChatBlockedWhileDocked(t *testing.T) {
	r, s := newTestReducer()
	require.Equal(t, types.ChatDocked, s.Chat.Mode)

	next, changed := r.Apply(s, Open(types.WindowSpec{Kind: types.KindChat}))
	assert.False(t, changed)
	assert.Same(t, s, next)
}

func TestCloseRemovesWindow(t *testing.T) {
	r, s := newTestReducer()
	s, a := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, b := open(t, r, s, types.WindowSpec{Kind: "board"})

	counter := s.NextStackIndex
	s, changed := r.Apply(s, Close(b.ID))
	require.True(t, changed)
	assert.NotContains(t, s.Windows, b.ID)

	// Focus falls to the topmost survivor without bumping the counter.
	assert.True(t, s.Windows[a.ID].Focused)
	assert.Equal(t, counter, s.NextStackIndex)
}

func TestCloseNotClosable(t *testing.T) {
	r, s := newTestReducer()
	closable := false
	s, w := open(t, r, s, types.WindowSpec{Kind: "report", Closable: &closable})

	_, changed := r.Apply(s, Close(w.ID))
	assert.False(t, changed)
}

func TestCloseUnknownID(t *testing.T) {
	r, s := newTestReducer()
	_, changed := r.Apply(s, Close("win_missing"))
	assert.False(t, changed)
}

func TestFocusRaisesWindow(t *testing.T) {
	r, s := newTestReducer()
	s, a := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, b := open(t, r, s, types.WindowSpec{Kind: "board"})

	s, changed := r.Apply(s, Focus(a.ID))
	require.True(t, changed)
	assert.True(t, s.Windows[a.ID].Focused)
	assert.False(t, s.Windows[b.ID].Focused)
	assert.Greater(t, s.Windows[a.ID].StackIndex, s.Windows[b.ID].StackIndex)
}

func TestFocusAlternationKeepsIndicesMonotonic(t *testing.T) {
	r, s := newTestReducer()
	s, a := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, b := open(t, r, s, types.WindowSpec{Kind: "board"})

	s, _ = r.Apply(s, Focus(a.ID))
	s, _ = r.Apply(s, Focus(b.ID))
	s, _ = r.Apply(s, Focus(a.ID))

	assert.Greater(t, s.Windows[a.ID].StackIndex, s.Windows[b.ID].StackIndex)

	// Indices only ever grow; the counter never reuses a value.
	assert.Equal(t, 6, s.NextStackIndex)
}

func TestFocusMinimizedIgnored(t *testing.T) {
	r, s := newTestReducer()
	s, w := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, _ = r.Apply(s, Minimize(w.ID))

	_, changed := r.Apply(s, Focus(w.ID))
	assert.False(t, changed)
}

func TestMoveNormalWindow(t *testing.T) {
	r, s := newTestReducer()
	s, w := open(t, r, s, types.WindowSpec{Kind: "report"})

	s, changed := r.Apply(s, Move(w.ID, types.Position{X: -500, Y: 250}))
	require.True(t, changed)
	assert.Equal(t, types.Position{X: -500, Y: 250}, s.Windows[w.ID].Position)
}

func TestMoveRejectedWhileMaximized(t *testing.T) {
	r, s := newTestReducer()
	s, w := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, _ = r.Apply(s, Maximize(w.ID))

	_, changed := r.Apply(s, Move(w.ID, types.Position{X: 1, Y: 1}))
	assert.False(t, changed)
}

func TestMoveRejectedWhenNotDraggable(t *testing.T) {
	r, s := newTestReducer()
	draggable := false
	s, w := open(t, r, s, types.WindowSpec{Kind: "report", Draggable: &draggable})

	_, changed := r.Apply(s, Move(w.ID, types.Position{X: 1, Y: 1}))
	assert.False(t, changed)
}

func TestResizeClampsToConstraints(t *testing.T) {
	r, s := newTestReducer()
	minSize := types.Size{Width: 200, Height: 150}
	maxSize := types.Size{Width: 1000, Height: 700}
	s, w := open(t, r, s, types.WindowSpec{Kind: "report", MinSize: &minSize, MaxSize: &maxSize})

	s, changed := r.Apply(s, Resize(w.ID, types.Size{Width: 50, Height: 5000}))
	require.True(t, changed)
	assert.Equal(t, types.Size{Width: 200, Height: 700}, s.Windows[w.ID].Size)
}

func TestMinimizeRestoreRoundTrip(t *testing.T) {
	r, s := newTestReducer()
	pos := types.Position{X: 40, Y: 50}
	size := types.Size{Width: 320, Height: 240}
	s, w := open(t, r, s, types.WindowSpec{Kind: "report", Position: &pos, Size: &size})

	s, changed := r.Apply(s, Minimize(w.ID))
	require.True(t, changed)
	assert.Equal(t, types.StateMinimized, s.Windows[w.ID].Lifecycle)
	assert.False(t, s.Windows[w.ID].Focused)

	s, changed = r.Apply(s, Restore(w.ID))
	require.True(t, changed)
	got := s.Windows[w.ID]
	assert.Equal(t, types.StateNormal, got.Lifecycle)
	assert.Equal(t, pos, got.Position)
	assert.Equal(t, size, got.Size)
	assert.Nil(t, got.Saved)
	assert.True(t, got.Focused)
}

func TestMaximizeRestoreRoundTrip(t *testing.T) {
	r, s := newTestReducer()
	pos := types.Position{X: 40, Y: 50}
	size := types.Size{Width: 320, Height: 240}
	s, w := open(t, r, s, types.WindowSpec{Kind: "report", Position: &pos, Size: &size})

	s, _ = r.Apply(s, Maximize(w.ID))
	assert.Equal(t, types.StateMaximized, s.Windows[w.ID].Lifecycle)

	s, _ = r.Apply(s, Restore(w.ID))
	got := s.Windows[w.ID]
	assert.Equal(t, types.StateNormal, got.Lifecycle)
	assert.Equal(t, pos, got.Position)
	assert.Equal(t, size, got.Size)
}

func TestMinimizeWhileMaximizedRestoresToMaximized(t *testing.T) {
	r, s := newTestReducer()
	pos := types.Position{X: 40, Y: 50}
	size := types.Size{Width: 320, Height: 240}
	s, w := open(t, r, s, types.WindowSpec{Kind: "report", Position: &pos, Size: &size})

	s, _ = r.Apply(s, Maximize(w.ID))
	s, _ = r.Apply(s, Minimize(w.ID))
	assert.Equal(t, types.StateMinimized, s.Windows[w.ID].Lifecycle)

	s, _ = r.Apply(s, Restore(w.ID))
	assert.Equal(t, types.StateMaximized, s.Windows[w.ID].Lifecycle)

	// A second restore lands back on the original normal geometry.
	s, _ = r.Apply(s, Restore(w.ID))
	got := s.Windows[w.ID]
	assert.Equal(t, types.StateNormal, got.Lifecycle)
	assert.Equal(t, pos, got.Position)
	assert.Equal(t, size, got.Size)
}

func TestMaximizeFromMinimizedIgnored(t *testing.T) {
	r, s := newTestReducer()
	s, w := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, _ = r.Apply(s, Minimize(w.ID))

	_, changed := r.Apply(s, Maximize(w.ID))
	assert.False(t, changed)
}

func TestMinimizeTransfersFocus(t *testing.T) {
	r, s := newTestReducer()
	s, a := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, b := open(t, r, s, types.WindowSpec{Kind: "board"})

	s, _ = r.Apply(s, Minimize(b.ID))
	assert.True(t, s.Windows[a.ID].Focused)
}

func TestPinActions(t *testing.T) {
	r, s := newTestReducer()
	s, w := open(t, r, s, types.WindowSpec{Kind: "report"})

	s, changed := r.Apply(s, Pin(w.ID))
	require.True(t, changed)
	assert.True(t, s.Windows[w.ID].Pinned)

	// Pinning an already pinned window is a no-op.
	_, changed = r.Apply(s, Pin(w.ID))
	assert.False(t, changed)

	s, changed = r.Apply(s, TogglePin(w.ID))
	require.True(t, changed)
	assert.False(t, s.Windows[w.ID].Pinned)

	s, changed = r.Apply(s, Unpin(w.ID))
	assert.False(t, changed)
	assert.False(t, s.Windows[w.ID].Pinned)
}

func TestSetBadge(t *testing.T) {
	r, s := newTestReducer()
	s, w := open(t, r, s, types.WindowSpec{Kind: "report"})

	s, changed := r.Apply(s, SetBadge(w.ID, map[string]interface{}{"count": 3}))
	require.True(t, changed)
	assert.NotNil(t, s.Windows[w.ID].Badge)

	s, changed = r.Apply(s, SetBadge(w.ID, nil))
	require.True(t, changed)
	assert.Nil(t, s.Windows[w.ID].Badge)
}

func TestMinimizeAllRestoreAll(t *testing.T) {
	r, s := newTestReducer()
	s, _ = open(t, r, s, types.WindowSpec{Kind: "report"})
	s, _ = open(t, r, s, types.WindowSpec{Kind: "board"})
	s, _ = open(t, r, s, types.WindowSpec{Kind: "settings"})

	s, changed := r.Apply(s, MinimizeAll())
	require.True(t, changed)
	for _, w := range s.Windows {
		assert.Equal(t, types.StateMinimized, w.Lifecycle)
		assert.False(t, w.Focused)
	}

	_, changed = r.Apply(s, MinimizeAll())
	assert.False(t, changed)

	s, changed = r.Apply(s, RestoreAll())
	require.True(t, changed)
	focused := 0
	for _, w := range s.Windows {
		assert.Equal(t, types.StateNormal, w.Lifecycle)
		if w.Focused {
			focused++
		}
	}
	assert.Equal(t, 1, focused)

	_, changed = r.Apply(s, RestoreAll())
	assert.False(t, changed)
}

func TestCloseAllSkipsNonClosable(t *testing.T) {
	r, s := newTestReducer()
	closable := false
	s, keep := open(t, r, s, types.WindowSpec{Kind: "settings", Closable: &closable})
	s, _ = open(t, r, s, types.WindowSpec{Kind: "report"})
	s, _ = open(t, r, s, types.WindowSpec{Kind: "board"})

	s, changed := r.Apply(s, CloseAll())
	require.True(t, changed)
	assert.Len(t, s.Windows, 1)
	assert.Contains(t, s.Windows, keep.ID)
	assert.True(t, s.Windows[keep.ID].Focused)
}

func TestClearLayoutKeepsPinned(t *testing.T) {
	r, s := newTestReducer()
	s, pinned := open(t, r, s, types.WindowSpec{Kind: "report", Pinned: true})
	s, _ = open(t, r, s, types.WindowSpec{Kind: "board"})
	s, _ = open(t, r, s, types.WindowSpec{Kind: "settings"})

	s, changed := r.Apply(s, ClearLayout())
	require.True(t, changed)
	assert.Len(t, s.Windows, 1)
	assert.Contains(t, s.Windows, pinned.ID)

	_, changed = r.Apply(s, ClearLayout())
	assert.False(t, changed)
}

func TestSetWallpaper(t *testing.T) {
	r, s := newTestReducer()

	s, changed := r.Apply(s, SetWallpaper("aurora"))
	require.True(t, changed)
	assert.Equal(t, "aurora", s.Wallpaper)

	_, changed = r.Apply(s, SetWallpaper("aurora"))
	assert.False(t, changed)
}

func TestPanClampsToBounds(t *testing.T) {
	r, s := newTestReducer()
	pos := types.Position{X: 0, Y: 0}
	size := types.Size{Width: 800, Height: 600}
	s, _ = open(t, r, s, types.WindowSpec{Kind: "report", Position: &pos, Size: &size})

	// Physical 1000x800 minus the 360px docked chat strip leaves 640x800.
	// Bounds with 64px padding: (-64,-64) 928x728.
	s, changed := r.Apply(s, Pan(types.Position{X: -10000, Y: 0}, types.Size{Width: 1000, Height: 800}))
	require.True(t, changed)
	assert.Equal(t, -224, s.Offset.X)
	assert.Equal(t, 64, s.Offset.Y)
}

func TestPanEmptyCanvasStaysAtOrigin(t *testing.T) {
	r, s := newTestReducer()
	_, changed := r.Apply(s, Pan(types.Position{X: -500, Y: -500}, types.Size{Width: 1000, Height: 800}))
	assert.False(t, changed)
	assert.Equal(t, types.Position{}, s.Offset)
}

func TestTileHorizontal(t *testing.T) {
	r, s := newTestReducer()
	var ids []string
	for i := 0; i < 3; i++ {
		var w *types.WindowEntity
		s, w = open(t, r, s, types.WindowSpec{Kind: "report"})
		ids = append(ids, w.ID)
	}

	// Effective viewport: 1000 - 360 docked chat = 640 wide.
	s, changed := r.Apply(s, TileHorizontal(types.Size{Width: 1000, Height: 800}))
	require.True(t, changed)

	total := 0
	for _, wid := range ids {
		w := s.Windows[wid]
		assert.Equal(t, 800, w.Size.Height)
		total += w.Size.Width
	}
	assert.Equal(t, 640, total)

	// Last slice absorbs the integer-division remainder.
	assert.Equal(t, 214, s.Windows[ids[2]].Size.Width)
	assert.Equal(t, types.Position{X: 0, Y: 0}, s.Windows[ids[0]].Position)
	assert.Equal(t, types.Position{X: 213, Y: 0}, s.Windows[ids[1]].Position)
	assert.Equal(t, types.Position{X: 426, Y: 0}, s.Windows[ids[2]].Position)
}

func TestCascadeArrangement(t *testing.T) {
	r, s := newTestReducer()
	s, a := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, b := open(t, r, s, types.WindowSpec{Kind: "board"})

	s, changed := r.Apply(s, Cascade(types.Size{Width: 1600, Height: 1200}))
	require.True(t, changed)
	assert.Equal(t, types.Position{X: 96, Y: 64}, s.Windows[a.ID].Position)
	assert.Equal(t, types.Position{X: 128, Y: 96}, s.Windows[b.ID].Position)
}

func TestGatherPullsOffscreenWindowsIntoView(t *testing.T) {
	r, s := newTestReducer()
	far := types.Position{X: -2000, Y: 100}
	size := types.Size{Width: 300, Height: 200}
	s, stray := open(t, r, s, types.WindowSpec{Kind: "report", Position: &far, Size: &size})
	inView := types.Position{X: 10, Y: 10}
	s, settled := open(t, r, s, types.WindowSpec{Kind: "board", Position: &inView, Size: &size})

	s, changed := r.Apply(s, Gather(types.Size{Width: 1000, Height: 800}))
	require.True(t, changed)

	// The stray window now fits the visible region; the settled one is untouched.
	got := s.Windows[stray.ID]
	assert.Equal(t, types.Position{X: 0, Y: 100}, got.Position)
	assert.Equal(t, size, got.Size)
	assert.Equal(t, inView, s.Windows[settled.ID].Position)
}

func TestMaximizedStrayNeedsNoGather(t *testing.T) {
	r, s := newTestReducer()
	far := types.Position{X: -5000, Y: -5000}
	size := types.Size{Width: 300, Height: 200}
	s, w := open(t, r, s, types.WindowSpec{Kind: "report", Position: &far, Size: &size})
	s, _ = r.Apply(s, Maximize(w.ID))

	// Maximized windows render at the viewport origin; the stale rectangle
	// underneath must neither signal off-screen windows nor make Gather fire.
	vp := types.Size{Width: 1000, Height: 800}
	ws := make([]*types.WindowEntity, 0, len(s.Windows))
	for _, win := range s.Windows {
		ws = append(ws, win)
	}
	assert.False(t, arrange.HasOffscreen(ws, s.Offset, vp))

	_, changed := r.Apply(s, Gather(vp))
	assert.False(t, changed)
}

func TestArrangementSkipsMinimizedAndMaximized(t *testing.T) {
	r, s := newTestReducer()
	s, minned := open(t, r, s, types.WindowSpec{Kind: "report"})
	s, maxed := open(t, r, s, types.WindowSpec{Kind: "board"})
	s, _ = open(t, r, s, types.WindowSpec{Kind: "settings"})
	s, _ = r.Apply(s, Minimize(minned.ID))
	s, _ = r.Apply(s, Maximize(maxed.ID))

	before := s.Windows[maxed.ID].Position
	s, changed := r.Apply(s, TileVertical(types.Size{Width: 1000, Height: 800}))
	require.True(t, changed)
	assert.Equal(t, before, s.Windows[maxed.ID].Position)
	assert.Equal(t, types.StateMinimized, s.Windows[minned.ID].Lifecycle)
}

func TestLoadStateRepairsSnapshot(t *testing.T) {
	r, s := newTestReducer()

	snapshot := types.NewCanvasState(types.ChatPanelConfig{Mode: types.ChatDocked, DockedWidth: 5})
	snapshot.Windows["key-a"] = &types.WindowEntity{
		ID: "win_a", Kind: "report", Lifecycle: types.StateNormal,
		Size: types.Size{Width: 400, Height: 300}, StackIndex: 7,
	}
	snapshot.Windows["win_b"] = &types.WindowEntity{
		ID: "win_b", Kind: "board", Lifecycle: types.StateNormal,
		Size: types.Size{Width: 400, Height: 300}, StackIndex: 7,
	}
	snapshot.Windows["win_c"] = &types.WindowEntity{
		Kind: "settings", Lifecycle: types.StateMinimized,
		Size: types.Size{Width: 400, Height: 300}, StackIndex: 2,
	}

	s, changed := r.Apply(s, LoadState(snapshot))
	require.True(t, changed)
	require.Len(t, s.Windows, 3)

	// Map keys normalized against entity ids; the keyless entity adopts its key.
	assert.Contains(t, s.Windows, "win_a")
	assert.Contains(t, s.Windows, "win_c")
	assert.Equal(t, "win_c", s.Windows["win_c"].ID)

	// Stack indices reassigned 1..n in snapshot order, ties broken by id.
	assert.Equal(t, 1, s.Windows["win_c"].StackIndex)
	assert.Equal(t, 2, s.Windows["win_a"].StackIndex)
	assert.Equal(t, 3, s.Windows["win_b"].StackIndex)

	// The counter clears the highest index the snapshot ever issued.
	assert.Equal(t, 8, s.NextStackIndex)

	// Topmost visible window takes focus; minimized ones never do.
	focused, ok := Focused(s)
	require.True(t, ok)
	assert.Equal(t, "win_b", focused.ID)

	// Docked width clamped into the configured range.
	assert.Equal(t, 240, s.Chat.DockedWidth)
}

func TestLoadStateFloatingChatWithoutWindowRedocks(t *testing.T) {
	r, s := newTestReducer()

	orphan := "win_gone"
	snapshot := types.NewCanvasState(types.ChatPanelConfig{
		Mode: types.ChatFloating, DockedWidth: 360, WindowID: &orphan,
	})

	s, changed := r.Apply(s, LoadState(snapshot))
	require.True(t, changed)
	assert.Equal(t, types.ChatDocked, s.Chat.Mode)
	assert.Nil(t, s.Chat.WindowID)
}

func TestLoadStateNextIndexNeverRegresses(t *testing.T) {
	r, s := newTestReducer()

	snapshot := types.NewCanvasState(types.ChatPanelConfig{Mode: types.ChatDocked, DockedWidth: 360})
	snapshot.Windows["win_a"] = &types.WindowEntity{
		ID: "win_a", Kind: "report", Lifecycle: types.StateNormal,
		Size: types.Size{Width: 400, Height: 300}, StackIndex: 90,
	}
	snapshot.NextStackIndex = 100

	s, changed := r.Apply(s, LoadState(snapshot))
	require.True(t, changed)
	assert.Equal(t, 1, s.Windows["win_a"].StackIndex)
	assert.Equal(t, 100, s.NextStackIndex)
}

func TestApplyNeverMutatesInput(t *testing.T) {
	r, s := newTestReducer()
	s, w := open(t, r, s, types.WindowSpec{Kind: "report"})

	before := s.Clone()
	_, changed := r.Apply(s, Move(w.ID, types.Position{X: 999, Y: 999}))
	require.True(t, changed)
	assert.Equal(t, before.Windows[w.ID].Position, s.Windows[w.ID].Position)
}
