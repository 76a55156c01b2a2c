package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

func TestChatStartsDocked(t *testing.T) {
	_, s := newTestReducer()
	assert.Equal(t, types.ChatDocked, s.Chat.Mode)
	assert.Equal(t, 360, s.Chat.DockedWidth)
	assert.Nil(t, s.Chat.WindowID)
	assert.Nil(t, chatWindow(s))
}

func TestChatFloatCreatesWindow(t *testing.T) {
	r, s := newTestReducer()

	s, changed := r.Apply(s, ChatSetMode(types.ChatFloating, types.Size{Width: 1280, Height: 800}))
	require.True(t, changed)
	assert.Equal(t, types.ChatFloating, s.Chat.Mode)

	w := chatWindow(s)
	require.NotNil(t, w)
	require.NotNil(t, s.Chat.WindowID)
	assert.Equal(t, *s.Chat.WindowID, w.ID)
	assert.Equal(t, types.KindChat, w.Kind)
	assert.True(t, w.Focused)
	assert.Equal(t, types.Size{Width: 360, Height: 520}, w.Size)

	// Positioned near the right edge where the docked strip sat.
	assert.Equal(t, 1280-360-32, w.Position.X)
	assert.Equal(t, 32, w.Position.Y)
}

func TestChatFloatTwiceIsNoOp(t *testing.T) {
	r, s := newTestReducer()
	vp := types.Size{Width: 1280, Height: 800}

	s, _ = r.Apply(s, ChatSetMode(types.ChatFloating, vp))
	first := chatWindow(s).ID

	next, changed := r.Apply(s, ChatSetMode(types.ChatFloating, vp))
	assert.False(t, changed)
	assert.Equal(t, first, chatWindow(next).ID)
	assert.Len(t, next.Windows, 1)
}

func TestChatDockRemovesWindow(t *testing.T) {
	r, s := newTestReducer()
	vp := types.Size{Width: 1280, Height: 800}
	s, other := open(t, r, s, types.WindowSpec{Kind: "report"})

	s, _ = r.Apply(s, ChatSetMode(types.ChatFloating, vp))
	chatID := chatWindow(s).ID

	s, changed := r.Apply(s, ChatSetMode(types.ChatDocked, vp))
	require.True(t, changed)
	assert.Equal(t, types.ChatDocked, s.Chat.Mode)
	assert.Nil(t, s.Chat.WindowID)
	assert.NotContains(t, s.Windows, chatID)

	// Focus moves back to the remaining window.
	assert.True(t, s.Windows[other.ID].Focused)
}

func TestChatDockDiscardsFloatingGeometry(t *testing.T) {
	r, s := newTestReducer()
	vp := types.Size{Width: 1280, Height: 800}

	s, _ = r.Apply(s, ChatSetMode(types.ChatFloating, vp))
	s, _ = r.Apply(s, Move(chatWindow(s).ID, types.Position{X: 5, Y: 5}))
	s, _ = r.Apply(s, ChatSetMode(types.ChatDocked, vp))

	s, _ = r.Apply(s, ChatSetMode(types.ChatFloating, vp))
	w := chatWindow(s)
	require.NotNil(t, w)
	assert.NotEqual(t, types.Position{X: 5, Y: 5}, w.Position)
}

func TestChatWindowCloseFallsBackToDocked(t *testing.T) {
	r, s := newTestReducer()
	vp := types.Size{Width: 1280, Height: 800}

	s, _ = r.Apply(s, ChatSetMode(types.ChatFloating, vp))
	chatID := chatWindow(s).ID

	s, changed := r.Apply(s, Close(chatID))
	require.True(t, changed)
	assert.Equal(t, types.ChatDocked, s.Chat.Mode)
	assert.Nil(t, s.Chat.WindowID)
}

func TestChatToggleCollapsedDockedOnly(t *testing.T) {
	r, s := newTestReducer()

	s, changed := r.Apply(s, ChatToggleCollapsed())
	require.True(t, changed)
	assert.True(t, s.Chat.Collapsed)

	s, changed = r.Apply(s, ChatToggleCollapsed())
	require.True(t, changed)
	assert.False(t, s.Chat.Collapsed)

	s, _ = r.Apply(s, ChatSetMode(types.ChatFloating, types.Size{Width: 1280, Height: 800}))
	_, changed = r.Apply(s, ChatToggleCollapsed())
	assert.False(t, changed)
}

func TestChatSetWidthClamped(t *testing.T) {
	r, s := newTestReducer()

	s, changed := r.Apply(s, ChatSetWidth(10))
	require.True(t, changed)
	assert.Equal(t, 240, s.Chat.DockedWidth)

	s, changed = r.Apply(s, ChatSetWidth(9999))
	require.True(t, changed)
	assert.Equal(t, 640, s.Chat.DockedWidth)

	_, changed = r.Apply(s, ChatSetWidth(640))
	assert.False(t, changed)
}

func TestChatSetWidthFloatingIgnored(t *testing.T) {
	r, s := newTestReducer()
	s, _ = r.Apply(s, ChatSetMode(types.ChatFloating, types.Size{Width: 1280, Height: 800}))

	_, changed := r.Apply(s, ChatSetWidth(400))
	assert.False(t, changed)
}

func TestExactlyOneChatSurface(t *testing.T) {
	r, s := newTestReducer()
	vp := types.Size{Width: 1280, Height: 800}

	// Docked: no window of kind chat may open.
	_, changed := r.Apply(s, Open(types.WindowSpec{Kind: types.KindChat}))
	assert.False(t, changed)

	// Floating: exactly one chat window, and opening another is rejected.
	s, _ = r.Apply(s, ChatSetMode(types.ChatFloating, vp))
	_, changed = r.Apply(s, Open(types.WindowSpec{Kind: types.KindChat}))
	assert.False(t, changed)

	count := 0
	for _, w := range s.Windows {
		if w.Kind == types.KindChat {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
