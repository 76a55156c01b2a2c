package canvas

import (
	"time"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/viewport"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/id"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// Chat docking: the chat panel is either a fixed edge strip (docked) or one
// ordinary window entity of kind chat (floating), never both and never neither
// while chat is enabled. Mode switches are single reducer transitions so the
// invariant holds atomically.

// applyChatSetMode switches between docked and floating.
func (r *Reducer) applyChatSetMode(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	switch a.ChatMode {
	case types.ChatFloating:
		if s.Chat.Mode == types.ChatFloating && chatWindow(s) != nil {
			return s, false
		}

		next := s.Clone()
		next.Chat.Mode = types.ChatFloating

		if chatWindow(next) == nil {
			win := r.newChatWindow(next, a.Viewport)
			clearFocus(next)
			win.Focused = true
			next.Windows[win.ID] = win
			next.Chat.WindowID = &win.ID
		}
		return next, true

	case types.ChatDocked:
		if s.Chat.Mode == types.ChatDocked && chatWindow(s) == nil {
			return s, false
		}

		// Floating geometry is discarded: docking does not persist it.
		next := s.Clone()
		wasFocused := false
		if w := chatWindow(next); w != nil {
			wasFocused = w.Focused
			delete(next.Windows, w.ID)
		}
		next.Chat.Mode = types.ChatDocked
		next.Chat.WindowID = nil
		if wasFocused {
			focusTopmost(next)
		}
		return next, true
	}
	return s, false
}

// newChatWindow builds the floating chat window, positioned near the former
// docked strip (the viewport's right edge) when the viewport is known.
func (r *Reducer) newChatWindow(s *types.CanvasState, physical *types.Size) *types.WindowEntity {
	size := r.cfg.ChatFloatSize
	pos := r.cfg.DefaultOrigin
	if physical != nil {
		vp := viewport.Effective(*physical, types.ChatPanelConfig{Mode: types.ChatFloating}, r.cfg.ChatCollapsedWidth)
		pos = types.Position{
			X: -s.Offset.X + vp.Width - size.Width - r.cfg.CascadeStep,
			Y: -s.Offset.Y + r.cfg.CascadeStep,
		}
	}

	win := &types.WindowEntity{
		ID:         id.NewWindowID().String(),
		Kind:       types.KindChat,
		Title:      "Chat",
		Lifecycle:  types.StateNormal,
		Position:   pos,
		Size:       size,
		MinSize:    &types.Size{Width: r.cfg.ChatMinWidth, Height: 240},
		Resizable:  true,
		Draggable:  true,
		Closable:   true,
		StackIndex: s.NextStackIndex,
		CreatedAt:  time.Now(),
	}
	s.NextStackIndex++
	return win
}

func (r *Reducer) applyChatToggleCollapsed(s *types.CanvasState) (*types.CanvasState, bool) {
	if s.Chat.Mode != types.ChatDocked {
		return s, false
	}
	next := s.Clone()
	next.Chat.Collapsed = !next.Chat.Collapsed
	return next, true
}

func (r *Reducer) applyChatSetWidth(s *types.CanvasState, a Action) (*types.CanvasState, bool) {
	if a.Width == nil || s.Chat.Mode != types.ChatDocked {
		return s, false
	}
	width := clampInt(*a.Width, r.cfg.ChatMinWidth, r.cfg.ChatMaxWidth)
	if width == s.Chat.DockedWidth {
		return s, false
	}
	next := s.Clone()
	next.Chat.DockedWidth = width
	return next, true
}

// chatWindow returns the live chat window entity, if any.
func chatWindow(s *types.CanvasState) *types.WindowEntity {
	if s.Chat.WindowID != nil {
		if w, ok := s.Windows[*s.Chat.WindowID]; ok {
			return w
		}
	}
	for _, w := range s.Windows {
		if w.Kind == types.KindChat {
			return w
		}
	}
	return nil
}

// chatSurfaceExists reports whether any chat representation is live: the
// docked strip or a floating chat window.
func chatSurfaceExists(s *types.CanvasState) bool {
	return s.Chat.Mode == types.ChatDocked || chatWindow(s) != nil
}

// reconcileChat repairs the chat config after windows were removed or a
// snapshot was loaded: floating without a window falls back to docked, and a
// chat window present while docked claims floating mode.
func reconcileChat(s *types.CanvasState) {
	w := chatWindow(s)
	switch {
	case w == nil:
		s.Chat.Mode = types.ChatDocked
		s.Chat.WindowID = nil
	case s.Chat.Mode == types.ChatDocked:
		s.Chat.Mode = types.ChatFloating
		fallthrough
	default:
		id := w.ID
		s.Chat.WindowID = &id
	}
}
