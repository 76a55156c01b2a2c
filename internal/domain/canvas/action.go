package canvas

import (
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// ActionType discriminates reducer actions. The string values double as the
// wire representation used by the HTTP and websocket surfaces.
type ActionType string

const (
	ActionOpen     ActionType = "open"
	ActionClose    ActionType = "close"
	ActionFocus    ActionType = "focus"
	ActionMove     ActionType = "move"
	ActionResize   ActionType = "resize"
	ActionMinimize ActionType = "minimize"
	ActionMaximize ActionType = "maximize"
	ActionRestore  ActionType = "restore"

	ActionPin       ActionType = "pin"
	ActionUnpin     ActionType = "unpin"
	ActionTogglePin ActionType = "toggle_pin"
	ActionSetBadge  ActionType = "set_badge"

	ActionMinimizeAll ActionType = "minimize_all"
	ActionRestoreAll  ActionType = "restore_all"
	ActionCloseAll    ActionType = "close_all"

	ActionCascade        ActionType = "cascade"
	ActionTileHorizontal ActionType = "tile_horizontal"
	ActionTileVertical   ActionType = "tile_vertical"
	ActionGather         ActionType = "gather"

	ActionPan          ActionType = "pan"
	ActionSetWallpaper ActionType = "set_wallpaper"
	ActionLoadState    ActionType = "load_state"
	ActionClearLayout  ActionType = "clear_layout"

	ActionChatSetMode         ActionType = "chat_set_mode"
	ActionChatToggleCollapsed ActionType = "chat_toggle_collapsed"
	ActionChatSetWidth        ActionType = "chat_set_width"
)

// Action is one discrete mutation request. Exactly the fields relevant to its
// Type are set; everything else is ignored by the reducer.
//
// Positions are absolute canvas coordinates, never deltas: intermediate
// gesture updates can be coalesced or dropped without drift.
type Action struct {
	Type     ActionType         `json:"type"`
	WindowID string             `json:"window_id,omitempty"`
	Spec     *types.WindowSpec  `json:"spec,omitempty"`
	Position *types.Position    `json:"position,omitempty"`
	Size     *types.Size        `json:"size,omitempty"`
	Badge    interface{}        `json:"badge,omitempty"`
	Viewport *types.Size        `json:"viewport,omitempty"` // Physical viewport, captured at dispatch time
	ChatMode types.ChatMode     `json:"chat_mode,omitempty"`
	Width    *int               `json:"width,omitempty"`
	Name     *string            `json:"name,omitempty"`
	Snapshot *types.CanvasState `json:"snapshot,omitempty"`
}

// Open opens a new window from spec.
func Open(spec types.WindowSpec) Action {
	return Action{Type: ActionOpen, Spec: &spec}
}

// Close removes a window if it is closable.
func Close(id string) Action {
	return Action{Type: ActionClose, WindowID: id}
}

// Focus brings a window to the top of the stack.
func Focus(id string) Action {
	return Action{Type: ActionFocus, WindowID: id}
}

// Move repositions a normal-state window.
func Move(id string, pos types.Position) Action {
	return Action{Type: ActionMove, WindowID: id, Position: &pos}
}

// Resize resizes a normal-state window, clamped to its size constraints.
func Resize(id string, size types.Size) Action {
	return Action{Type: ActionResize, WindowID: id, Size: &size}
}

// Minimize hides a window into the taskbar.
func Minimize(id string) Action {
	return Action{Type: ActionMinimize, WindowID: id}
}

// Maximize fills the viewport with a window.
func Maximize(id string) Action {
	return Action{Type: ActionMaximize, WindowID: id}
}

// Restore returns a minimized or maximized window to its saved geometry.
func Restore(id string) Action {
	return Action{Type: ActionRestore, WindowID: id}
}

// Pin flags a window for persistence.
func Pin(id string) Action { return Action{Type: ActionPin, WindowID: id} }

// Unpin clears a window's persistence flag.
func Unpin(id string) Action { return Action{Type: ActionUnpin, WindowID: id} }

// TogglePin flips a window's persistence flag.
func TogglePin(id string) Action { return Action{Type: ActionTogglePin, WindowID: id} }

// SetBadge attaches an opaque notification marker; nil clears it.
func SetBadge(id string, badge interface{}) Action {
	return Action{Type: ActionSetBadge, WindowID: id, Badge: badge}
}

// MinimizeAll minimizes every visible window in one transition.
func MinimizeAll() Action { return Action{Type: ActionMinimizeAll} }

// RestoreAll restores every minimized window in one transition.
func RestoreAll() Action { return Action{Type: ActionRestoreAll} }

// CloseAll closes every closable window in one transition.
func CloseAll() Action { return Action{Type: ActionCloseAll} }

// Cascade arranges normal-state windows diagonally within the viewport.
func Cascade(viewport types.Size) Action {
	return Action{Type: ActionCascade, Viewport: &viewport}
}

// TileHorizontal partitions the viewport width across normal-state windows.
func TileHorizontal(viewport types.Size) Action {
	return Action{Type: ActionTileHorizontal, Viewport: &viewport}
}

// TileVertical partitions the viewport height across normal-state windows.
func TileVertical(viewport types.Size) Action {
	return Action{Type: ActionTileVertical, Viewport: &viewport}
}

// Gather pulls every off-viewport window back into visible bounds.
func Gather(viewport types.Size) Action {
	return Action{Type: ActionGather, Viewport: &viewport}
}

// Pan sets the canvas pan offset, clamped against the current bounds.
func Pan(offset types.Position, viewport types.Size) Action {
	return Action{Type: ActionPan, Position: &offset, Viewport: &viewport}
}

// SetWallpaper sets the cosmetic wallpaper descriptor.
func SetWallpaper(name string) Action {
	return Action{Type: ActionSetWallpaper, Name: &name}
}

// LoadState replaces the whole canvas state with a snapshot, repairing any
// invariant violations the snapshot carries.
func LoadState(snapshot *types.CanvasState) Action {
	return Action{Type: ActionLoadState, Snapshot: snapshot}
}

// ClearLayout removes every non-pinned window.
func ClearLayout() Action { return Action{Type: ActionClearLayout} }

// ChatSetMode switches the chat panel between docked and floating.
func ChatSetMode(mode types.ChatMode, viewport types.Size) Action {
	return Action{Type: ActionChatSetMode, ChatMode: mode, Viewport: &viewport}
}

// ChatToggleCollapsed collapses or expands the docked chat strip.
func ChatToggleCollapsed() Action { return Action{Type: ActionChatToggleCollapsed} }

// ChatSetWidth sets the docked strip width, clamped to configured limits.
func ChatSetWidth(width int) Action {
	return Action{Type: ActionChatSetWidth, Width: &width}
}
