package types

// ChatMode selects how the chat panel is represented: a fixed edge strip or
// an ordinary window entity. Exactly one representation is active at a time.
type ChatMode string

const (
	ChatDocked   ChatMode = "docked"
	ChatFloating ChatMode = "floating"
)

// ChatPanelConfig holds the chat panel's docking configuration.
type ChatPanelConfig struct {
	Mode        ChatMode `json:"mode"`
	DockedWidth int      `json:"docked_width"`
	Collapsed   bool     `json:"collapsed"`
	WindowID    *string  `json:"window_id,omitempty"` // Set only while floating
}

// CanvasState is the whole mutable state of one canvas session: every window,
// the z-order counter, the pan offset and the chat configuration. It is
// mutated exclusively through the reducer; everything else derives views from
// it functionally.
type CanvasState struct {
	Windows        map[string]*WindowEntity `json:"windows"`
	NextStackIndex int                      `json:"next_stack_index"` // Monotonic, never reused
	Offset         Position                 `json:"offset"`
	Chat           ChatPanelConfig          `json:"chat"`
	Wallpaper      string                   `json:"wallpaper,omitempty"` // Cosmetic descriptor, passthrough
}

// NewCanvasState returns an empty state with the given chat defaults.
func NewCanvasState(chat ChatPanelConfig) *CanvasState {
	return &CanvasState{
		Windows:        make(map[string]*WindowEntity),
		NextStackIndex: 1,
		Chat:           chat,
	}
}

// Clone returns a deep copy of the state. The reducer computes every
// transition on a clone and swaps, so observers never see partial updates.
func (s *CanvasState) Clone() *CanvasState {
	out := *s
	out.Windows = make(map[string]*WindowEntity, len(s.Windows))
	for id, w := range s.Windows {
		out.Windows[id] = w.Clone()
	}
	if s.Chat.WindowID != nil {
		id := *s.Chat.WindowID
		out.Chat.WindowID = &id
	}
	return &out
}

// Stats summarizes a canvas state for health and metrics surfaces.
type Stats struct {
	TotalWindows     int     `json:"total_windows"`
	VisibleWindows   int     `json:"visible_windows"`
	MinimizedWindows int     `json:"minimized_windows"`
	PinnedWindows    int     `json:"pinned_windows"`
	FocusedID        *string `json:"focused_id,omitempty"`
}
