package types

import "time"

// Kind categorizes a window. The set is closed per deployment; the chat kind
// is reserved for the chat panel's floating representation.
type Kind string

// KindChat is the reserved category for the floating chat window. At most one
// window of this kind exists at any time.
const KindChat Kind = "chat"

// LifecycleState represents a window's lifecycle state. The states are
// mutually exclusive; closed windows are simply removed from the store.
type LifecycleState string

const (
	StateNormal    LifecycleState = "normal"
	StateMaximized LifecycleState = "maximized"
	StateMinimized LifecycleState = "minimized"
)

// SavedGeometry snapshots the geometry captured before a window transitions
// to minimized or maximized, used to restore it.
type SavedGeometry struct {
	Position  Position       `json:"position"`
	Size      Size           `json:"size"`
	Lifecycle LifecycleState `json:"lifecycle_state"`
}

// WindowEntity is one managed panel on the canvas.
type WindowEntity struct {
	ID        string  `json:"id"`
	Kind      Kind    `json:"kind"`
	SubjectID *string `json:"subject_id,omitempty"` // Domain object shown in the window; opaque here
	Title     string  `json:"title"`

	Lifecycle LifecycleState `json:"lifecycle_state"`
	Position  Position       `json:"position"`
	Size      Size           `json:"size"`
	MinSize   *Size          `json:"min_size,omitempty"`
	MaxSize   *Size          `json:"max_size,omitempty"`

	StackIndex int  `json:"stack_index"`
	Focused    bool `json:"focused"`

	// Capability flags, fixed at creation.
	Resizable bool `json:"resizable"`
	Draggable bool `json:"draggable"`
	Closable  bool `json:"closable"`

	Pinned bool        `json:"pinned"`
	Badge  interface{} `json:"badge,omitempty"` // Opaque notification marker, passthrough only

	Saved     *SavedGeometry `json:"saved_geometry,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Bounds returns the window's rectangle on the canvas.
func (w *WindowEntity) Bounds() Rect {
	return Rect{Position: w.Position, Size: w.Size}
}

// Visible reports whether the window participates in canvas layout.
// Minimized windows render only in the taskbar.
func (w *WindowEntity) Visible() bool {
	return w.Lifecycle != StateMinimized
}

// Clone returns a deep copy of the window.
func (w *WindowEntity) Clone() *WindowEntity {
	out := *w
	if w.SubjectID != nil {
		s := *w.SubjectID
		out.SubjectID = &s
	}
	if w.MinSize != nil {
		s := *w.MinSize
		out.MinSize = &s
	}
	if w.MaxSize != nil {
		s := *w.MaxSize
		out.MaxSize = &s
	}
	if w.Saved != nil {
		s := *w.Saved
		out.Saved = &s
	}
	return &out
}

// WindowSpec describes a window to open. ID, stack index and focus are
// allocated by the reducer and must not be supplied.
type WindowSpec struct {
	Kind      Kind      `json:"kind"`
	SubjectID *string   `json:"subject_id,omitempty"`
	Title     string    `json:"title"`
	Position  *Position `json:"position,omitempty"` // Defaulted by cascading from the last-opened window of the same kind
	Size      *Size     `json:"size,omitempty"`
	MinSize   *Size     `json:"min_size,omitempty"`
	MaxSize   *Size     `json:"max_size,omitempty"`

	// Capability flags. Pointers so that "unset" defaults to true.
	Resizable *bool `json:"resizable,omitempty"`
	Draggable *bool `json:"draggable,omitempty"`
	Closable  *bool `json:"closable,omitempty"`

	Pinned bool        `json:"pinned,omitempty"`
	Badge  interface{} `json:"badge,omitempty"`
}
