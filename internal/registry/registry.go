// Package registry maps window kinds to taskbar display metadata and hosts
// the content-renderer collaborator boundary. The engine itself never
// inspects rendered content; it only hands kind and subject through.
package registry

import (
	"fmt"
	"sync"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// KindInfo is the display metadata for one window kind.
type KindInfo struct {
	Kind  types.Kind `json:"kind"`
	Label string     `json:"label"`
	Icon  string     `json:"icon"`
}

// Renderer produces renderable content for a window body. Implemented by the
// presentation layer; opaque to the engine.
type Renderer interface {
	Render(kind types.Kind, subjectID, groupID string) (interface{}, error)
}

// Registry manages the closed set of window kinds.
type Registry struct {
	kinds sync.Map // types.Kind -> KindInfo
}

// New creates an empty kind registry.
func New() *Registry {
	return &Registry{}
}

// NewWithDefaults creates a registry seeded with the built-in kinds.
func NewWithDefaults() *Registry {
	r := New()
	for _, info := range []KindInfo{
		{Kind: "campaign", Label: "Campaign", Icon: "target"},
		{Kind: "report", Label: "Report", Icon: "chart"},
		{Kind: "board", Label: "Board", Icon: "grid"},
		{Kind: "settings", Label: "Settings", Icon: "gear"},
		{Kind: types.KindChat, Label: "Chat", Icon: "bubble"},
	} {
		_ = r.Register(info)
	}
	return r
}

// Register adds or replaces a kind.
func (r *Registry) Register(info KindInfo) error {
	if info.Kind == "" {
		return fmt.Errorf("kind cannot be empty")
	}
	r.kinds.Store(info.Kind, info)
	return nil
}

// Get retrieves display metadata for a kind.
func (r *Registry) Get(kind types.Kind) (KindInfo, bool) {
	val, ok := r.kinds.Load(kind)
	if !ok {
		return KindInfo{}, false
	}
	return val.(KindInfo), true
}

// Known reports whether a kind is registered.
func (r *Registry) Known(kind types.Kind) bool {
	_, ok := r.kinds.Load(kind)
	return ok
}

// List returns all registered kinds.
func (r *Registry) List() []KindInfo {
	var out []KindInfo
	r.kinds.Range(func(_, value interface{}) bool {
		out = append(out, value.(KindInfo))
		return true
	})
	return out
}
