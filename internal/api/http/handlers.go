// Package http exposes the canvas engine over REST: every reducer action and
// selector has an endpoint. Gestures normally flow over the websocket; this
// surface serves programmatic clients and tooling.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/arrange"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/canvas"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/session"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/viewport"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/registry"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	store    *canvas.Store
	sessions *session.Manager
	kinds    *registry.Registry
	tracker  *viewport.Tracker
	cfg      canvas.Config
}

// NewHandlers creates a handler set.
func NewHandlers(
	store *canvas.Store,
	sessions *session.Manager,
	kinds *registry.Registry,
	tracker *viewport.Tracker,
	cfg canvas.Config,
) *Handlers {
	return &Handlers{
		store:    store,
		sessions: sessions,
		kinds:    kinds,
		tracker:  tracker,
		cfg:      cfg,
	}
}

// Root handles the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "canvas-desktop",
	})
}

// Health handles detailed health checks.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"canvas":   h.store.Stats(),
		"sessions": h.sessions.Stats(),
	})
}

// ListWindows lists visible and minimized windows plus summary stats.
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"visible":   h.store.ListVisible(),
		"minimized": h.store.ListMinimized(),
		"stats":     h.store.Stats(),
	})
}

// GetWindow returns one window.
func (h *Handlers) GetWindow(c *gin.Context) {
	w, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}
	c.JSON(http.StatusOK, w)
}

// OpenWindow opens a new window from a spec.
func (h *Handlers) OpenWindow(c *gin.Context) {
	var spec types.WindowSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if spec.Kind != types.KindChat && !h.kinds.Known(spec.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown window kind"})
		return
	}

	before := idSet(h.store.State())
	applied := h.store.Dispatch(canvas.Open(spec))

	resp := gin.H{"applied": applied}
	if applied {
		// The reducer allocated the id; report the window it created.
		for _, w := range h.store.ListVisible() {
			if !before[w.ID] {
				resp["window"] = w
				break
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}

// WindowAction dispatches one of the single-window actions addressed by id.
func (h *Handlers) WindowAction(actionType canvas.ActionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, canvas.Action{Type: actionType, WindowID: c.Param("id")})
	}
}

// MoveWindow repositions a window.
func (h *Handlers) MoveWindow(c *gin.Context) {
	var pos types.Position
	if err := c.ShouldBindJSON(&pos); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, canvas.Move(c.Param("id"), pos))
}

// ResizeWindow resizes a window.
func (h *Handlers) ResizeWindow(c *gin.Context) {
	var size types.Size
	if err := c.ShouldBindJSON(&size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, canvas.Resize(c.Param("id"), size))
}

// SetBadge attaches an opaque badge to a window; an empty body clears it.
func (h *Handlers) SetBadge(c *gin.Context) {
	var body struct {
		Badge interface{} `json:"badge"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, canvas.SetBadge(c.Param("id"), body.Badge))
}

// BatchAction dispatches one of the whole-store actions.
func (h *Handlers) BatchAction(actionType canvas.ActionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, canvas.Action{Type: actionType})
	}
}

// Arrange dispatches an arrangement action against the current viewport.
func (h *Handlers) Arrange(actionType canvas.ActionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		vp := h.tracker.Viewport()
		h.dispatch(c, canvas.Action{Type: actionType, Viewport: &vp})
	}
}

// Viewport reports the derived viewport view: bounds, scrollbars, offset and
// whether any window sits off screen. Pure derivation; nothing persisted.
func (h *Handlers) Viewport(c *gin.Context) {
	state := h.store.State()
	physical := h.tracker.Viewport()
	effective := viewport.Effective(physical, state.Chat, h.cfg.ChatCollapsedWidth)

	windows := make([]*types.WindowEntity, 0, len(state.Windows))
	for _, w := range state.Windows {
		windows = append(windows, w)
	}
	bounds := viewport.Bounds(windows, h.cfg.Padding)
	hbar, vbar := viewport.Scrollbars(bounds, effective, state.Offset)

	c.JSON(http.StatusOK, gin.H{
		"bounds":                bounds,
		"offset":                state.Offset,
		"physical":              physical,
		"effective":             effective,
		"scrollbar_horizontal":  hbar,
		"scrollbar_vertical":    vbar,
		"has_offscreen_windows": hasOffscreen(state, effective),
	})
}

// SetOffset pans the canvas; the reducer clamps into valid range.
func (h *Handlers) SetOffset(c *gin.Context) {
	var offset types.Position
	if err := c.ShouldBindJSON(&offset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, canvas.Pan(offset, h.tracker.Viewport()))
}

// SetViewportSize records the physical viewport reported by the client.
func (h *Handlers) SetViewportSize(c *gin.Context) {
	var size types.Size
	if err := c.ShouldBindJSON(&size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.tracker.Set(size)
	c.JSON(http.StatusOK, gin.H{"viewport": h.tracker.Viewport()})
}

// SetWallpaper sets the cosmetic wallpaper descriptor.
func (h *Handlers) SetWallpaper(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, canvas.SetWallpaper(body.Name))
}

// ListKinds lists taskbar display metadata for every registered kind.
func (h *Handlers) ListKinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kinds": h.kinds.List()})
}

func (h *Handlers) dispatch(c *gin.Context, a canvas.Action) {
	applied := h.store.Dispatch(a)
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

func hasOffscreen(state *types.CanvasState, effective types.Size) bool {
	windows := make([]*types.WindowEntity, 0, len(state.Windows))
	for _, w := range state.Windows {
		windows = append(windows, w)
	}
	return arrange.HasOffscreen(windows, state.Offset, effective)
}

func idSet(state *types.CanvasState) map[string]bool {
	out := make(map[string]bool, len(state.Windows))
	for wid := range state.Windows {
		out[wid] = true
	}
	return out
}
