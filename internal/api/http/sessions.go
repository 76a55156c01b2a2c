package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/canvas"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// SaveSession persists the pinned layout under a new named session.
func (h *Handlers) SaveSession(c *gin.Context) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	session, err := h.sessions.Save(body.Name, body.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session.ToMetadata()})
}

// SaveDefaultSession persists the pinned layout under the default name.
func (h *Handlers) SaveDefaultSession(c *gin.Context) {
	session, err := h.sessions.SaveDefault()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session.ToMetadata()})
}

// ListSessions lists metadata for every saved session.
func (h *Handlers) ListSessions(c *gin.Context) {
	metadata, err := h.sessions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": metadata})
}

// GetSession returns one saved session including its snapshot.
func (h *Handlers) GetSession(c *gin.Context) {
	session, err := h.sessions.Load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// RestoreSession swaps a saved layout into the live canvas.
func (h *Handlers) RestoreSession(c *gin.Context) {
	if err := h.sessions.Restore(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": true, "stats": h.store.Stats()})
}

// DeleteSession removes a saved session.
func (h *Handlers) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ChatState reports the current chat panel configuration.
func (h *Handlers) ChatState(c *gin.Context) {
	state := h.store.State()
	resp := gin.H{"chat": state.Chat}
	if state.Chat.Mode == types.ChatFloating && state.Chat.WindowID != nil {
		if w, ok := state.Windows[*state.Chat.WindowID]; ok {
			resp["window"] = w
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SetChatMode switches chat between the docked strip and a floating window.
func (h *Handlers) SetChatMode(c *gin.Context) {
	var body struct {
		Mode types.ChatMode `json:"mode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Mode != types.ChatDocked && body.Mode != types.ChatFloating {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be docked or floating"})
		return
	}
	h.dispatch(c, canvas.ChatSetMode(body.Mode, h.tracker.Viewport()))
}

// ToggleChatCollapsed collapses or expands the docked chat strip.
func (h *Handlers) ToggleChatCollapsed(c *gin.Context) {
	h.dispatch(c, canvas.ChatToggleCollapsed())
}

// SetChatWidth adjusts the docked chat strip width within its clamp range.
func (h *Handlers) SetChatWidth(c *gin.Context) {
	var body struct {
		Width int `json:"width"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, canvas.ChatSetWidth(body.Width))
}
