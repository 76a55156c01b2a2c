// Package ws streams canvas state over WebSocket and accepts gesture
// actions. Continuous gestures arrive in drift-free form: window drag and
// resize as absolute-position action messages, scrollbar drags as total
// pointer deltas against the offset captured at drag start. Dropping or
// coalescing intermediate messages under backpressure never compounds error;
// the final message of a gesture restates the whole gesture.
package ws

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/canvas"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/viewport"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/logging"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/monitoring"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/id"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The browser shell is same-deployment; origin enforcement sits at the proxy
	},
}

// Message is the wire envelope in both directions.
type Message struct {
	Type    string             `json:"type"`
	Action  *canvas.Action     `json:"action,omitempty"`
	Width   int                `json:"width,omitempty"`
	Height  int                `json:"height,omitempty"`
	Axis    string             `json:"axis,omitempty"`
	Track   int                `json:"track,omitempty"`
	Delta   int                `json:"delta,omitempty"`
	State   *types.CanvasState `json:"state,omitempty"`
	Applied *bool              `json:"applied,omitempty"`
	Message string             `json:"message,omitempty"`
}

// Handler manages WebSocket connections.
type Handler struct {
	store   *canvas.Store
	tracker *viewport.Tracker
	cfg     canvas.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a WebSocket handler. metrics may be nil.
func NewHandler(store *canvas.Store, tracker *viewport.Tracker, cfg canvas.Config, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	return &Handler{store: store, tracker: tracker, cfg: cfg, logger: logger, metrics: metrics}
}

// HandleConnection upgrades the request and serves one client until it
// disconnects. The state subscription is scoped to the connection and always
// released, so repeated connects never leak listeners.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := id.NewConnID().String()
	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
		defer h.metrics.WSConnections.Dec()
	}
	h.logger.Info("client connected", zap.String("conn_id", connID))

	client := newClient(conn)
	defer client.close()

	unsubscribe := h.store.Subscribe(func(snapshot *types.CanvasState) {
		client.send(Message{Type: "state", State: snapshot})
	})
	defer unsubscribe()

	// Initial snapshot so the client renders without waiting for an action.
	client.send(Message{Type: "state", State: h.store.State()})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			h.logger.Info("client disconnected", zap.String("conn_id", connID))
			return
		}

		var msg Message
		if err := sonic.Unmarshal(raw, &msg); err != nil {
			client.send(Message{Type: "error", Message: "malformed message"})
			continue
		}
		h.handle(client, msg)
	}
}

func (h *Handler) handle(client *client, msg Message) {
	if h.metrics != nil {
		h.metrics.WSMessages.WithLabelValues(msg.Type, "in").Inc()
	}

	switch msg.Type {
	case "action":
		if msg.Action == nil {
			client.send(Message{Type: "error", Message: "missing action"})
			return
		}
		action := *msg.Action
		if action.Viewport == nil && needsViewport(action.Type) {
			vp := h.tracker.Viewport()
			action.Viewport = &vp
		}
		applied := h.store.Dispatch(action)
		client.send(Message{Type: "ack", Applied: &applied})

	case "resize":
		h.tracker.Set(types.Size{Width: msg.Width, Height: msg.Height})

	case "scroll_drag_start":
		axis := viewport.Horizontal
		if msg.Axis == "vertical" {
			axis = viewport.Vertical
		}
		state := h.store.State()
		windows := make([]*types.WindowEntity, 0, len(state.Windows))
		for _, w := range state.Windows {
			windows = append(windows, w)
		}
		vp := viewport.Effective(h.tracker.Viewport(), state.Chat, h.cfg.ChatCollapsedWidth)
		bounds := viewport.Bounds(windows, h.cfg.Padding)
		client.drag = viewport.NewDrag(axis, state.Offset, bounds, vp, msg.Track)

	case "scroll_drag_move":
		if client.drag == nil {
			client.send(Message{Type: "error", Message: "no drag in progress"})
			return
		}
		offset := client.drag.OffsetAt(msg.Delta)
		applied := h.store.Dispatch(canvas.Pan(offset, h.tracker.Viewport()))
		client.send(Message{Type: "ack", Applied: &applied})

	case "scroll_drag_end":
		client.drag = nil

	case "ping":
		client.send(Message{Type: "pong"})

	default:
		client.send(Message{Type: "error", Message: "unknown message type"})
	}
}

// needsViewport lists the action types whose semantics depend on the
// physical viewport; clients may omit it and get the last reported size.
func needsViewport(t canvas.ActionType) bool {
	switch t {
	case canvas.ActionPan, canvas.ActionCascade, canvas.ActionTileHorizontal,
		canvas.ActionTileVertical, canvas.ActionGather, canvas.ActionChatSetMode:
		return true
	}
	return false
}
