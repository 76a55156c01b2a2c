package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/hansfischmann-pm/planner-test-sub004/internal/api/http"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/canvas"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/session"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/viewport"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/config"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/logging"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/monitoring"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/registry"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/ws"
)

// Server wires the canvas engine to its HTTP and WebSocket surfaces.
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	router   *gin.Engine
	httpSrv  *http.Server
	store    *canvas.Store
	sessions *session.Manager
	tracker  *viewport.Tracker
	metrics  *monitoring.Metrics
}

// New builds a fully wired server from config. Each server carries its own
// metrics registry so multiple instances can coexist in one process.
func New(cfg *config.Config, logger *logging.Logger) *Server {
	promReg := prometheus.NewRegistry()
	metrics := monitoring.NewWithRegistry(promReg)
	tracker := viewport.NewTracker(cfg.Canvas.DefaultViewport())

	reducerCfg := canvas.DefaultConfig()
	reducerCfg.Padding = cfg.Canvas.Padding
	reducerCfg.CascadeStep = cfg.Canvas.CascadeStep
	reducerCfg.DefaultSize.Width = cfg.Canvas.DefaultWidth
	reducerCfg.DefaultSize.Height = cfg.Canvas.DefaultHeight
	reducerCfg.ChatDockedWidth = cfg.Canvas.ChatDockedWidth
	reducerCfg.ChatMinWidth = cfg.Canvas.ChatMinWidth
	reducerCfg.ChatMaxWidth = cfg.Canvas.ChatMaxWidth
	reducerCfg.ChatCollapsedWidth = cfg.Canvas.ChatCollapsedWidth

	store := canvas.NewStore(reducerCfg, logger, metrics)
	sessions := session.NewManager(store, cfg.Storage.Path).WithMetrics(metrics)
	kinds := registry.NewWithDefaults()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(monitoring.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers := apihttp.NewHandlers(store, sessions, kinds, tracker, reducerCfg)
	wsHandler := ws.NewHandler(store, tracker, reducerCfg, logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))

	// Window lifecycle
	router.GET("/windows", handlers.ListWindows)
	router.POST("/windows", handlers.OpenWindow)
	router.GET("/windows/:id", handlers.GetWindow)
	router.DELETE("/windows/:id", handlers.WindowAction(canvas.ActionClose))
	router.POST("/windows/:id/focus", handlers.WindowAction(canvas.ActionFocus))
	router.POST("/windows/:id/move", handlers.MoveWindow)
	router.POST("/windows/:id/resize", handlers.ResizeWindow)
	router.POST("/windows/:id/minimize", handlers.WindowAction(canvas.ActionMinimize))
	router.POST("/windows/:id/maximize", handlers.WindowAction(canvas.ActionMaximize))
	router.POST("/windows/:id/restore", handlers.WindowAction(canvas.ActionRestore))
	router.POST("/windows/:id/pin", handlers.WindowAction(canvas.ActionPin))
	router.POST("/windows/:id/unpin", handlers.WindowAction(canvas.ActionUnpin))
	router.POST("/windows/:id/badge", handlers.SetBadge)

	// Batch operations
	router.POST("/windows/minimize-all", handlers.BatchAction(canvas.ActionMinimizeAll))
	router.POST("/windows/restore-all", handlers.BatchAction(canvas.ActionRestoreAll))
	router.POST("/windows/close-all", handlers.BatchAction(canvas.ActionCloseAll))
	router.POST("/windows/clear", handlers.BatchAction(canvas.ActionClearLayout))

	// Arrangements
	router.POST("/arrange/cascade", handlers.Arrange(canvas.ActionCascade))
	router.POST("/arrange/tile-horizontal", handlers.Arrange(canvas.ActionTileHorizontal))
	router.POST("/arrange/tile-vertical", handlers.Arrange(canvas.ActionTileVertical))
	router.POST("/arrange/gather", handlers.Arrange(canvas.ActionGather))

	// Viewport
	router.GET("/viewport", handlers.Viewport)
	router.POST("/viewport/offset", handlers.SetOffset)
	router.POST("/viewport/size", handlers.SetViewportSize)
	router.POST("/wallpaper", handlers.SetWallpaper)
	router.GET("/kinds", handlers.ListKinds)

	// Chat panel
	router.GET("/chat", handlers.ChatState)
	router.POST("/chat/mode", handlers.SetChatMode)
	router.POST("/chat/collapse", handlers.ToggleChatCollapsed)
	router.POST("/chat/width", handlers.SetChatWidth)

	// Sessions
	router.POST("/sessions/save", handlers.SaveSession)
	router.POST("/sessions/save-default", handlers.SaveDefaultSession)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.POST("/sessions/:id/restore", handlers.RestoreSession)
	router.DELETE("/sessions/:id", handlers.DeleteSession)

	// WebSocket stream
	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		cfg:      cfg,
		logger:   logger,
		router:   router,
		store:    store,
		sessions: sessions,
		tracker:  tracker,
		metrics:  metrics,
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
	s.logger.Info("server listening", zap.String("port", s.cfg.Server.Port))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown saves the default session and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, err := s.sessions.SaveDefault(); err != nil {
		s.logger.Warn("failed to save default session on shutdown", zap.Error(err))
	}
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Store exposes the canvas store, mainly for tests.
func (s *Server) Store() *canvas.Store { return s.store }

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// requestID tags every request with an id for log correlation, honoring one
// supplied by the caller.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func requestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
