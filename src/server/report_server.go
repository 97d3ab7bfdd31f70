package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"sales-forecast/src/logger"
	"sales-forecast/src/models"

	"github.com/gin-gonic/gin"
)

// RunFunc recomputes the report on demand.
type RunFunc func(ctx context.Context) (*models.MReport, error)

// -----------------------------------------------------------------------------
// ReportServer
// -----------------------------------------------------------------------------

type ReportServer struct {
	Config     *models.MConfig
	Logger     *logger.Logger
	Runner     RunFunc
	engine     *gin.Engine
	httpServer *http.Server

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MReportMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	hubOnce    sync.Once
	stopOnce   sync.Once

	// Local cache
	latest     *models.MReport
	stateMutex sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewReportServer(cfg *models.MConfig, runner RunFunc, logger *logger.Logger) *ReportServer {
	// Set Gin mode
	if strings.ToUpper(cfg.LogLevel) != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &ReportServer{
		Config:  cfg,
		Logger:  logger,
		Runner:  runner,
		engine:  gin.New(),
		clients: make(map[*Client]struct{}),
		// Buffered so a run never waits on slow websocket clients
		broadcast:  make(chan *models.MReportMessage, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}

	s.engine.Use(gin.Recovery())
	if strings.ToUpper(cfg.LogLevel) == "DEBUG" {
		s.engine.Use(gin.Logger())
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *ReportServer) setupRoutes() {
	// REST API endpoints
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/config", s.getConfig)
	api.GET("/metrics", s.getMetrics)
	api.GET("/report", s.getReport)
	api.GET("/report/:line", s.getLineReport)
	api.POST("/run", s.postRun)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Handler exposes the routes, with the websocket hub running.
func (s *ReportServer) Handler() http.Handler {
	s.startHub()
	return s.engine
}

// -----------------------------------------------------------------------------

// Start serves until Stop is called.
func (s *ReportServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	s.stateMutex.Lock()
	s.httpServer = &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	srv := s.httpServer
	s.stateMutex.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *ReportServer) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		s.stateMutex.RLock()
		srv := s.httpServer
		s.stateMutex.RUnlock()

		if srv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err = srv.Shutdown(ctx)
		}
		close(s.done)
	})
	return err
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *ReportServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	var latest int64
	if s.latest != nil {
		latest = s.latest.GeneratedAt.Unix()
	}
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   connections,
		"latest_update": latest,
	})
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, configView(s.Config))
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getMetrics(c *gin.Context) {
	report := s.Latest()
	if report == nil {
		c.JSON(http.StatusOK, models.MProcessingMetrics{})
		return
	}
	c.JSON(http.StatusOK, report.ProcessingMetrics)
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getReport(c *gin.Context) {
	report := s.Latest()
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report available yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// -----------------------------------------------------------------------------

func (s *ReportServer) getLineReport(c *gin.Context) {
	report := s.Latest()
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report available yet"})
		return
	}

	line, ok := report.Line(c.Param("line"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown line %q", c.Param("line"))})
		return
	}
	c.JSON(http.StatusOK, line)
}

// -----------------------------------------------------------------------------

// postRun recomputes the report and pushes it to every websocket client.
func (s *ReportServer) postRun(c *gin.Context) {
	if s.Runner == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "recomputation is not available"})
		return
	}

	report, err := s.Runner(c.Request.Context())
	if err != nil {
		s.Logger.Error("Run requested over HTTP failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.Broadcast(report)
	c.JSON(http.StatusOK, report)
}
