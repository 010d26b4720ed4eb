// Package server serves the interactive dashboard and proxies its actions
// to the prediction API.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachdehooge/fireguard-dashboard/internal/config"
	"github.com/Zachdehooge/fireguard-dashboard/internal/control"
	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
	"github.com/Zachdehooge/fireguard-dashboard/internal/history"
	"github.com/Zachdehooge/fireguard-dashboard/internal/synth"
)

// API is the subset of the prediction API client the dashboard uses.
type API interface {
	Predict(ctx context.Context, features fetcher.Features) (*fetcher.PredictResult, error)
	Hotspots(ctx context.Context, days int) (*fetcher.HotspotList, error)
	PredictHotspot(ctx context.Context, h fetcher.Hotspot) (*fetcher.HotspotPrediction, error)
	PredictClick(ctx context.Context, lat, lon float64) (*fetcher.ClickPrediction, error)
	Stats(ctx context.Context) (*fetcher.Stats, error)
}

// Server is the dashboard server. One Server models one dashboard: its
// controls are shared by every browser talking to it.
type Server struct {
	api      API
	cfg      *config.Config
	logger   *slog.Logger
	controls *control.Set
	history  *history.Store

	randMu sync.Mutex
	rand   *rand.Rand

	// known is the last hotspot layer loaded, used to name the nearest
	// hotspot in click popups.
	knownMu sync.RWMutex
	known   []fetcher.Hotspot

	now func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithHistory records successful manual predictions to store.
func WithHistory(store *history.Store) Option {
	return func(s *Server) { s.history = store }
}

// WithRand sets the random source of the demo-data button.
func WithRand(r *rand.Rand) Option {
	return func(s *Server) { s.rand = r }
}

// New creates a dashboard server.
func New(api API, cfg *config.Config, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		api:      api,
		cfg:      cfg,
		logger:   logger,
		controls: control.NewSet(),
		rand:     synth.NewRand(0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Controls exposes the dashboard controls.
func (s *Server) Controls() *control.Set {
	return s.controls
}

// Router builds the gin engine with every dashboard route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))

	r.GET("/healthz", s.handleHealthz)

	r.GET("/", s.handleIndex)

	predict := r.Group("/predict")
	{
		predict.POST("", s.handlePredict)
		predict.POST("/random", s.handleRandom)
	}

	m := r.Group("/map")
	{
		m.GET("/hotspots", s.handleHotspots)
		m.POST("/hotspot", s.handlePredictHotspot)
		m.POST("/click", s.handlePredictClick)
	}

	analytics := r.Group("/analytics")
	{
		analytics.GET("", s.handleAnalytics)
		analytics.GET("/province.svg", s.handleProvinceChart)
		analytics.GET("/monthly.svg", s.handleMonthlyChart)
	}

	return r
}

// Run serves the dashboard on the configured address until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", s.cfg.ListenAddr, "api", s.cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down dashboard")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// handleHealthz reports liveness and which controls have a call in flight.
func (s *Server) handleHealthz(c *gin.Context) {
	busy := gin.H{}
	for _, g := range s.controls.All() {
		busy[g.Name()] = g.Disabled()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "busy": busy})
}

// newPage builds a page with the shared state every tab shows.
func (s *Server) newPage(ctx context.Context, tab string) *generator.Page {
	page := generator.NewPage(tab, synth.Provinces)
	page.Interactive = true
	page.Days = s.cfg.DefaultDays
	page.History = s.recentHistory(ctx)
	return page
}

func (s *Server) recentHistory(ctx context.Context) []generator.HistoryRow {
	if s.history == nil {
		return nil
	}
	entries, err := s.history.Recent(ctx, s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Warn("failed to read prediction history", "error", err)
		return nil
	}
	return generator.NewHistoryRows(entries, s.now())
}

// render writes page as HTML with status. Controls are always rendered
// enabled: a full page means this browser's own call has settled, and the
// page script disables a control again while its next call is in flight.
func (s *Server) render(c *gin.Context, status int, page *generator.Page) {
	var buf bytes.Buffer
	if err := generator.RenderDashboard(&buf, page); err != nil {
		s.logger.Error("failed to render dashboard", "error", err)
		c.String(http.StatusInternalServerError, "failed to render dashboard")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// failureStatus maps a failed guarded call to its HTTP status. Anything
// that is not a busy control or bad input is an upstream failure.
func failureStatus(err error) int {
	switch {
	case errors.Is(err, control.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, fetcher.ErrInvalidDays):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) setKnown(hotspots []fetcher.Hotspot) {
	s.knownMu.Lock()
	s.known = hotspots
	s.knownMu.Unlock()
}

func (s *Server) knownHotspots() []fetcher.Hotspot {
	s.knownMu.RLock()
	defer s.knownMu.RUnlock()
	return s.known
}
