package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
)

// loadAnalytics fetches stats through the analytics control.
func (s *Server) loadAnalytics(ctx context.Context) (generator.AnalyticsView, error) {
	var stats *fetcher.Stats
	err := s.controls.Analytics.Do(ctx, func(ctx context.Context) error {
		var err error
		stats, err = s.api.Stats(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("failed to load stats", "error", err)
		return generator.AnalyticsView{}, err
	}
	return generator.NewAnalyticsView(stats), nil
}

func (s *Server) handleAnalytics(c *gin.Context) {
	view, err := s.loadAnalytics(c.Request.Context())
	if err != nil {
		c.JSON(failureStatus(err), gin.H{"notice": generator.Failure(generator.MsgStatsFailed)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": view, "notice": generator.Success(generator.MsgStatsOK)})
}

func (s *Server) handleProvinceChart(c *gin.Context) {
	s.serveChart(c, func(v generator.AnalyticsView) ([]byte, error) {
		return generator.ProvinceChartSVG(v.Provinces)
	})
}

func (s *Server) handleMonthlyChart(c *gin.Context) {
	s.serveChart(c, func(v generator.AnalyticsView) ([]byte, error) {
		return generator.MonthlyChartSVG(v.Monthly)
	})
}

// serveChart renders one analytics chart. An empty series answers 204.
func (s *Server) serveChart(c *gin.Context, draw func(generator.AnalyticsView) ([]byte, error)) {
	view, err := s.loadAnalytics(c.Request.Context())
	if err != nil {
		c.JSON(failureStatus(err), gin.H{"notice": generator.Failure(generator.MsgStatsFailed)})
		return
	}

	svg, err := draw(view)
	if err != nil {
		s.logger.Error("failed to draw chart", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"notice": generator.Failure(generator.MsgStatsFailed)})
		return
	}
	if svg == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", svg)
}
