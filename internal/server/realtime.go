package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachdehooge/fireguard-dashboard/internal/control"
	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
)

// clickRequest is the body of POST /map/click.
type clickRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

func parseDays(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", fetcher.ErrInvalidDays, raw)
	}
	if days < fetcher.MinDays || days > fetcher.MaxDays {
		return 0, fmt.Errorf("%w: %d", fetcher.ErrInvalidDays, days)
	}
	return days, nil
}

// loadHotspots refreshes the marker layer through the refresh control. On
// failure the returned notice is the error toast.
func (s *Server) loadHotspots(ctx context.Context, days int) (generator.HotspotLayer, generator.Notice, error) {
	var list *fetcher.HotspotList
	err := s.controls.RefreshMap.Do(ctx, func(ctx context.Context) error {
		var err error
		list, err = s.api.Hotspots(ctx, days)
		return err
	})
	if err != nil {
		s.logger.Error("failed to load hotspots", "days", days, "error", err)
		if errors.Is(err, control.ErrBusy) {
			return generator.HotspotLayer{}, generator.Failure(generator.MsgBusy), err
		}
		return generator.HotspotLayer{}, generator.Failure(generator.MsgHotspotsFailed), err
	}

	s.setKnown(list.Data)
	layer, notice := generator.NewHotspotLayer(list, days)
	return layer, notice, nil
}

func (s *Server) handleHotspots(c *gin.Context) {
	days, err := parseDays(c.Query("days"), s.cfg.DefaultDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"notice": generator.Failure(generator.MsgHotspotsFailed), "error": err.Error()})
		return
	}

	layer, notice, err := s.loadHotspots(c.Request.Context(), days)
	if err != nil {
		c.JSON(failureStatus(err), gin.H{"notice": notice})
		return
	}
	c.JSON(http.StatusOK, gin.H{"layer": layer, "notice": notice})
}

func (s *Server) handlePredictHotspot(c *gin.Context) {
	var h fetcher.Hotspot
	if err := c.ShouldBindJSON(&h); err != nil {
		c.JSON(http.StatusBadRequest, generator.NewFailedPopup(generator.PopupHotspot, err))
		return
	}

	res, err := s.api.PredictHotspot(c.Request.Context(), h)
	if err != nil {
		s.logger.Error("hotspot prediction failed", "lat", h.Lat, "lon", h.Lon, "error", err)
		c.JSON(http.StatusBadGateway, generator.NewFailedPopup(generator.PopupHotspot, err))
		return
	}
	c.JSON(http.StatusOK, generator.NewHotspotPopup(h, res))
}

func (s *Server) handlePredictClick(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, generator.NewFailedPopup(generator.PopupClick, err))
		return
	}
	lat, lon := *req.Lat, *req.Lon

	res, err := s.api.PredictClick(c.Request.Context(), lat, lon)
	if err != nil {
		s.logger.Error("click prediction failed", "lat", lat, "lon", lon, "error", err)
		c.JSON(http.StatusBadGateway, generator.NewFailedPopup(generator.PopupClick, err))
		return
	}
	c.JSON(http.StatusOK, generator.NewClickPopup(lat, lon, res, s.knownHotspots()))
}
