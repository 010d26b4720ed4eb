package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
	"github.com/Zachdehooge/fireguard-dashboard/internal/synth"
)

// predictForm is the submitted manual prediction form. Pointers keep a
// legitimate zero (no rain) apart from a missing field.
type predictForm struct {
	Province     string   `form:"province" binding:"required"`
	Latitude     *float64 `form:"latitude" binding:"required"`
	Longitude    *float64 `form:"longitude" binding:"required"`
	TmaxC        *float64 `form:"Tmax_C" binding:"required"`
	RHmaxPct     *float64 `form:"RHmax_pct" binding:"required"`
	WindMaxKmh   *float64 `form:"Wind_max_kmh" binding:"required"`
	PrecipSumMM  *float64 `form:"Precip_sum_mm" binding:"required"`
	PrecipSum7d  *float64 `form:"Precip_sum_7d" binding:"required"`
	PrecipSum30d *float64 `form:"Precip_sum_30d" binding:"required"`
	SolarRadJM2  *float64 `form:"Solar_rad_J_m2" binding:"required"`
	BrightTI5    *float64 `form:"bright_ti5" binding:"required"`
	FRP          *float64 `form:"frp" binding:"required"`
}

func (f predictForm) input() fetcher.ManualInput {
	return fetcher.ManualInput{
		Province:     f.Province,
		Latitude:     *f.Latitude,
		Longitude:    *f.Longitude,
		TmaxC:        *f.TmaxC,
		RHmaxPct:     *f.RHmaxPct,
		WindMaxKmh:   *f.WindMaxKmh,
		PrecipSumMM:  *f.PrecipSumMM,
		PrecipSum7d:  *f.PrecipSum7d,
		PrecipSum30d: *f.PrecipSum30d,
		SolarRadJM2:  *f.SolarRadJM2,
		BrightTI5:    *f.BrightTI5,
		FRP:          *f.FRP,
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	tab := c.DefaultQuery("tab", generator.TabPredict)

	page := s.newPage(ctx, tab)
	switch tab {
	case generator.TabMap:
		days, err := parseDays(c.Query("days"), s.cfg.DefaultDays)
		if err != nil {
			n := generator.Failure(generator.MsgHotspotsFailed)
			page.Notice = &n
			break
		}
		page.Days = days
		layer, notice, err := s.loadHotspots(ctx, days)
		if err == nil {
			page.Layer = &layer
		}
		page.Notice = &notice
	case generator.TabAnalytics:
		if view, err := s.loadAnalytics(ctx); err != nil {
			n := generator.Failure(generator.MsgStatsFailed)
			page.Notice = &n
		} else if err := page.SetAnalytics(view); err != nil {
			s.logger.Warn("failed to render analytics charts", "error", err)
		}
	case generator.TabPredict:
	default:
		page.ActiveTab = generator.TabPredict
	}

	s.render(c, http.StatusOK, page)
}

func (s *Server) handlePredict(c *gin.Context) {
	ctx := c.Request.Context()
	page := s.newPage(ctx, generator.TabPredict)

	var form predictForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Debug("invalid predict form", "error", err)
		n := generator.Failure("❌ Lỗi: Vui lòng nhập đầy đủ thông tin")
		page.Notice = &n
		s.render(c, http.StatusBadRequest, page)
		return
	}
	in := form.input()
	page.SetForm(in)

	var res *fetcher.PredictResult
	err := s.controls.Predict.Do(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.api.Predict(ctx, in)
		return err
	})
	if err != nil {
		s.logger.Error("prediction failed", "province", in.Province, "error", err)
		n := generator.PredictFailed(err)
		page.Notice = &n
		s.render(c, failureStatus(err), page)
		return
	}

	view := generator.NewResultView(res, s.now())
	page.Result = &view
	n := generator.Success(generator.MsgPredictOK)
	page.Notice = &n

	if s.history != nil {
		if _, err := s.history.Record(ctx, in, res); err != nil {
			s.logger.Warn("failed to record prediction", "error", err)
		}
		page.History = s.recentHistory(ctx)
	}

	s.render(c, http.StatusOK, page)
}

func (s *Server) handleRandom(c *gin.Context) {
	ctx := c.Request.Context()
	page := s.newPage(ctx, generator.TabPredict)

	var (
		in       fetcher.ManualInput
		scenario synth.Scenario
	)
	err := s.controls.Random.Do(ctx, func(context.Context) error {
		s.randMu.Lock()
		defer s.randMu.Unlock()
		in, scenario = synth.RandomScenario(s.rand)
		return nil
	})
	if err != nil {
		n := generator.PredictFailed(err)
		page.Notice = &n
		s.render(c, failureStatus(err), page)
		return
	}

	page.SetForm(in)
	n := generator.Info(scenario.Notice())
	page.Notice = &n
	s.render(c, http.StatusOK, page)
}
