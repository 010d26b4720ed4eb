package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachdehooge/fireguard-dashboard/internal/config"
	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/generator"
	"github.com/Zachdehooge/fireguard-dashboard/internal/history"
	"github.com/Zachdehooge/fireguard-dashboard/internal/synth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAPI answers with canned responses; nil funcs fail like a dead network.
type fakeAPI struct {
	predict        func(ctx context.Context, f fetcher.Features) (*fetcher.PredictResult, error)
	hotspots       func(ctx context.Context, days int) (*fetcher.HotspotList, error)
	predictHotspot func(ctx context.Context, h fetcher.Hotspot) (*fetcher.HotspotPrediction, error)
	predictClick   func(ctx context.Context, lat, lon float64) (*fetcher.ClickPrediction, error)
	stats          func(ctx context.Context) (*fetcher.Stats, error)
}

var errNetwork = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

func (f *fakeAPI) Predict(ctx context.Context, features fetcher.Features) (*fetcher.PredictResult, error) {
	if f.predict == nil {
		return nil, errNetwork
	}
	return f.predict(ctx, features)
}

func (f *fakeAPI) Hotspots(ctx context.Context, days int) (*fetcher.HotspotList, error) {
	if f.hotspots == nil {
		return nil, errNetwork
	}
	return f.hotspots(ctx, days)
}

func (f *fakeAPI) PredictHotspot(ctx context.Context, h fetcher.Hotspot) (*fetcher.HotspotPrediction, error) {
	if f.predictHotspot == nil {
		return nil, errNetwork
	}
	return f.predictHotspot(ctx, h)
}

func (f *fakeAPI) PredictClick(ctx context.Context, lat, lon float64) (*fetcher.ClickPrediction, error) {
	if f.predictClick == nil {
		return nil, errNetwork
	}
	return f.predictClick(ctx, lat, lon)
}

func (f *fakeAPI) Stats(ctx context.Context) (*fetcher.Stats, error) {
	if f.stats == nil {
		return nil, errNetwork
	}
	return f.stats(ctx)
}

func newTestServer(t *testing.T, api *fakeAPI, opts ...Option) (*Server, http.Handler) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.HistoryDir = ""
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	opts = append([]Option{WithRand(synth.NewRand(7))}, opts...)
	s := New(api, cfg, logger, opts...)
	return s, s.Router()
}

func do(h http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func predictFormBody() io.Reader {
	v := url.Values{}
	v.Set("province", "Đắk Lắk")
	v.Set("latitude", "12.71")
	v.Set("longitude", "108.24")
	v.Set("Tmax_C", "38.2")
	v.Set("RHmax_pct", "35")
	v.Set("Wind_max_kmh", "22.5")
	v.Set("Precip_sum_mm", "0")
	v.Set("Precip_sum_7d", "0")
	v.Set("Precip_sum_30d", "4.5")
	v.Set("Solar_rad_J_m2", "24.1")
	v.Set("bright_ti5", "335.2")
	v.Set("frp", "12.3")
	return strings.NewReader(v.Encode())
}

const formType = "application/x-www-form-urlencoded"

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t, &fakeAPI{})

	w := do(h, http.MethodGet, "/healthz", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","busy":{"predict":false,"random":false,"refresh-map":false,"analytics":false}}`, w.Body.String())
}

func TestIndex(t *testing.T) {
	_, h := newTestServer(t, &fakeAPI{})

	w := do(h, http.MethodGet, "/", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="predict-form"`)
	assert.Contains(t, w.Body.String(), "Lâm Đồng")
}

func TestPredict(t *testing.T) {
	var got fetcher.ManualInput
	api := &fakeAPI{
		predict: func(_ context.Context, f fetcher.Features) (*fetcher.PredictResult, error) {
			got = f.(fetcher.ManualInput)
			return &fetcher.PredictResult{IsFire: true, Probability: 0.82, RiskLevel: "Nguy cơ cao"}, nil
		},
	}
	store, err := history.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s, h := newTestServer(t, api, WithHistory(store))

	w := do(h, http.MethodPost, "/predict", predictFormBody(), formType)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="card result danger"`)
	assert.Contains(t, body, "width: 82.0%")
	assert.Contains(t, body, generator.MsgPredictOK)
	assert.Contains(t, body, "Dự báo gần đây")
	assert.False(t, s.Controls().Predict.Disabled())

	assert.Equal(t, "Đắk Lắk", got.Province)
	assert.Equal(t, 0.0, got.PrecipSumMM)
	assert.Equal(t, 38.2, got.TmaxC)

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.82, entries[0].Probability)
}

func TestPredictFailureRestoresControl(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"api error", &fetcher.APIError{Message: "model not loaded"}, "❌ Lỗi: API Error"},
		{"status error", &fetcher.StatusError{StatusCode: 500, Body: "boom"}, "❌ Lỗi: API Error"},
		{"network", errNetwork, "❌ Lỗi: Failed to fetch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				predict: func(context.Context, fetcher.Features) (*fetcher.PredictResult, error) {
					return nil, tt.err
				},
			}
			store, err := history.Open(t.TempDir())
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })

			s, h := newTestServer(t, api, WithHistory(store))

			w := do(h, http.MethodPost, "/predict", predictFormBody(), formType)

			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Contains(t, w.Body.String(), `id="notice" class="error"`)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.NotRegexp(t, `id="predict-btn"[^>]*disabled`, w.Body.String())
			assert.NotContains(t, w.Body.String(), `id="result"`)
			assert.False(t, s.Controls().Predict.Disabled())

			entries, err := store.Recent(context.Background(), 10)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestPredictBusy(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{
		predict: func(ctx context.Context, _ fetcher.Features) (*fetcher.PredictResult, error) {
			<-release
			return &fetcher.PredictResult{Probability: 0.2}, nil
		},
	}
	s, h := newTestServer(t, api)

	var wg sync.WaitGroup
	wg.Add(1)
	var first *httptest.ResponseRecorder
	go func() {
		defer wg.Done()
		first = do(h, http.MethodPost, "/predict", predictFormBody(), formType)
	}()

	require.Eventually(t, s.Controls().Predict.Disabled, time.Second, 5*time.Millisecond)

	health := do(h, http.MethodGet, "/healthz", nil, "")
	assert.Contains(t, health.Body.String(), `"predict":true`)

	second := do(h, http.MethodPost, "/predict", predictFormBody(), formType)
	assert.Equal(t, http.StatusConflict, second.Code)
	body := second.Body.String()
	assert.Contains(t, body, generator.MsgBusy)
	// The busy page replaces the form, so its button must stay usable once
	// the first call settles.
	assert.Contains(t, body, `id="predict-btn"`)
	assert.NotRegexp(t, `id="predict-btn"[^>]*disabled`, body)
	assert.Contains(t, body, `form.addEventListener('submit'`)

	close(release)
	wg.Wait()

	assert.Equal(t, http.StatusOK, first.Code)
	assert.False(t, s.Controls().Predict.Disabled())
}

func TestPredictInvalidForm(t *testing.T) {
	called := false
	api := &fakeAPI{
		predict: func(context.Context, fetcher.Features) (*fetcher.PredictResult, error) {
			called = true
			return nil, nil
		},
	}
	_, h := newTestServer(t, api)

	w := do(h, http.MethodPost, "/predict", strings.NewReader("province=Gia+Lai&latitude=abc"), formType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `class="error"`)
	assert.False(t, called)
}

func TestRandom(t *testing.T) {
	_, h := newTestServer(t, &fakeAPI{})

	w := do(h, http.MethodPost, "/predict/random", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="notice" class="info"`)
	assert.Contains(t, body, "Đã tạo dữ liệu kịch bản")
	assert.Regexp(t, `<option value="[^"]+" selected>`, body)
	assert.Regexp(t, `name="Tmax_C" step="0.1" value="[0-9.]+"`, body)
}

type hotspotsResponse struct {
	Layer  *generator.HotspotLayer `json:"layer"`
	Notice generator.Notice        `json:"notice"`
}

func TestHotspots(t *testing.T) {
	t.Run("empty window", func(t *testing.T) {
		api := &fakeAPI{
			hotspots: func(_ context.Context, days int) (*fetcher.HotspotList, error) {
				assert.Equal(t, 3, days)
				return &fetcher.HotspotList{Count: 0, Data: []fetcher.Hotspot{}}, nil
			},
		}
		_, h := newTestServer(t, api)

		w := do(h, http.MethodGet, "/map/hotspots?days=3", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp hotspotsResponse
		decode(t, w, &resp)
		require.NotNil(t, resp.Layer)
		assert.Empty(t, resp.Layer.Markers)
		assert.Equal(t, generator.LevelInfo, resp.Notice.Level)
		assert.Equal(t, "ℹ️ Không có điểm nóng trong 3 ngày qua", resp.Notice.Message)
	})

	t.Run("default days", func(t *testing.T) {
		api := &fakeAPI{
			hotspots: func(_ context.Context, days int) (*fetcher.HotspotList, error) {
				return &fetcher.HotspotList{Count: 1, Data: []fetcher.Hotspot{{Lat: 12.5, Lon: 108.1, Province: "Đắk Lắk"}}}, nil
			},
		}
		_, h := newTestServer(t, api)

		w := do(h, http.MethodGet, "/map/hotspots", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp hotspotsResponse
		decode(t, w, &resp)
		assert.Equal(t, config.DefaultDays, resp.Layer.Days)
		assert.Len(t, resp.Layer.Markers, 1)
		assert.Equal(t, generator.LevelSuccess, resp.Notice.Level)
	})

	t.Run("invalid days", func(t *testing.T) {
		_, h := newTestServer(t, &fakeAPI{})

		for _, q := range []string{"0", "31", "x"} {
			w := do(h, http.MethodGet, "/map/hotspots?days="+q, nil, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		s, h := newTestServer(t, &fakeAPI{})

		w := do(h, http.MethodGet, "/map/hotspots?days=1", nil, "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var resp hotspotsResponse
		decode(t, w, &resp)
		assert.Nil(t, resp.Layer)
		assert.Equal(t, generator.Failure(generator.MsgHotspotsFailed), resp.Notice)
		assert.False(t, s.Controls().RefreshMap.Disabled())
	})
}

func TestMapTab(t *testing.T) {
	api := &fakeAPI{
		hotspots: func(_ context.Context, days int) (*fetcher.HotspotList, error) {
			return &fetcher.HotspotList{Count: 1, Data: []fetcher.Hotspot{{Lat: 12.5, Lon: 108.1, Province: "Đắk Lắk"}}}, nil
		},
	}
	_, h := newTestServer(t, api)

	w := do(h, http.MethodGet, "/?tab=map&days=7", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="7" selected>`)
	assert.Contains(t, w.Body.String(), `"lat":12.5`)
}

func TestPredictHotspot(t *testing.T) {
	var got fetcher.Hotspot
	api := &fakeAPI{
		predictHotspot: func(_ context.Context, h fetcher.Hotspot) (*fetcher.HotspotPrediction, error) {
			got = h
			return &fetcher.HotspotPrediction{
				ClickPrediction: fetcher.ClickPrediction{Province: "Gia Lai", RiskLevel: "Nguy cơ cao", Probability: 0.9, IsFire: true},
				HotspotData:     fetcher.HotspotData{FRP: 5, Brightness: 310, Time: 1200},
			}, nil
		},
	}
	_, h := newTestServer(t, api)

	w := do(h, http.MethodPost, "/map/hotspot", strings.NewReader(`{"lat":13.9,"lon":108.0}`), "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	var popup generator.PopupView
	decode(t, w, &popup)
	assert.Equal(t, generator.PopupHotspot, popup.Kind)
	assert.Equal(t, "90.0%", popup.Percent)
	assert.Equal(t, "12:00", popup.Satellite.Time)

	assert.Equal(t, fetcher.DefaultFRP, got.FRP)
	assert.Equal(t, fetcher.DefaultAcqTime, got.AcqTime)
}

func TestPredictClick(t *testing.T) {
	api := &fakeAPI{
		hotspots: func(context.Context, int) (*fetcher.HotspotList, error) {
			return &fetcher.HotspotList{Count: 1, Data: []fetcher.Hotspot{{Lat: 21.1, Lon: 105.9, Province: "Bắc Ninh"}}}, nil
		},
		predictClick: func(_ context.Context, lat, lon float64) (*fetcher.ClickPrediction, error) {
			return &fetcher.ClickPrediction{Province: "Hà Nội", RiskLevel: "Thấp", Probability: 0.1}, nil
		},
	}
	_, h := newTestServer(t, api)

	require.Equal(t, http.StatusOK, do(h, http.MethodGet, "/map/hotspots?days=1", nil, "").Code)
	w := do(h, http.MethodPost, "/map/click", strings.NewReader(`{"lat":21.03,"lon":105.85}`), "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	var popup generator.PopupView
	decode(t, w, &popup)
	assert.Equal(t, generator.PopupClick, popup.Kind)
	assert.Equal(t, "10.0%", popup.Percent)
	require.NotNil(t, popup.Nearest)
	assert.Equal(t, "Bắc Ninh", popup.Nearest.Province)
}

func TestPredictClickFailures(t *testing.T) {
	_, h := newTestServer(t, &fakeAPI{})

	w := do(h, http.MethodPost, "/map/click", strings.NewReader(`{"lat":21.03,"lon":105.85}`), "application/json")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	var popup generator.PopupView
	decode(t, w, &popup)
	assert.Equal(t, generator.MsgPopupNetwork, popup.Error)

	w = do(h, http.MethodPost, "/map/click", strings.NewReader(`{"lat":21.03}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func sampleStats(context.Context) (*fetcher.Stats, error) {
	return &fetcher.Stats{
		TotalFires: 52,
		Heatmap:    map[string]int{"Đắk Lắk": 30, "Gia Lai": 22},
		Monthly:    map[string]int{"3": 10, "7": 42},
	}, nil
}

func TestAnalytics(t *testing.T) {
	_, h := newTestServer(t, &fakeAPI{stats: sampleStats})

	w := do(h, http.MethodGet, "/analytics", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Analytics generator.AnalyticsView `json:"analytics"`
		Notice    generator.Notice        `json:"notice"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Tháng 7", resp.Analytics.PeakMonth)
	assert.Equal(t, 2, resp.Analytics.ProvinceCount)
	assert.Equal(t, generator.Success(generator.MsgStatsOK), resp.Notice)
}

func TestAnalyticsFailure(t *testing.T) {
	s, h := newTestServer(t, &fakeAPI{})

	w := do(h, http.MethodGet, "/analytics", nil, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), generator.MsgStatsFailed)
	assert.False(t, s.Controls().Analytics.Disabled())

	page := do(h, http.MethodGet, "/?tab=analytics", nil, "")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), generator.MsgStatsFailed)
}

func TestAnalyticsTab(t *testing.T) {
	_, h := newTestServer(t, &fakeAPI{stats: sampleStats})

	w := do(h, http.MethodGet, "/?tab=analytics", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="peak-month">Tháng 7<`)
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestCharts(t *testing.T) {
	_, h := newTestServer(t, &fakeAPI{stats: sampleStats})

	for _, path := range []string{"/analytics/province.svg", "/analytics/monthly.svg"} {
		w := do(h, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"), path)
	}

	empty := &fakeAPI{stats: func(context.Context) (*fetcher.Stats, error) {
		return &fetcher.Stats{Heatmap: map[string]int{}, Monthly: map[string]int{}}, nil
	}}
	_, h = newTestServer(t, empty)
	w := do(h, http.MethodGet, "/analytics/monthly.svg", nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
