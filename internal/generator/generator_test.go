package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "09:30", FormatAcqTime(930))
	assert.Equal(t, "00:05", FormatAcqTime(5))
	assert.Equal(t, "23:59", FormatAcqTime(2359))
	assert.Equal(t, "1.234", FormatCount(1234))
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "36.5", FormatNumber(36.5))
	assert.Equal(t, "40", FormatNumber(40))
	assert.Equal(t, "5.00", FormatFixed(5, 2))
	assert.Equal(t, "Tháng 3", MonthLabel(3))
	assert.Equal(t, "2024-03-01", acqDateLabel("2024-03-01"))
	assert.Equal(t, "Hôm nay", acqDateLabel(" "))
}

func TestCharts(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		svg, err := ProvinceChartSVG(nil)
		require.NoError(t, err)
		assert.Nil(t, svg)

		svg, err = MonthlyChartSVG(nil)
		require.NoError(t, err)
		assert.Nil(t, svg)
	})

	t.Run("province", func(t *testing.T) {
		svg, err := ProvinceChartSVG([]Bar{{"Đắk Lắk", 9}, {"Gia Lai", 5}})
		require.NoError(t, err)
		assert.Contains(t, string(svg), "<svg")

		inline := string(inlineSVG(svg))
		assert.True(t, strings.HasPrefix(inline, "<svg"))
	})

	t.Run("monthly", func(t *testing.T) {
		svg, err := MonthlyChartSVG([]MonthPoint{{3, "Tháng 3", 10}, {7, "Tháng 7", 42}})
		require.NoError(t, err)
		assert.Contains(t, string(svg), "<svg")
	})
}

func testPage(t *testing.T) *Page {
	t.Helper()

	page := NewPage(TabAnalytics, []string{"Lâm Đồng", "Đắk Lắk"})
	page.Interactive = true
	page.SetForm(fetcher.ManualInput{Province: "Đắk Lắk", Latitude: 12.71, TmaxC: 36.5})

	rv := NewResultView(&fetcher.PredictResult{IsFire: true, Probability: 0.82, RiskLevel: "Nguy cơ cao"}, time.Now())
	page.Result = &rv

	require.NoError(t, page.SetAnalytics(NewAnalyticsView(&fetcher.Stats{
		TotalFires: 52,
		Heatmap:    map[string]int{"Đắk Lắk": 30, "Gia Lai": 22},
		Monthly:    map[string]int{"3": 10, "7": 42},
	})))

	n := Success(MsgPredictOK)
	page.Notice = &n
	return page
}

func TestRenderDashboard(t *testing.T) {
	page := testPage(t)

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, page))
	out := buf.String()

	assert.Contains(t, out, `class="card result danger"`)
	assert.Contains(t, out, "width: 82.0%")
	assert.Contains(t, out, "Tháng 7")
	assert.Contains(t, out, `id="total-fires">52<`)
	assert.Contains(t, out, `<option value="Đắk Lắk" selected>`)
	assert.Contains(t, out, `value="36.5"`)
	assert.Contains(t, out, `id="predict-form"`)
	assert.Contains(t, out, `class="success"`)
	assert.Contains(t, out, MsgPredictOK)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `"markers":[]`)
	assert.NotRegexp(t, `id="predict-btn"[^>]*disabled`, out)
}

func TestRenderDashboardControls(t *testing.T) {
	page := NewPage(TabPredict, []string{"Lâm Đồng"})
	page.Interactive = true

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, page))
	out := buf.String()

	assert.NotRegexp(t, `id="predict-btn"[^>]*disabled`, out)
	assert.NotRegexp(t, `id="refresh-btn"[^>]*disabled`, out)
	assert.Contains(t, out, `data-loading="`+MsgPredictLoading+`"`)
	assert.Contains(t, out, `data-failed="`+MsgMapFailed+`"`)
	assert.Contains(t, out, `form.addEventListener('submit'`)
	assert.Contains(t, out, "btn.disabled = true;")
}

func TestRenderDashboardStatic(t *testing.T) {
	page := NewPage(TabMap, nil)
	layer, _ := NewHotspotLayer(&fetcher.HotspotList{
		Count: 1,
		Data:  []fetcher.Hotspot{{Lat: 12.5, Lon: 108.1, Province: "Đắk Lắk", FRP: 7}},
	}, 1)
	page.Layer = &layer

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, page))
	out := buf.String()

	assert.NotContains(t, out, `id="predict-form"`)
	assert.NotContains(t, out, `id="refresh-btn"`)
	assert.Contains(t, out, `"lat":12.5`)
	assert.Regexp(t, `const interactive =\s*false\s*;`, out)
	assert.Contains(t, out, "Chưa có dữ liệu thống kê.")
}

func TestGenerateDashboardHTML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	out := filepath.Join(dir, "index.html")

	require.NoError(t, GenerateDashboardHTML(testPage(t), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerateDashboardHTMLConcurrent(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "dashboard.html")

	pages := make([]*Page, 8)
	for i := range pages {
		pages[i] = testPage(t)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(pages))
	for _, page := range pages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- GenerateDashboardHTML(page, out)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "</html>"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRenderDashboardEscapesPopups(t *testing.T) {
	page := NewPage(TabMap, nil)
	page.Interactive = true

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, page))
	out := buf.String()

	for _, field := range []string{"p.province", "p.risk_level", "p.nearest.province", "p.error"} {
		assert.Contains(t, out, "esc("+field+")")
	}
	assert.NotContains(t, out, "' + p.province")
}

func TestWriteReport(t *testing.T) {
	layer, _ := NewHotspotLayer(&fetcher.HotspotList{
		Count: 1,
		Data:  []fetcher.Hotspot{{Lat: 12.5, Lon: 108.1, Province: "Đắk Lắk", FRP: 7, AcqTime: 930, AcqDate: "2025-03-01"}},
	}, 3)

	data := ReportData{
		Analytics: NewAnalyticsView(&fetcher.Stats{
			TotalFires: 52,
			Heatmap:    map[string]int{"Đắk Lắk": 30, "Gia Lai": 22},
			Monthly:    map[string]int{"3": 10, "7": 42},
		}),
		Layer:       &layer,
		APIBaseURL:  "http://localhost:8000",
		GeneratedAt: time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, data))
	out := buf.String()

	assert.Contains(t, out, "# FireGuard")
	assert.Contains(t, out, "Tháng 7")
	assert.Contains(t, out, "```mermaid")
	assert.Contains(t, out, "Đắk Lắk")
	assert.Contains(t, out, "09:30")
	assert.Contains(t, out, "2025-03-01")
}

func TestWriteReportEmpty(t *testing.T) {
	empty := &HotspotLayer{Days: 1, Markers: []Marker{}}
	data := ReportData{
		Analytics: NewAnalyticsView(&fetcher.Stats{Heatmap: map[string]int{}, Monthly: map[string]int{}}),
		Layer:     empty,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, data))

	assert.Contains(t, buf.String(), "Chưa có dữ liệu thống kê.")
	assert.Contains(t, buf.String(), "Không có điểm nóng trong 1 ngày qua")
	assert.NotContains(t, buf.String(), "```mermaid")
}
