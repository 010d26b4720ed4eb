package generator

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/geo"
	"github.com/Zachdehooge/fireguard-dashboard/internal/history"
	"github.com/Zachdehooge/fireguard-dashboard/internal/risk"
)

// ResultView is the result card of a manual prediction.
type ResultView struct {
	State          string `json:"state"`
	RiskLevel      string `json:"risk_level"`
	Tier           string `json:"tier"`
	Percent        string `json:"percent"`
	BarWidth       string `json:"bar_width"`
	Color          string `json:"color"`
	Recommendation string `json:"recommendation"`
	Message        string `json:"message,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// NewResultView builds the result card for res, received at t.
func NewResultView(res *fetcher.PredictResult, t time.Time) ResultView {
	percent := risk.Percent(res.Probability)
	tier := res.Tier()
	return ResultView{
		State:          risk.VisualState(res.IsFire),
		RiskLevel:      res.RiskLevel,
		Tier:           string(tier),
		Percent:        percent,
		BarWidth:       percent,
		Color:          risk.StateColor(res.IsFire),
		Recommendation: tier.Recommendation(),
		Message:        res.Message,
		Timestamp:      FormatTimestamp(t),
	}
}

// Marker is one hotspot on the map layer.
type Marker struct {
	Lat     float64         `json:"lat"`
	Lon     float64         `json:"lon"`
	Tooltip string          `json:"tooltip"`
	Hotspot fetcher.Hotspot `json:"hotspot"`
}

// HotspotLayer is the marker layer of the map tab.
type HotspotLayer struct {
	Days       int      `json:"days"`
	Count      int      `json:"count"`
	CountLabel string   `json:"count_label"`
	Markers    []Marker `json:"markers"`
}

// NewHotspotLayer builds the marker layer for a hotspot response along with
// the notice to show.
func NewHotspotLayer(list *fetcher.HotspotList, days int) (HotspotLayer, Notice) {
	layer := HotspotLayer{
		Days:       days,
		Count:      list.Count,
		CountLabel: FormatCount(list.Count),
		Markers:    make([]Marker, 0, len(list.Data)),
	}
	for _, h := range list.Data {
		layer.Markers = append(layer.Markers, Marker{
			Lat:     h.Lat,
			Lon:     h.Lon,
			Tooltip: hotspotTooltip(h),
			Hotspot: h,
		})
	}

	if len(layer.Markers) == 0 {
		return layer, HotspotsLoaded(0, days)
	}
	return layer, HotspotsLoaded(list.Count, days)
}

func hotspotTooltip(h fetcher.Hotspot) string {
	return fmt.Sprintf("<strong>%s</strong><br>Độ sáng: %sK<br>FRP: %s",
		html.EscapeString(h.Province), FormatNumber(h.Bright), FormatFixed(h.FRP, 2))
}

// SatelliteView is the satellite block of a hotspot popup.
type SatelliteView struct {
	FRP        string `json:"frp"`
	Brightness string `json:"brightness"`
	Time       string `json:"time"`
}

// WeatherView is the weather block of a popup.
type WeatherView struct {
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	RainToday   string `json:"rain_today"`
	Rain7d      string `json:"rain_7d"`
	Solar       string `json:"solar"`
}

// NearestView describes the closest known hotspot to a clicked point.
type NearestView struct {
	Province string `json:"province"`
	Distance string `json:"distance"`
}

// Popup kinds.
const (
	PopupHotspot = "hotspot"
	PopupClick   = "click"
)

// PopupView is the content of a map popup.
type PopupView struct {
	Kind      string         `json:"kind"`
	Icon      string         `json:"icon"`
	Title     string         `json:"title"`
	Error     string         `json:"error,omitempty"`
	Color     string         `json:"color,omitempty"`
	RiskLevel string         `json:"risk_level,omitempty"`
	Percent   string         `json:"percent,omitempty"`
	Province  string         `json:"province,omitempty"`
	Date      string         `json:"date,omitempty"`
	Satellite *SatelliteView `json:"satellite,omitempty"`
	Weather   *WeatherView   `json:"weather,omitempty"`
	Nearest   *NearestView   `json:"nearest,omitempty"`
	Outside   bool           `json:"outside,omitempty"`
	Footer    string         `json:"footer,omitempty"`
}

func newWeatherView(w fetcher.Weather, withWindAndSolar bool) *WeatherView {
	v := &WeatherView{
		Temperature: FormatNumber(w.TmaxC) + "°C",
		Humidity:    FormatNumber(w.RHmaxPct) + "%",
		RainToday:   FormatNumber(w.PrecipSumMM) + "mm",
		Rain7d:      FormatFixed(w.PrecipSum7d, 1) + "mm",
	}
	if withWindAndSolar {
		v.Wind = FormatNumber(w.WindMaxKmh) + " km/h"
		v.Solar = FormatFixed(w.SolarRadJM2, 1) + " J/m²"
	}
	return v
}

// NewHotspotPopup builds the popup of a hotspot prediction.
func NewHotspotPopup(h fetcher.Hotspot, res *fetcher.HotspotPrediction) PopupView {
	return PopupView{
		Kind:      PopupHotspot,
		Icon:      "🔥",
		Title:     "ĐIỂM NÓNG THỰC TẾ",
		Color:     risk.StateColor(res.IsFire),
		RiskLevel: res.RiskLevel,
		Percent:   risk.Percent(res.Probability),
		Province:  res.Province,
		Date:      acqDateLabel(h.AcqDate),
		Satellite: &SatelliteView{
			FRP:        FormatFixed(res.HotspotData.FRP, 2) + " MW",
			Brightness: FormatFixed(res.HotspotData.Brightness, 1) + "K",
			Time:       FormatAcqTime(res.HotspotData.Time),
		},
		Weather: newWeatherView(res.Weather, false),
		Footer:  "✓ Dự báo dựa trên dữ liệu thực tế từ vệ tinh FIRMS",
	}
}

// NewClickPopup builds the popup of a prediction for an arbitrary point.
// known is the current hotspot layer, used to name the nearest hotspot.
func NewClickPopup(lat, lon float64, res *fetcher.ClickPrediction, known []fetcher.Hotspot) PopupView {
	p := PopupView{
		Kind:      PopupClick,
		Icon:      "🌍",
		Title:     "MÔI TRƯỜNG HIỆN TẠI",
		Color:     risk.StateColor(res.IsFire),
		RiskLevel: res.RiskLevel,
		Percent:   risk.Percent(res.Probability),
		Province:  res.Province,
		Weather:   newWeatherView(res.Weather, true),
		Outside:   !geo.Contains(lat, lon),
		Footer:    "ℹ️ Dự báo dựa trên điều kiện môi trường (không có điểm nóng)",
	}
	if h, km, ok := geo.Nearest(lat, lon, known); ok {
		p.Nearest = &NearestView{Province: h.Province, Distance: FormatFixed(km, 1) + " km"}
	}
	return p
}

// NewFailedPopup builds the popup shown when a realtime prediction fails.
func NewFailedPopup(kind string, err error) PopupView {
	return PopupView{Kind: kind, Error: PopupFailure(err)}
}

// Bar is one province bar of the analytics chart.
type Bar struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthPoint is one point of the monthly series.
type MonthPoint struct {
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AnalyticsView is the analytics tab.
type AnalyticsView struct {
	TotalFires    string       `json:"total_fires"`
	ProvinceCount int          `json:"province_count"`
	PeakMonth     string       `json:"peak_month"`
	Provinces     []Bar        `json:"provinces"`
	Monthly       []MonthPoint `json:"monthly"`
}

// NewAnalyticsView builds the analytics tab from a stats response.
func NewAnalyticsView(s *fetcher.Stats) AnalyticsView {
	v := AnalyticsView{
		TotalFires:    FormatCount(s.TotalFires),
		ProvinceCount: len(s.Heatmap),
		Provinces:     provinceBars(s.Heatmap),
		Monthly:       monthlySeries(s.Monthly),
	}
	if label, ok := PeakMonth(s.Monthly); ok {
		v.PeakMonth = label
	}
	return v
}

// provinceBars sorts provinces by count, largest first, then by name.
func provinceBars(heatmap map[string]int) []Bar {
	bars := make([]Bar, 0, len(heatmap))
	for name, count := range heatmap {
		bars = append(bars, Bar{Label: name, Count: count})
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Count != bars[j].Count {
			return bars[i].Count > bars[j].Count
		}
		return bars[i].Label < bars[j].Label
	})
	return bars
}

// monthlySeries orders months numerically. Keys that are not months 1-12
// are dropped.
func monthlySeries(monthly map[string]int) []MonthPoint {
	points := make([]MonthPoint, 0, len(monthly))
	for key, count := range monthly {
		m, err := strconv.Atoi(key)
		if err != nil || m < 1 || m > 12 {
			continue
		}
		points = append(points, MonthPoint{Month: m, Label: MonthLabel(m), Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}

// PeakMonth returns the label of the busiest month. Ties go to the later
// month. ok is false when no valid month is present.
func PeakMonth(monthly map[string]int) (label string, ok bool) {
	points := monthlySeries(monthly)
	if len(points) == 0 {
		return "", false
	}
	peak := points[0]
	for _, p := range points[1:] {
		if !(peak.Count > p.Count) {
			peak = p
		}
	}
	return peak.Label, true
}

// HistoryRow is one recent prediction in the predict tab.
type HistoryRow struct {
	Province string
	Percent  string
	Tier     string
	State    string
	When     string
}

// relTimeVI are the Vietnamese magnitudes of humanize's relative times.
var relTimeVI = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "vừa xong", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 giây %s", DivBy: 1},
	{D: time.Minute, Format: "%d giây %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 phút %s", DivBy: 1},
	{D: time.Hour, Format: "%d phút %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 giờ %s", DivBy: 1},
	{D: humanize.Day, Format: "%d giờ %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 ngày %s", DivBy: 1},
	{D: humanize.Week, Format: "%d ngày %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 tuần %s", DivBy: 1},
	{D: humanize.Month, Format: "%d tuần %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 tháng %s", DivBy: 1},
	{D: humanize.Year, Format: "%d tháng %s", DivBy: humanize.Month},
	{D: math.MaxInt64, Format: "hơn một năm %s", DivBy: 1},
}

// RelTime formats t relative to now in Vietnamese, e.g. "3 phút trước".
func RelTime(t, now time.Time) string {
	return humanize.CustomRelTime(t, now, "trước", "sau", relTimeVI)
}

// NewHistoryRows formats history entries relative to now.
func NewHistoryRows(entries []history.Entry, now time.Time) []HistoryRow {
	rows := make([]HistoryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, HistoryRow{
			Province: e.Province,
			Percent:  risk.Percent(e.Probability),
			Tier:     e.Tier.Label(),
			State:    risk.VisualState(e.IsFire),
			When:     RelTime(e.CreatedAt, now),
		})
	}
	return rows
}
