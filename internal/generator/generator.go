// Package generator renders the tabbed fire-risk dashboard: the manual
// prediction form, the live hotspot map and the analytics tab.
package generator

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Zachdehooge/fireguard-dashboard/internal/fetcher"
	"github.com/Zachdehooge/fireguard-dashboard/internal/geo"
)

// Dashboard tabs.
const (
	TabPredict   = "predict"
	TabMap       = "map"
	TabAnalytics = "analytics"
)

// DayOptions are the hotspot windows offered by the map tab.
var DayOptions = []int{1, 3, 7, 10}

// FormField is one numeric input of the predict form.
type FormField struct {
	Name  string
	Label string
	Step  string
	Value string
}

// Page is everything the dashboard template needs.
type Page struct {
	ActiveTab string
	// Interactive is false for static exports; forms and map actions
	// then stay hidden.
	Interactive bool

	Province  string
	Provinces []string
	Fields    []FormField

	Result  *ResultView
	History []HistoryRow

	Days  int
	Layer *HotspotLayer
	// LayerLoaded is set by RenderDashboard; the map fetches hotspots on
	// open when it is false.
	LayerLoaded bool

	Analytics *AnalyticsView

	ProvinceChart template.HTML
	MonthlyChart  template.HTML

	Notice *Notice

	LastUpdated string
}

// NewPage returns a page on tab with an empty form.
func NewPage(tab string, provinces []string) *Page {
	p := &Page{
		ActiveTab:   tab,
		Provinces:   provinces,
		Days:        DayOptions[0],
		LastUpdated: time.Now().UTC().Format("Jan 2, 2006 at 15:04:05 UTC"),
	}
	p.Fields = formFields(fetcher.ManualInput{}, false)
	return p
}

// SetForm fills the predict form from in.
func (p *Page) SetForm(in fetcher.ManualInput) {
	p.Province = in.Province
	p.Fields = formFields(in, true)
}

func formFields(in fetcher.ManualInput, filled bool) []FormField {
	fields := []FormField{
		{Name: "latitude", Label: "Vĩ độ", Step: "0.0001"},
		{Name: "longitude", Label: "Kinh độ", Step: "0.0001"},
		{Name: "Tmax_C", Label: "Nhiệt độ tối đa (°C)", Step: "0.1"},
		{Name: "RHmax_pct", Label: "Độ ẩm tối đa (%)", Step: "1"},
		{Name: "Wind_max_kmh", Label: "Gió tối đa (km/h)", Step: "0.1"},
		{Name: "Precip_sum_mm", Label: "Lượng mưa hôm nay (mm)", Step: "0.1"},
		{Name: "Precip_sum_7d", Label: "Lượng mưa 7 ngày (mm)", Step: "0.1"},
		{Name: "Precip_sum_30d", Label: "Lượng mưa 30 ngày (mm)", Step: "0.1"},
		{Name: "Solar_rad_J_m2", Label: "Bức xạ mặt trời (J/m²)", Step: "0.1"},
		{Name: "bright_ti5", Label: "Độ sáng TI5 (K)", Step: "0.1"},
		{Name: "frp", Label: "FRP (MW)", Step: "0.1"},
	}
	if !filled {
		return fields
	}

	values := []float64{
		in.Latitude, in.Longitude, in.TmaxC, in.RHmaxPct, in.WindMaxKmh,
		in.PrecipSumMM, in.PrecipSum7d, in.PrecipSum30d, in.SolarRadJM2,
		in.BrightTI5, in.FRP,
	}
	for i := range fields {
		fields[i].Value = FormatNumber(values[i])
	}
	return fields
}

// SetAnalytics attaches the analytics view and renders its charts. Chart
// failures leave the tab without charts.
func (p *Page) SetAnalytics(v AnalyticsView) error {
	p.Analytics = &v

	province, err := ProvinceChartSVG(v.Provinces)
	if err != nil {
		return err
	}
	monthly, err := MonthlyChartSVG(v.Monthly)
	if err != nil {
		return err
	}
	if province != nil {
		p.ProvinceChart = inlineSVG(province)
	}
	if monthly != nil {
		p.MonthlyChart = inlineSVG(monthly)
	}
	return nil
}

func toJSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// scriptMessages are the notices the page script raises on its own.
var scriptMessages = map[string]string{
	"predictLoading": MsgPredictLoading,
	"mapFailed":      MsgMapFailed,
	"hotspotsFailed": MsgHotspotsFailed,
	"popupNetwork":   MsgPopupNetwork,
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"toJSON": toJSON,
	"mapCenter": func() template.JS {
		return template.JS(fmt.Sprintf("[%g, %g], %d", geo.CenterLat, geo.CenterLon, geo.DefaultZoom))
	},
	"dayOptions": func() []int { return DayOptions },
	"message": func(name string) string {
		return scriptMessages[name]
	},
}).Parse(dashboardHTML))

// RenderDashboard writes the full dashboard page to w.
func RenderDashboard(w io.Writer, page *Page) error {
	page.LayerLoaded = page.Layer != nil
	if page.Layer == nil {
		page.Layer = &HotspotLayer{Days: page.Days, CountLabel: "0", Markers: []Marker{}}
	}
	return dashboardTmpl.Execute(w, page)
}
