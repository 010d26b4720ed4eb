package generator

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// reportTopProvinces bounds the province table and pie chart.
const reportTopProvinces = 10

// ReportData is everything the Markdown analytics report needs.
type ReportData struct {
	Analytics   AnalyticsView
	Layer       *HotspotLayer
	APIBaseURL  string
	GeneratedAt time.Time
}

// WriteReport writes the analytics report as GitHub flavoured Markdown.
func WriteReport(w io.Writer, data ReportData) error {
	md := markdown.NewMarkdown(w)

	md.H1("FireGuard: Báo cáo nguy cơ cháy rừng")
	md.PlainText("")

	a := data.Analytics
	peak := a.PeakMonth
	if peak == "" {
		peak = "-"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Chỉ số", "Giá trị"},
		Rows: [][]string{
			{"Tổng số điểm cháy", a.TotalFires},
			{"Số tỉnh có điểm nóng", strconv.Itoa(a.ProvinceCount)},
			{"Tháng cao điểm", peak},
			{"Nguồn dữ liệu", "`" + data.APIBaseURL + "`"},
			{"Thời điểm tạo", data.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	writeAlert(md, a)
	writeProvinces(md, a.Provinces)
	writeMonthly(md, a.Monthly)
	writeHotspots(md, data.Layer)

	return md.Build()
}

func writeAlert(md *markdown.Markdown, a AnalyticsView) {
	switch {
	case len(a.Provinces) == 0 && len(a.Monthly) == 0:
		md.Note("Chưa có dữ liệu thống kê.")
	case a.PeakMonth != "":
		md.Warningf("%s là tháng cao điểm. Tăng cường tuần tra tại %s.", a.PeakMonth, topProvince(a.Provinces))
	default:
		md.Importantf("Đã ghi nhận điểm nóng tại %d tỉnh.", a.ProvinceCount)
	}
	md.PlainText("")
}

func topProvince(bars []Bar) string {
	if len(bars) == 0 {
		return "các tỉnh trọng điểm"
	}
	return bars[0].Label
}

func writeProvinces(md *markdown.Markdown, bars []Bar) {
	md.H2("Điểm nóng theo tỉnh")
	md.PlainText("")

	if len(bars) == 0 {
		md.PlainText("Không có dữ liệu.")
		md.PlainText("")
		return
	}

	top := bars
	if len(top) > reportTopProvinces {
		top = top[:reportTopProvinces]
	}

	rows := make([][]string, 0, len(top))
	for i, b := range top {
		rows = append(rows, []string{strconv.Itoa(i + 1), b.Label, FormatCount(b.Count)})
	}
	md.Table(markdown.TableSet{Header: []string{"#", "Tỉnh", "Số điểm nóng"}, Rows: rows})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Phân bố điểm nóng"),
		piechart.WithShowData(true),
	)
	for _, b := range top {
		if b.Count > 0 {
			chart.LabelAndIntValue(b.Label, uint64(b.Count))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeMonthly(md *markdown.Markdown, points []MonthPoint) {
	md.H2("Tần suất cháy theo tháng")
	md.PlainText("")

	if len(points) == 0 {
		md.PlainText("Không có dữ liệu.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Label, FormatCount(p.Count)})
	}
	md.Table(markdown.TableSet{Header: []string{"Tháng", "Số điểm nóng"}, Rows: rows})
	md.PlainText("")
}

func writeHotspots(md *markdown.Markdown, layer *HotspotLayer) {
	if layer == nil {
		return
	}

	md.H2("Điểm nóng " + strconv.Itoa(layer.Days) + " ngày qua")
	md.PlainText("")

	if len(layer.Markers) == 0 {
		md.PlainText(HotspotsLoaded(0, layer.Days).Message)
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(layer.Markers))
	for _, m := range layer.Markers {
		h := m.Hotspot
		rows = append(rows, []string{
			h.Province,
			acqDateLabel(h.AcqDate),
			FormatAcqTime(h.AcqTime),
			FormatFixed(h.Lat, 4) + ", " + FormatFixed(h.Lon, 4),
			FormatFixed(h.FRP, 2),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Tỉnh", "Ngày", "Giờ", "Tọa độ", "FRP (MW)"},
		Rows:   rows,
	})
	md.PlainText("")
}
