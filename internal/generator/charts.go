package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	provinceFill   = color.RGBA{R: 220, G: 38, B: 38, A: 204}
	provinceStroke = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	monthStroke    = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	monthFill      = color.RGBA{R: 37, G: 99, B: 235, A: 26}
)

// Chart sizes.
const (
	chartWidth       = 7 * vg.Inch
	chartHeight      = 4 * vg.Inch
	provinceRowWidth = 14
)

// ProvinceChartSVG renders a horizontal bar chart of hotspots per province.
// It returns nil when there is nothing to draw.
func ProvinceChartSVG(bars []Bar) ([]byte, error) {
	if len(bars) == 0 {
		return nil, nil
	}

	// Bars are drawn bottom-up; reverse so the largest province is on top.
	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		j := len(bars) - 1 - i
		values[j] = float64(b.Count)
		labels[j] = b.Label
	}

	p := plot.New()
	p.Title.Text = "Số điểm nóng theo tỉnh"

	chart, err := plotter.NewBarChart(values, vg.Points(provinceRowWidth))
	if err != nil {
		return nil, fmt.Errorf("province chart: %w", err)
	}
	chart.Horizontal = true
	chart.Color = provinceFill
	chart.LineStyle.Color = provinceStroke
	chart.LineStyle.Width = vg.Points(1)

	p.Add(chart)
	p.NominalY(labels...)
	p.X.Min = 0

	height := chartHeight
	if h := vg.Points(float64(len(bars)) * (provinceRowWidth + 8)); h > height {
		height = h
	}
	return renderSVG(p, chartWidth, height)
}

// MonthlyChartSVG renders the monthly fire frequency as a filled line.
// It returns nil when there is nothing to draw.
func MonthlyChartSVG(points []MonthPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, nil
	}

	xys := make(plotter.XYs, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		xys[i].X = float64(i)
		xys[i].Y = float64(pt.Count)
		labels[i] = pt.Label
	}

	p := plot.New()
	p.Title.Text = "Tần suất cháy theo tháng"

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("monthly chart: %w", err)
	}
	line.LineStyle.Width = vg.Points(3)
	line.LineStyle.Color = monthStroke
	line.FillColor = monthFill

	dots, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("monthly chart: %w", err)
	}
	dots.GlyphStyle.Radius = vg.Points(5)
	dots.GlyphStyle.Color = monthStroke

	p.Add(line, dots)
	p.NominalX(labels...)
	p.Y.Min = 0

	return renderSVG(p, chartWidth, chartHeight)
}

func renderSVG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "svg")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// inlineSVG strips the XML prolog so the chart can be embedded in HTML.
func inlineSVG(svg []byte) template.HTML {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		svg = svg[i:]
	}
	return template.HTML(svg) //nolint:gosec // SVG markup produced by gonum/plot
}
