package plot

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Corner is a legend anchor inside the plot area.
type Corner int

// Candidate order doubles as the tie-break order.
const (
	UpperRight Corner = iota
	UpperLeft
	LowerLeft
	LowerRight
)

func (c Corner) String() string {
	switch c {
	case UpperLeft:
		return "upper left"
	case LowerLeft:
		return "lower left"
	case LowerRight:
		return "lower right"
	}
	return "upper right"
}

const (
	legendPad     = 6
	legendMargin  = 8
	legendRowGap  = 4
	legendTextGap = 6
	legendSwatch  = 24
)

var legendDefaults = chart.Style{
	FillColor:   drawing.Color{R: 255, G: 255, B: 255, A: 220},
	FontColor:   drawing.Color{R: 51, G: 51, B: 51, A: 255},
	FontSize:    9,
	StrokeColor: drawing.Color{R: 180, G: 180, B: 180, A: 255},
	StrokeWidth: 1,
}

type legendEntry struct {
	name  string
	color drawing.Color
	kind  Kind
}

// plotPoint is a data point in canvas pixels. Bars also cover the span down to their base.
type plotPoint struct {
	x, y, base int
	bar        bool
}

// cornerBox places a w×h legend at corner c of the canvas.
func cornerBox(c Corner, cb chart.Box, w, h int) chart.Box {
	b := chart.Box{Top: cb.Top + legendMargin, Left: cb.Left + legendMargin}
	switch c {
	case UpperRight, LowerRight:
		b.Left = cb.Right - legendMargin - w
	}
	switch c {
	case LowerLeft, LowerRight:
		b.Top = cb.Bottom - legendMargin - h
	}
	b.Right = b.Left + w
	b.Bottom = b.Top + h
	return b
}

// overlap counts the points a legend box would hide.
func overlap(b chart.Box, pts []plotPoint) int {
	n := 0
	for _, p := range pts {
		if p.x < b.Left || p.x > b.Right {
			continue
		}
		if p.bar {
			top, bottom := p.y, p.base
			if top > bottom {
				top, bottom = bottom, top
			}
			if top <= b.Bottom && bottom >= b.Top {
				n++
			}
			continue
		}
		if p.y >= b.Top && p.y <= b.Bottom {
			n++
		}
	}
	return n
}

// bestCorner returns the corner whose legend box hides the fewest points.
func bestCorner(cb chart.Box, w, h int, pts []plotPoint) Corner {
	best, bestN := UpperRight, -1
	for _, c := range []Corner{UpperRight, UpperLeft, LowerLeft, LowerRight} {
		n := overlap(cornerBox(c, cb, w, h), pts)
		if bestN < 0 || n < bestN {
			best, bestN = c, n
		}
	}
	return best
}

// canvasPoints projects every series value into pixels using the axis ranges
// the chart was built with.
func canvasPoints(series []chart.Series, cb chart.Box, xr, yr *chart.ContinuousRange) []plotPoint {
	xd, yd := xr.Max-xr.Min, yr.Max-yr.Min
	if xd <= 0 || yd <= 0 {
		return nil
	}
	px := func(x float64) int { return cb.Left + int((x-xr.Min)/xd*float64(cb.Width())) }
	py := func(y float64) int { return cb.Bottom - int((y-yr.Min)/yd*float64(cb.Height())) }
	base := py(0)
	var pts []plotPoint
	for _, s := range series {
		vp, ok := s.(chart.ValuesProvider)
		if !ok {
			continue
		}
		_, isBar := s.(barSeries)
		for i := 0; i < vp.Len(); i++ {
			x, y := vp.GetValues(i)
			if !finite(y) {
				continue
			}
			pts = append(pts, plotPoint{x: px(x), y: py(y), base: base, bar: isBar})
		}
	}
	return pts
}

// attachLegend appends a legend element that picks the least crowded corner at render time.
func attachLegend(c *chart.Chart, entries []legendEntry, xr, yr *chart.ContinuousRange, placed func(Corner)) {
	c.Elements = append(c.Elements, func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		style := legendDefaults.InheritFrom(defaults)
		style.GetTextOptions().WriteToRenderer(r)

		contentW, contentH := 0, 0
		for i, e := range entries {
			tb := r.MeasureText(e.name)
			if i > 0 {
				contentH += legendRowGap
			}
			contentH += tb.Height()
			if w := tb.Width() + legendTextGap + legendSwatch; w > contentW {
				contentW = w
			}
		}
		w, h := contentW+2*legendPad, contentH+2*legendPad

		corner := bestCorner(cb, w, h, canvasPoints(c.Series, cb, xr, yr))
		if placed != nil {
			placed(corner)
		}
		box := cornerBox(corner, cb, w, h)
		chart.Draw.Box(r, box, style)

		style.GetTextOptions().WriteToRenderer(r)
		y := box.Top + legendPad
		for i, e := range entries {
			if i > 0 {
				y += legendRowGap
			}
			tb := r.MeasureText(e.name)
			ty := y + tb.Height()
			r.Text(e.name, box.Left+legendPad, ty)

			sx0 := box.Right - legendPad - legendSwatch
			sx1 := box.Right - legendPad
			mid := ty - tb.Height()/2
			if e.kind == KindBar {
				chart.Draw.Box(r, chart.Box{Top: mid - 4, Bottom: mid + 4, Left: sx0, Right: sx1},
					chart.Style{FillColor: e.color, StrokeColor: e.color, StrokeWidth: 1})
			} else {
				r.SetStrokeColor(e.color)
				r.SetStrokeWidth(lineWidth)
				r.MoveTo(sx0, mid)
				r.LineTo(sx1, mid)
				r.Stroke()
			}
			y += tb.Height()
			style.GetTextOptions().WriteToRenderer(r)
		}
	})
}
