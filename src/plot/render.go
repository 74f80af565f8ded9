// Package plot turns a run's statistics into a single chart: four line series
// and one bar series over the generation index, percentage y axis, scalar x
// axis, and a legend placed in the least crowded corner.
package plot

import (
	"errors"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/stats"
)

var (
	ErrRender = errors.New("render error")
	// ErrNoGenerations is wrapped by ErrRender when a run has no rows.
	ErrNoGenerations = errors.New("no generations to plot")
)

// Default chart dimensions in pixels.
const (
	DefaultWidth  = 1100
	DefaultHeight = 400
)

const lineWidth = 2.0

// ChartSize applies the width/height clamp rules used for charts. A zero
// width picks the default; a zero height keeps the default aspect ratio.
func ChartSize(w, h int) (int, int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if w < 640 {
		w = 640
	}
	if h <= 0 {
		h = w * DefaultHeight / DefaultWidth
	}
	if h < 280 {
		h = 280
	}
	if h > 800 {
		h = 800
	}
	return w, h
}

// Renderer builds charts with a fixed label set and size. It holds no
// per-file state and may be shared between goroutines.
type Renderer struct {
	Labels LabelSet
	Width  int
	Height int

	// onLegend, when set, receives the corner the legend was placed in.
	onLegend func(Corner)
}

// NewRenderer returns a Renderer with clamped dimensions.
func NewRenderer(labels LabelSet, width, height int) *Renderer {
	w, h := ChartSize(width, height)
	return &Renderer{Labels: labels, Width: w, Height: h}
}

// Render composes the chart for run. The run must hold at least one
// generation and its series must be of equal length.
func (rd *Renderer) Render(run *stats.Run) (*chart.Chart, error) {
	n, err := run.Generations()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, run.Name, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, run.Name, ErrNoGenerations)
	}

	xs := stats.Index(n)
	series := make([]chart.Series, 0, len(Schema))
	entries := make([]legendEntry, 0, len(Schema))
	all := make([][]float64, 0, len(Schema))
	for _, sd := range Schema {
		ys := run.Column(sd.Column)
		name := rd.Labels.Label(sd.Column)
		all = append(all, ys)
		entries = append(entries, legendEntry{name: name, color: sd.Color, kind: sd.Kind})
		switch sd.Kind {
		case KindBar:
			series = append(series, barSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{FillColor: sd.Color, StrokeColor: sd.Color, StrokeWidth: 1},
			})
		default:
			series = append(series, lineSegments(name, chart.Style{StrokeColor: sd.Color, StrokeWidth: lineWidth}, xs, ys)...)
		}
	}

	minY, maxY, ok := valueBounds(all...)
	if !ok {
		minY, maxY = 0, 1
	}
	xRange, xTicks := generationAxis(n)
	yRange, yTicks := percentAxis(minY, maxY)

	ch := &chart.Chart{
		Width:      rd.Width,
		Height:     rd.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 12}},
		XAxis: chart.XAxis{
			Name:  rd.Labels.XAxis,
			Range: xRange,
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Range:          yRange,
			Ticks:          yTicks,
			ValueFormatter: chart.PercentValueFormatter,
		},
		Series: series,
	}
	attachLegend(ch, entries, xRange, yRange, rd.onLegend)
	return ch, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// lineSegments splits a line at NaN and infinite values; the gap is left
// undrawn and the finite stretches on either side become separate series.
func lineSegments(name string, style chart.Style, xs, ys []float64) []chart.Series {
	var out []chart.Series
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		out = append(out, chart.ContinuousSeries{
			Name:    name,
			XValues: xs[start:end],
			YValues: ys[start:end],
			Style:   style,
		})
		start = -1
	}
	for i, y := range ys {
		if !finite(y) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(ys))
	return out
}
