package plot

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// barFill is the share of the generation spacing a bar occupies.
const barFill = 0.8

// barSeries draws vertical bars from zero, so bars can share a chart.Chart
// (and its axes) with continuous line series.
type barSeries struct {
	Name    string
	Style   chart.Style
	XValues []float64
	YValues []float64
}

var (
	_ chart.Series         = barSeries{}
	_ chart.ValuesProvider = barSeries{}
)

func (b barSeries) GetName() string           { return b.Name }
func (b barSeries) GetStyle() chart.Style     { return b.Style }
func (b barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (b barSeries) Len() int                  { return len(b.XValues) }

func (b barSeries) GetValues(i int) (x, y float64) { return b.XValues[i], b.YValues[i] }

func (b barSeries) Validate() error {
	if len(b.XValues) == 0 {
		return fmt.Errorf("bar series %q: no values", b.Name)
	}
	if len(b.XValues) != len(b.YValues) {
		return fmt.Errorf("bar series %q: %d x values, %d y values", b.Name, len(b.XValues), len(b.YValues))
	}
	return nil
}

func (b barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := b.Style.InheritFrom(defaults)
	half := int(float64(xrange.Translate(1)-xrange.Translate(0)) * barFill / 2)
	if half < 1 {
		half = 1
	}
	zero := math.Max(yrange.GetMin(), math.Min(0, yrange.GetMax()))
	base := canvasBox.Bottom - yrange.Translate(zero)
	for i, x := range b.XValues {
		v := b.YValues[i]
		if !finite(v) {
			continue
		}
		cx := canvasBox.Left + xrange.Translate(x)
		top := canvasBox.Bottom - yrange.Translate(v)
		box := chart.Box{Left: cx - half, Right: cx + half, Top: top, Bottom: base}
		if top > base {
			box.Top, box.Bottom = base, top
		}
		if box.Top == box.Bottom {
			continue
		}
		chart.Draw.Box(r, box, style)
	}
}
