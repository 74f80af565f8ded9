package plot

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// valueBounds returns the min/max over all series, ignoring NaN.
func valueBounds(series ...[]float64) (float64, float64, bool) {
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	for _, ys := range series {
		for _, v := range ys {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}
	return minY, maxY, minY != math.MaxFloat64
}

// niceStep picks a 1/2/2.5/5 x 10^k step that splits span into roughly n intervals.
func niceStep(span float64, n int) float64 {
	if span <= 0 || n < 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n))))
	best := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			best = step
		}
	}
	return best
}

// percentAxis builds a y range anchored at zero (bars grow from it) with nice
// ticks labelled as percentages of a unit fraction.
func percentAxis(minY, maxY float64) (*chart.ContinuousRange, []chart.Tick) {
	lo := math.Min(0, minY)
	hi := math.Max(0, maxY)
	if hi <= lo {
		hi = lo + 1
	}
	step := niceStep(hi-lo, 6)
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	if end <= start {
		end = start + step
	}
	count := int(math.Round((end - start) / step))
	ticks := make([]chart.Tick, 0, count+1)
	for i := 0; i <= count; i++ {
		v := start + float64(i)*step
		ticks = append(ticks, chart.Tick{Value: v, Label: formatPercent(v, step)})
	}
	return &chart.ContinuousRange{Min: start, Max: end}, ticks
}

// formatPercent renders v (a fraction) as a percentage with just enough
// decimals to tell neighbouring ticks apart.
func formatPercent(v, step float64) string {
	pct := v * 100
	if math.Abs(pct) < 1e-9 {
		return "0%"
	}
	switch s := step * 100; {
	case s >= 1:
		return fmt.Sprintf("%.0f%%", pct)
	case s >= 0.1:
		return fmt.Sprintf("%.1f%%", pct)
	default:
		return fmt.Sprintf("%.2f%%", pct)
	}
}

// generationAxis returns the padded x range and integer ticks for n
// generations. go-chart narrows an axis to its outermost ticks, so the range
// edges carry unlabelled ticks to keep the padding (and the outer bars).
func generationAxis(n int) (*chart.ContinuousRange, []chart.Tick) {
	lo, hi := -0.5, float64(n)-0.5
	rng := &chart.ContinuousRange{Min: lo, Max: hi}
	step := int(math.Max(1, math.Round(niceStep(float64(n), 10))))
	ticks := make([]chart.Tick, 0, n/step+3)
	ticks = append(ticks, chart.Tick{Value: lo})
	for g := 0; g < n; g += step {
		ticks = append(ticks, chart.Tick{Value: float64(g), Label: formatScalar(float64(g))})
	}
	ticks = append(ticks, chart.Tick{Value: hi})
	return rng, ticks
}

func formatScalar(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av == math.Trunc(av):
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
