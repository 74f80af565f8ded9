package plot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/stats"
)

// Kind selects how a series is drawn.
type Kind int

const (
	KindLine Kind = iota
	KindBar
)

func (k Kind) String() string {
	if k == KindBar {
		return "bar"
	}
	return "line"
}

// SeriesSpec describes how one column of a run is plotted.
type SeriesSpec struct {
	Column stats.Column
	Color  drawing.Color
	Kind   Kind
}

// Palette colors, assigned to the schema by position.
var (
	ColorCornflowerBlue = drawing.Color{R: 100, G: 149, B: 237, A: 255}
	ColorLightSteelBlue = drawing.Color{R: 176, G: 196, B: 222, A: 255}
	ColorLightCoral     = drawing.Color{R: 240, G: 128, B: 128, A: 255}
	ColorDarkOliveGreen = drawing.Color{R: 85, G: 107, B: 47, A: 255}
	ColorYellowGreen    = drawing.Color{R: 154, G: 205, B: 50, A: 255}
)

// Schema is the fixed, ordered list of plotted series. Draw order and
// legend order follow it.
var Schema = []SeriesSpec{
	{Column: stats.BestFitness, Color: ColorCornflowerBlue, Kind: KindLine},
	{Column: stats.MeanFitness, Color: ColorLightSteelBlue, Kind: KindLine},
	{Column: stats.Winners, Color: ColorLightCoral, Kind: KindBar},
	{Column: stats.BestTime, Color: ColorDarkOliveGreen, Kind: KindLine},
	{Column: stats.MeanTime, Color: ColorYellowGreen, Kind: KindLine},
}

// LabelSet holds the human-readable text baked into a chart.
type LabelSet struct {
	Name   string
	XAxis  string
	Series [stats.Columns]string // indexed by stats.Column
}

// Label returns the legend text for c.
func (l LabelSet) Label(c stats.Column) string { return l.Series[c] }

// Recognised label set names.
const (
	LabelsDomestic = "domestic"
	LabelsEnglish  = "english"
)

var ErrUnknownLabelSet = errors.New("unknown label set")

var labelSets = map[string]LabelSet{
	LabelsEnglish: {
		Name:  LabelsEnglish,
		XAxis: "Generation",
		Series: [stats.Columns]string{
			stats.BestFitness: "Highest fitness",
			stats.MeanFitness: "Mean fitness",
			stats.Winners:     "Number of winners",
			stats.BestTime:    "Best time overall",
			stats.MeanTime:    "Mean time overall",
		},
	},
	LabelsDomestic: {
		Name:  LabelsDomestic,
		XAxis: "Pokolenie",
		Series: [stats.Columns]string{
			stats.BestFitness: "Najwyższe przystosowanie",
			stats.MeanFitness: "Średnie przystosowanie",
			stats.Winners:     "Liczba zwycięzców",
			stats.BestTime:    "Najlepszy czas ogółem",
			stats.MeanTime:    "Średni czas ogółem",
		},
	},
}

// LabelSetByName looks up a label set; matching is case-insensitive.
func LabelSetByName(name string) (LabelSet, error) {
	ls, ok := labelSets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LabelSet{}, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownLabelSet, name, LabelsDomestic, LabelsEnglish)
	}
	return ls, nil
}
