//go:build !domestic

package pipeline

import "github.com/devmichalek/Autonomous-Vehicles-Simulator/src/plot"

// DefaultLabels is the label set used when neither flags nor config choose one.
// Build with -tags domestic for Polish labels.
const DefaultLabels = plot.LabelsEnglish
