package plot

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/stats"
)

// ErrIO marks failures to write a chart. It is the loader's I/O kind, so
// callers test a single sentinel for both directions.
var ErrIO = stats.ErrIO

// ImageExt is the extension of written charts.
const ImageExt = ".png"

// OutputPath derives the chart path from an input path by replacing its last
// four characters (".csv") with ImageExt.
func OutputPath(input string) string {
	if len(input) < 4 {
		return input + ImageExt
	}
	return input[:len(input)-4] + ImageExt
}

// Encode renders ch as PNG into w. A non-empty caption is stamped onto the image.
func Encode(ch *chart.Chart, w io.Writer, caption string) error {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if caption == "" {
		if _, err := buf.WriteTo(w); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		return nil
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("%w: decode chart: %w", ErrRender, err)
	}
	if err := png.Encode(w, drawCaption(img, caption)); err != nil {
		return fmt.Errorf("%w: png encode: %w", ErrIO, err)
	}
	return nil
}

// Write renders ch to path, replacing any existing file. Nothing is written
// when rendering fails.
func Write(ch *chart.Chart, path, caption string) error {
	var buf bytes.Buffer
	if err := Encode(ch, &buf, caption); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}
