package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/plot"
	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/stats"
)

const goodStats = "0.9;0.5;3;12.1;8.0\n0.95;0.55;4;11.8;8.3\n0.97;0.6;5;11.5;8.1\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(dir string) Config {
	cfg := DefaultConfig()
	cfg.Dir = dir
	cfg.Width = 800
	cfg.Height = 300
	return cfg
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, format, err := image.Decode(f)
	require.NoError(t, err)
	require.Equal(t, "png", format)
	return img
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", goodStats)
	writeFile(t, dir, "a.csv", goodStats)
	writeFile(t, dir, ".hidden.csv", goodStats)
	writeFile(t, dir, "notes.txt", "x")
	writeFile(t, dir, "upper.CSV", goodStats)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, files)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, stats.ErrIO)
}

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gen.csv", "0.9;0.5;3;12.1;8.0\n0.95;0.55;4;11.8;8.3\n\n9;9;9;9;9\n")

	res, err := Run(context.Background(), testConfig(dir))
	require.NoError(t, err)
	want := filepath.Join(dir, "gen.png")
	assert.Equal(t, []string{want}, res.Outputs)
	assert.Empty(t, res.Failed)

	img := decodePNG(t, want)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRun_FailFastStopsAtFirstError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", goodStats)
	bad := writeFile(t, dir, "b.csv", "0.9;0.5;3\n")
	writeFile(t, dir, "c.csv", goodStats)

	res, err := Run(context.Background(), testConfig(dir))
	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrParse)
	assert.ErrorIs(t, err, stats.ErrShortRow)
	assert.Equal(t, []string{bad}, res.Failed)

	// earlier output stays, later files are never processed
	assert.FileExists(t, filepath.Join(dir, "a.png"))
	assert.NoFileExists(t, filepath.Join(dir, "b.png"))
	assert.NoFileExists(t, filepath.Join(dir, "c.png"))
}

func TestRun_KeepGoing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", goodStats)
	writeFile(t, dir, "b.csv", "0.9;nan-ish;3;1;1\n")
	writeFile(t, dir, "c.csv", "")
	writeFile(t, dir, "d.csv", goodStats)

	cfg := testConfig(dir)
	cfg.KeepGoing = true
	res, err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrParse)
	assert.ErrorIs(t, err, plot.ErrRender)
	assert.Contains(t, err.Error(), "2 of 4")

	assert.Equal(t, []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "d.png")}, res.Outputs)
	assert.Equal(t, []string{filepath.Join(dir, "b.csv"), filepath.Join(dir, "c.csv")}, res.Failed)
}

func TestRun_Parallel(t *testing.T) {
	dir := t.TempDir()
	var want []string
	for i := 0; i < 6; i++ {
		writeFile(t, dir, fmt.Sprintf("run%d.csv", i), goodStats)
		want = append(want, filepath.Join(dir, fmt.Sprintf("run%d.png", i)))
	}
	cfg := testConfig(dir)
	cfg.Parallel = 3

	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, want, res.Outputs)
	for _, p := range want {
		decodePNG(t, p)
	}
}

func TestRun_NoFiles(t *testing.T) {
	res, err := Run(context.Background(), testConfig(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, res.Inputs)
	assert.Empty(t, res.Outputs)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Labels = "klingon"
	_, err := Run(context.Background(), cfg)
	assert.ErrorIs(t, err, plot.ErrUnknownLabelSet)
}

func TestRun_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", goodStats)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, testConfig(dir))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, res.Outputs)
	assert.NoFileExists(t, filepath.Join(dir, "a.png"))
}

func TestRun_BothLabelSetsProduceSameSizedCharts(t *testing.T) {
	for _, labels := range []string{plot.LabelsEnglish, plot.LabelsDomestic} {
		t.Run(labels, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "gen.csv", goodStats)
			cfg := testConfig(dir)
			cfg.Labels = labels
			_, err := Run(context.Background(), cfg)
			require.NoError(t, err)
			img := decodePNG(t, filepath.Join(dir, "gen.png"))
			assert.Equal(t, 800, img.Bounds().Dx())
		})
	}
}

func TestProcessFile_CaptionAndFooter(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "footer.csv", goodStats+"\nPopulation size: 40;\nGeneration: 3;\n")
	labels, err := plot.LabelSetByName(plot.LabelsEnglish)
	require.NoError(t, err)

	p := &Processor{Renderer: plot.NewRenderer(labels, 800, 300), Caption: true}
	out, err := p.ProcessFile(in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "footer.png"), out)
	decodePNG(t, out)
}

func TestProcessFile_MissingInput(t *testing.T) {
	labels, err := plot.LabelSetByName(plot.LabelsEnglish)
	require.NoError(t, err)
	p := &Processor{Renderer: plot.NewRenderer(labels, 0, 0)}
	_, err = p.ProcessFile(filepath.Join(t.TempDir(), "gone.csv"))
	assert.ErrorIs(t, err, stats.ErrIO)
}

func TestRun_NonFiniteValuesAreCharted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gen.csv", "nan;0.5;3;0.1;0.2\n0.95;0.55;4;inf;0.3\n0.97;NaN;5;0.1;0.25\n")

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := Run(context.Background(), testConfig(dir))
		done <- outcome{res, err}
	}()
	select {
	case o := <-done:
		require.NoError(t, o.err)
		assert.Equal(t, []string{filepath.Join(dir, "gen.png")}, o.res.Outputs)
		decodePNG(t, filepath.Join(dir, "gen.png"))
	case <-time.After(30 * time.Second):
		t.Fatal("run did not finish on a file with nan/inf fields")
	}
}

func TestProcessFile_EmptyFileIsOneRenderError(t *testing.T) {
	labels, err := plot.LabelSetByName(plot.LabelsEnglish)
	require.NoError(t, err)
	in := writeFile(t, t.TempDir(), "empty.csv", "")

	p := &Processor{Renderer: plot.NewRenderer(labels, 0, 0)}
	_, err = p.ProcessFile(in)
	require.ErrorIs(t, err, plot.ErrRender)
	assert.ErrorIs(t, err, plot.ErrNoGenerations)
	assert.Equal(t, 1, strings.Count(err.Error(), plot.ErrRender.Error()))
	assert.NoFileExists(t, plot.OutputPath(in))
}
