// Package pipeline discovers statistics files in a directory and turns each
// one into a chart: load, render, write. Files share no state, so they can be
// processed one at a time (default, in listing order) or with bounded
// parallelism.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/plot"
	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/stats"
)

// InputExt is the extension of discovered statistics files.
const InputExt = ".csv"

// Discover lists the statistics files directly inside dir, sorted by name.
// Directories and dotfiles are skipped.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", stats.ErrIO, dir, err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != InputExt {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}

// Processor runs the load → render → write chain for one file.
type Processor struct {
	Renderer *plot.Renderer
	Caption  bool
}

// ProcessFile charts one statistics file and returns the written image path.
func (p *Processor) ProcessFile(path string) (string, error) {
	lg := ForFile(path)
	defer lg.Elapsed(time.Now(), "process")

	run, err := stats.Load(path)
	if err != nil {
		return "", err
	}
	for _, e := range run.Footer {
		lg.Debugf("footer %s=%s", e.Key, e.Value)
	}
	ch, err := p.Renderer.Render(run)
	if err != nil {
		return "", err
	}
	// Render has checked the series lengths
	n := len(run.Column(stats.BestFitness))
	out := plot.OutputPath(path)
	caption := ""
	if p.Caption {
		caption = fmt.Sprintf("%s | %d generations", filepath.Base(path), n)
	}
	if err := plot.Write(ch, out, caption); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	lg.Infof("wrote %s (%d generations, labels=%s)", out, n, p.Renderer.Labels.Name)
	return out, nil
}

// Result lists what a run produced, in input order.
type Result struct {
	Inputs  []string
	Outputs []string
	Failed  []string
}

// Run processes every statistics file in cfg.Dir.
//
// By default the first failure stops the run; charts already written stay
// on disk. With KeepGoing every file is attempted and all failures are
// returned joined. Cancelling ctx stops scheduling further files.
func Run(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	if err := cfg.Validate(); err != nil {
		return res, fmt.Errorf("invalid config: %w", err)
	}
	labels, err := plot.LabelSetByName(cfg.Labels)
	if err != nil {
		return res, err
	}
	files, err := Discover(cfg.Dir)
	if err != nil {
		return res, err
	}
	res.Inputs = files
	if len(files) == 0 {
		Warnf("no %s files in %s", InputExt, cfg.Dir)
		return res, nil
	}
	Infof("charting %d file(s) from %s (labels=%s, parallel=%d)", len(files), cfg.Dir, labels.Name, cfg.Parallel)

	p := &Processor{Renderer: plot.NewRenderer(labels, cfg.Width, cfg.Height), Caption: cfg.Caption}
	outputs := make([]string, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			out, err := p.ProcessFile(f)
			if err != nil {
				failures[i] = err
				if cfg.KeepGoing {
					ForFile(f).Errorf("%v", err)
					return nil
				}
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	runErr := g.Wait()

	for i, f := range files {
		if outputs[i] != "" {
			res.Outputs = append(res.Outputs, outputs[i])
		}
		if failures[i] != nil {
			res.Failed = append(res.Failed, f)
		}
	}
	if runErr != nil {
		return res, runErr
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if len(res.Failed) > 0 {
		return res, fmt.Errorf("%d of %d file(s) failed: %w", len(res.Failed), len(files), errors.Join(failures...))
	}
	return res, nil
}
