// evoplot renders one chart per simulation statistics file.
//
// With no arguments it charts every *.csv in the current directory and writes
// <name>.png next to each input. The default label language is fixed at build
// time (-tags domestic for Polish, English otherwise) and can be overridden
// with -labels or a YAML config file.
//
// Precedence: built-in defaults < -config file < flags given on the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/pipeline"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and charts the configured directory. Usage text and log
// lines go to stderr.
func run(args []string, stderr io.Writer) error {
	def := pipeline.DefaultConfig()
	fs := flag.NewFlagSet("evoplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Optional YAML config file")
	dir := fs.String("dir", def.Dir, "Directory scanned for *.csv statistics files")
	labels := fs.String("labels", def.Labels, "Label set: domestic|english")
	width := fs.Int("width", def.Width, "Chart width in pixels")
	height := fs.Int("height", def.Height, "Chart height in pixels (0 keeps the default aspect ratio)")
	parallel := fs.Int("parallel", def.Parallel, "Files charted concurrently")
	keepGoing := fs.Bool("keep-going", def.KeepGoing, "Continue with remaining files after a failure")
	caption := fs.Bool("caption", def.Caption, "Stamp file name and generation count onto each chart")
	logLevel := fs.String("log-level", def.LogLevel, "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = pipeline.LoadConfigFile(*configPath, def); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Dir = *dir
		case "labels":
			cfg.Labels = *labels
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "parallel":
			cfg.Parallel = *parallel
		case "keep-going":
			cfg.KeepGoing = *keepGoing
		case "caption":
			cfg.Caption = *caption
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	pipeline.SetLogOutput(stderr)
	pipeline.SetLogLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	pipeline.Infof("done: %d chart(s) written", len(res.Outputs))
	return nil
}
