package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/devmichalek/Autonomous-Vehicles-Simulator/src/plot"
)

// Config controls a run. Every field has a usable default, so an empty
// config processes the working directory.
type Config struct {
	Dir       string `yaml:"dir"`
	Labels    string `yaml:"labels"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Parallel  int    `yaml:"parallel"`
	KeepGoing bool   `yaml:"keep_going"`
	Caption   bool   `yaml:"caption"`
	LogLevel  string `yaml:"log_level"`
}

// DefaultConfig returns the settings used without a config file or flags.
func DefaultConfig() Config {
	return Config{
		Dir:      ".",
		Labels:   DefaultLabels,
		Width:    plot.DefaultWidth,
		Height:   plot.DefaultHeight,
		Parallel: 1,
		LogLevel: "info",
	}
}

// LoadConfig decodes YAML from r on top of base. Keys absent from the
// document keep their base value; unknown keys are an error.
func LoadConfig(r io.Reader, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config file on top of base.
func LoadConfigFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := LoadConfig(f, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot honour.
func (c Config) Validate() error {
	var errs []error
	if c.Dir == "" {
		errs = append(errs, errors.New("dir must not be empty"))
	}
	if _, err := plot.LabelSetByName(c.Labels); err != nil {
		errs = append(errs, err)
	}
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("chart size %dx%d must not be negative", c.Width, c.Height))
	}
	if c.Parallel < 1 {
		errs = append(errs, fmt.Errorf("parallel must be at least 1, got %d", c.Parallel))
	}
	if _, ok := ParseLogLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
