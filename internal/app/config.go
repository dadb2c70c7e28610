package app

import (
	"github.com/spf13/pflag"

	"mad-grid/internal/config"
)

// Config holds the viewer's command-line parameters.
type Config struct {
	Scenario string
	Scale    int
	TPS      int
	Seed     int64
	Panel    int
	Set      []string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{Scenario: "life", Scale: 3, TPS: 60, Seed: 42, Panel: 220}
}

// Bind attaches the configuration to fs.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for scenario reset")
	fs.IntVar(&c.Panel, "panel", c.Panel, "side panel width in pixels, 0 hides it")
	fs.StringArrayVar(&c.Set, "set", c.Set, "scenario parameter override key=value (repeatable)")
}

// Params returns the parsed --set overrides.
func (c *Config) Params() (map[string]string, error) {
	return config.ParseOverrides(c.Set)
}
