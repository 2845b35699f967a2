package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the viewers.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	Rows  int
	Cols  int
	Wrap  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "dirac", Scale: 4, TPS: 30, Seed: 1337, Rows: 192, Cols: 192, Wrap: true}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Rows, "rows", c.Rows, "automaton rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "automaton cols")
	fs.BoolVar(&c.Wrap, "wrap", c.Wrap, "toroidal topology")
}

// SimOptions converts the flag values into the registry's key/value form.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"rows": strconv.Itoa(c.Rows),
		"cols": strconv.Itoa(c.Cols),
		"wrap": strconv.FormatBool(c.Wrap),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
}
