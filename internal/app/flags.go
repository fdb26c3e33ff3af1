package app

import (
	"flag"
	"fmt"
	"strings"
)

// kvList collects repeatable key=value flags.
type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters for the application.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64

	Steps int
	Out   string
	Every int
	Store string
	DB    string

	set kvList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Scale: 3, TPS: 60, Seed: 42, Steps: 500, Store: "memory"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 runs headless ticks unpaced)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Steps, "steps", c.Steps, "ticks to run in headless mode")
	fs.StringVar(&c.Out, "out", c.Out, "directory for PNG snapshots (empty disables)")
	fs.IntVar(&c.Every, "every", c.Every, "write a snapshot every N ticks (0 writes only the last)")
	fs.StringVar(&c.Store, "store", c.Store, "run store backend: memory or sqlite")
	fs.StringVar(&c.DB, "db", c.DB, "sqlite database path")
	fs.Var(&c.set, "set", "simulation parameter in key=value form (repeatable)")
}

// SimConfig returns the -set overrides as a map for the sim factories.
func (c *Config) SimConfig() map[string]string {
	if len(c.set) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.set))
	for _, kv := range c.set {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}
