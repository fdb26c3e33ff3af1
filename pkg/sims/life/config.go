package life

import (
	"strconv"

	"native-automata/pkg/core"
)

// Config holds parameters for the totalistic automaton.
type Config struct {
	Width   int
	Height  int
	Rule    Rule
	Edge    core.EdgeMode
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Rule: Conway, Edge: core.EdgeWrap, Density: 0.5}
}

// FromMap populates a Config from a string map. Unparsable values keep their
// defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := ParseRule(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["edge"]; ok {
		if parsed, err := core.ParseEdgeMode(v); err == nil {
			c.Edge = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}
