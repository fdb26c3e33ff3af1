package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"native-automata/internal/storage"
	"native-automata/pkg/core"
)

// Headless opens the configured store, runs the configured sim through a
// Runner and closes the store on every path. Cancellation is not an error.
func Headless(ctx context.Context, cfg *Config) (summary Summary, err error) {
	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return Summary{}, fmt.Errorf("unknown sim %q (available: %s)", cfg.Sim, strings.Join(core.SimNames(), ", "))
	}

	store, err := storage.NewStore(cfg.Store, cfg.DB)
	if err != nil {
		return Summary{}, fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := storage.CloseIfSupported(store); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	if err := store.Init(ctx); err != nil {
		return Summary{}, fmt.Errorf("init store: %w", err)
	}

	simCfg := cfg.SimConfig()
	runner := &Runner{
		Sim:   factory(simCfg),
		Store: store,
		Out:   cfg.Out,
		Every: cfg.Every,
		TPS:   cfg.TPS,
	}
	summary, err = runner.Run(ctx, storage.Run{Seed: cfg.Seed, Config: simCfg}, cfg.Steps)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return summary, fmt.Errorf("run %s: %w", summary.RunID, err)
	}
	return summary, nil
}
