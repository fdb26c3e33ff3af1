package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"native-automata/internal/storage"
	"native-automata/pkg/core"
	"native-automata/pkg/sims/ant"
	"native-automata/pkg/sims/elementary"
	"native-automata/pkg/sims/life"
	"native-automata/pkg/sims/sandpile"
)

func newStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func quiet(string, ...any) {}

func TestRunnerStopsWhenSweepExhausted(t *testing.T) {
	store := newStore(t)
	r := &Runner{Sim: elementary.New(9, 4, 90), Store: store, Logf: quiet}

	sum, err := r.Run(context.Background(), storage.Run{ID: "sweep", Seed: 1}, 50)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !sum.Settled || sum.Ticks != 4 {
		t.Fatalf("expected settle at tick 4, got %+v", sum)
	}

	frames, err := store.ListFrames(context.Background(), "sweep")
	if err != nil {
		t.Fatalf("list frames: %v", err)
	}
	var rows []int
	var changed []bool
	for _, f := range frames {
		rows = append(rows, f.Row)
		changed = append(changed, f.Changed)
	}
	if !slices.Equal(rows, []int{2, 3, 4, 4}) {
		t.Fatalf("unexpected cursor trail %v", rows)
	}
	if !slices.Equal(changed, []bool{true, true, true, false}) {
		t.Fatalf("unexpected change trail %v", changed)
	}

	run, ok, err := store.GetRun(context.Background(), "sweep")
	if err != nil || !ok {
		t.Fatalf("get run: ok=%v err=%v", ok, err)
	}
	if run.Sim != "elementary" || run.Width != 9 || run.Height != 4 {
		t.Fatalf("unexpected run record %+v", run)
	}
}

func TestRunnerEmptyLifeSettlesImmediately(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Density = 8, 8, 0
	store := newStore(t)
	r := &Runner{Sim: life.NewWithConfig(cfg), Store: store, Logf: quiet}

	sum, err := r.Run(context.Background(), storage.Run{Seed: 3}, 10)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Ticks != 1 || !sum.Settled {
		t.Fatalf("expected settle on first tick, got %+v", sum)
	}
	if sum.RunID == "" {
		t.Fatalf("expected generated run id")
	}
	frames, _ := store.ListFrames(context.Background(), sum.RunID)
	if len(frames) != 1 || frames[0].Population != 0 || frames[0].Row != -1 {
		t.Fatalf("unexpected frames %+v", frames)
	}
}

func TestRunnerSandpilePopulationCountsGrains(t *testing.T) {
	cfg := sandpile.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Max, cfg.Drop = 5, 5, 0, 8
	cfg.Edge = core.EdgeWrap
	store := newStore(t)
	r := &Runner{Sim: sandpile.NewWithConfig(cfg), Store: store, Logf: quiet}

	sum, err := r.Run(context.Background(), storage.Run{ID: "pile"}, 6)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	frames, _ := store.ListFrames(context.Background(), "pile")
	if len(frames) != sum.Ticks {
		t.Fatalf("expected %d frames, got %d", sum.Ticks, len(frames))
	}
	// Drops add grains and wrapped toppling conserves them.
	if frames[0].Population != 8 {
		t.Fatalf("expected 8 grains after first drop, got %d", frames[0].Population)
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].Population < frames[i-1].Population {
			t.Fatalf("grain count fell at tick %d: %d -> %d", frames[i].Tick, frames[i-1].Population, frames[i].Population)
		}
	}
}

func TestRunnerWritesSnapshots(t *testing.T) {
	cfg := ant.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Ants = 16, 16, 2
	dir := filepath.Join(t.TempDir(), "frames")
	r := &Runner{Sim: ant.NewAnts(cfg), Out: dir, Every: 2, Logf: quiet}

	sum, err := r.Run(context.Background(), storage.Run{ID: "ants", Seed: 5}, 5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Snapshots != 3 {
		t.Fatalf("expected 3 snapshots, got %d", sum.Snapshots)
	}
	for _, name := range []string{"ants-00002.png", "ants-00004.png", "ants-00005.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing snapshot %s: %v", name, err)
		}
	}
}

func TestRunnerHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Sim: elementary.New(9, 9, 30), Store: newStore(t), Logf: quiet}

	sum, err := r.Run(ctx, storage.Run{ID: "cancelled"}, 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sum.Ticks != 0 {
		t.Fatalf("expected no ticks, got %d", sum.Ticks)
	}
}

func TestRunnerReportsStoreErrors(t *testing.T) {
	r := &Runner{Sim: elementary.New(9, 9, 30), Store: storage.NewMemoryStore(), Logf: quiet}
	_, err := r.Run(context.Background(), storage.Run{ID: "x"}, 1)
	if !errors.Is(err, storage.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestConfigSimConfig(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.set.Set("rule=B36/S23"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cfg.set.Set(" w = 64 "); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cfg.set.Set("missing"); err == nil {
		t.Fatalf("expected error for value without '='")
	}
	got := cfg.SimConfig()
	if got["rule"] != "B36/S23" || got["w"] != "64" || len(got) != 2 {
		t.Fatalf("unexpected sim config %v", got)
	}
}

func TestHeadlessRunsRegisteredSim(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim, cfg.TPS, cfg.Steps = "elementary", 0, 20
	for _, kv := range []string{"w=9", "h=4", "rule=90"} {
		if err := cfg.set.Set(kv); err != nil {
			t.Fatalf("set %s: %v", kv, err)
		}
	}
	sum, err := Headless(context.Background(), cfg)
	if err != nil {
		t.Fatalf("headless: %v", err)
	}
	if !sum.Settled || sum.Ticks != 4 {
		t.Fatalf("expected settle at tick 4, got %+v", sum)
	}
}

func TestHeadlessReportsSetupErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim = "no-such-sim"
	if _, err := Headless(context.Background(), cfg); err == nil {
		t.Fatal("expected an error for an unknown sim")
	}

	cfg = NewConfig()
	cfg.Store = "bogus"
	if _, err := Headless(context.Background(), cfg); err == nil {
		t.Fatal("expected an error for an unknown store backend")
	}
}
