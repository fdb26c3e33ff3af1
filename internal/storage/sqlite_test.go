//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteStoreRunAndFramesRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	run := Run{
		ID: "r1", Sim: "ants", Width: 16, Height: 16, Seed: 7,
		Config:  map[string]string{"ants": "3", "edge": "bounce"},
		Started: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}
	loaded, ok, err := store.GetRun(ctx, "r1")
	if err != nil || !ok {
		t.Fatalf("get run: ok=%v err=%v", ok, err)
	}
	if loaded.Sim != "ants" || loaded.Config["ants"] != "3" || !loaded.Started.Equal(run.Started) {
		t.Fatalf("unexpected run %+v", loaded)
	}

	frames := []Frame{
		{Tick: 1, Changed: true, Population: 3, Agents: 3},
		{Tick: 2, Changed: true, Population: 5, Agents: 2},
	}
	if err := store.AppendFrames(ctx, "r1", frames); err != nil {
		t.Fatalf("append frames: %v", err)
	}
	listed, err := store.ListFrames(ctx, "r1")
	if err != nil {
		t.Fatalf("list frames: %v", err)
	}
	if len(listed) != 2 || listed[1] != frames[1] {
		t.Fatalf("unexpected frames %+v", listed)
	}
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	if err := NewSQLiteStore("").Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
