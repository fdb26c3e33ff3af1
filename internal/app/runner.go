package app

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"native-automata/internal/render"
	"native-automata/internal/storage"
	"native-automata/pkg/core"
	"native-automata/pkg/sims/sandpile"
)

const frameBatch = 256

type heightsProvider interface {
	Heights() core.HeightGrid
}

type rowProvider interface {
	Row() int
}

// Runner steps a sim without a window, recording every tick into a store and
// optionally writing PNG snapshots.
type Runner struct {
	Sim   core.Sim
	Store storage.Store

	// Out is the snapshot directory; empty disables snapshots.
	Out string
	// Every writes a snapshot every N ticks. The final tick is always written
	// when Out is set.
	Every int
	// TPS paces ticks; zero runs as fast as possible.
	TPS int

	Logf func(format string, args ...any)
}

// Summary describes a finished run.
type Summary struct {
	RunID     string
	Ticks     int
	Settled   bool
	Snapshots int
}

// Run resets the sim with run.Seed and advances it up to steps ticks. It
// stops early once the sim reports that a tick changed nothing.
func (r *Runner) Run(ctx context.Context, run storage.Run, steps int) (Summary, error) {
	if r.Sim == nil {
		return Summary{}, fmt.Errorf("runner has no sim")
	}
	logf := r.Logf
	if logf == nil {
		logf = log.Printf
	}

	r.Sim.Reset(run.Seed)
	size := r.Sim.Size()
	run.Sim = r.Sim.Name()
	run.Width, run.Height = size.W, size.H
	if run.Started.IsZero() {
		run.Started = time.Now()
	}
	if run.ID == "" {
		run.ID = fmt.Sprintf("%s-%d-%d", run.Sim, run.Seed, run.Started.UnixNano())
	}
	summary := Summary{RunID: run.ID}

	if r.Store != nil {
		if err := r.Store.SaveRun(ctx, run); err != nil {
			return summary, fmt.Errorf("save run %s: %w", run.ID, err)
		}
	}
	if r.Out != "" {
		if err := os.MkdirAll(r.Out, 0o755); err != nil {
			return summary, fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	var pacer *core.FixedStep
	if r.TPS > 0 {
		pacer = core.NewFixedStep(r.TPS)
	}

	var pending []storage.Frame
	flush := func() error {
		if r.Store == nil || len(pending) == 0 {
			return nil
		}
		err := r.Store.AppendFrames(ctx, run.ID, pending)
		pending = pending[:0]
		if err != nil {
			return fmt.Errorf("append frames: %w", err)
		}
		return nil
	}

	for tick := 1; tick <= steps; tick++ {
		if err := ctx.Err(); err != nil {
			_ = flush()
			return summary, err
		}
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				_ = flush()
				return summary, err
			}
		}

		r.Sim.Step()
		summary.Ticks = tick
		frame := r.frame(tick)
		pending = append(pending, frame)
		if len(pending) >= frameBatch {
			if err := flush(); err != nil {
				return summary, err
			}
		}

		settled := !frame.Changed
		last := tick == steps || settled
		if r.Out != "" && (last || (r.Every > 0 && tick%r.Every == 0)) {
			if err := r.snapshot(tick); err != nil {
				return summary, err
			}
			summary.Snapshots++
		}
		if settled {
			summary.Settled = true
			logf("%s settled at tick %d", run.Sim, tick)
			break
		}
	}

	if err := flush(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (r *Runner) frame(tick int) storage.Frame {
	f := storage.Frame{Tick: tick, Changed: true, Row: -1}
	if cr, ok := r.Sim.(core.ChangeReporter); ok {
		f.Changed = cr.Changed()
	}
	if hp, ok := r.Sim.(heightsProvider); ok {
		f.Population = sandpile.Total(hp.Heights())
	} else {
		for _, c := range r.Sim.Cells() {
			if c != 0 {
				f.Population++
			}
		}
	}
	if ap, ok := r.Sim.(core.AgentProvider); ok {
		f.Agents = len(ap.Agents())
	}
	if rp, ok := r.Sim.(rowProvider); ok {
		f.Row = rp.Row()
	}
	return f
}

func (r *Runner) snapshot(tick int) error {
	size := r.Sim.Size()
	var palette []color.RGBA
	if pp, ok := r.Sim.(core.PaletteProvider); ok {
		palette = pp.Palette()
	}
	img := render.Frame(r.Sim.Cells(), size.W, size.H, palette)
	if img == nil {
		return fmt.Errorf("tick %d: cell buffer does not match %dx%d", tick, size.W, size.H)
	}
	if ap, ok := r.Sim.(core.AgentProvider); ok {
		render.DrawAgents(img, ap.Agents())
	}

	path := filepath.Join(r.Out, fmt.Sprintf("%s-%05d.png", r.Sim.Name(), tick))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode snapshot %s: %w", path, err)
	}
	return f.Close()
}
