package ant

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"native-automata/pkg/core"
)

var red = color.RGBA{R: 255, A: 255}

func TestFalloffRemovesAntLeavingGrid(t *testing.T) {
	g := core.NewGrid[uint8](5, 5)
	agents := []core.Agent{{Pos: image.Pt(2, 0), Dir: core.DirRight, Color: red}}

	// White cell: turn counter-clockwise to face up, then step off the top.
	res := StepAnts(g, core.EdgeFalloff, agents)
	if !res.Changed {
		t.Fatal("removal must report a change")
	}
	if len(res.Agents) != 0 {
		t.Fatalf("expected ant to be removed, got %+v", res.Agents)
	}
	if res.Grid.Cells[g.Index(2, 0)] != 1 {
		t.Fatal("the removed ant's write must persist")
	}
	if g.Cells[g.Index(2, 0)] != 0 {
		t.Fatal("input grid was modified")
	}
}

func TestWrapMovesAcrossEdge(t *testing.T) {
	g := core.NewGrid[uint8](5, 3)
	res := StepAnts(g, core.EdgeWrap, []core.Agent{{Pos: image.Pt(0, 0), Dir: core.DirUp, Color: red}})
	if len(res.Agents) != 1 {
		t.Fatalf("wrap must keep the ant, got %d", len(res.Agents))
	}
	a := res.Agents[0]
	if a.Pos != image.Pt(4, 0) || a.Dir != core.DirLeft || a.Color != red {
		t.Fatalf("unexpected ant %+v", a)
	}
}

func TestBounceReversesAndClamps(t *testing.T) {
	g := core.NewGrid[uint8](4, 4)
	res := StepAnts(g, core.EdgeBounce, []core.Agent{{Pos: image.Pt(0, 2), Dir: core.DirUp}})
	if len(res.Agents) != 1 {
		t.Fatalf("bounce must keep the ant, got %d", len(res.Agents))
	}
	a := res.Agents[0]
	if a.Pos != image.Pt(1, 2) || a.Dir != core.DirRight {
		t.Fatalf("expected reflection to (1,2) facing right, got %+v", a)
	}
	if res.Grid.Cells[g.Index(0, 2)] != 1 {
		t.Fatal("cell under the ant should be set")
	}

	// On a 1x1 grid every step leaves the grid; the reflected step is clamped.
	tiny := core.NewGrid[uint8](1, 1)
	res = StepAnts(tiny, core.EdgeBounce, []core.Agent{{Pos: image.Pt(0, 0), Dir: core.DirRight}})
	if len(res.Agents) != 1 || res.Agents[0].Pos != image.Pt(0, 0) || res.Agents[0].Dir != core.DirDown {
		t.Fatalf("unexpected 1x1 bounce %+v", res.Agents)
	}
}

func TestAntsMoveSequentially(t *testing.T) {
	g := core.NewGrid[uint8](5, 5)
	agents := []core.Agent{
		{Pos: image.Pt(2, 2), Dir: core.DirUp},
		{Pos: image.Pt(2, 2), Dir: core.DirUp},
	}
	res := StepAnts(g, core.EdgeWrap, agents)
	if len(res.Agents) != 2 {
		t.Fatalf("expected 2 ants, got %d", len(res.Agents))
	}
	// The second ant sees the first ant's write and turns the other way.
	if res.Agents[0].Pos != image.Pt(1, 2) || res.Agents[1].Pos != image.Pt(3, 2) {
		t.Fatalf("unexpected positions %v %v", res.Agents[0].Pos, res.Agents[1].Pos)
	}
	if res.Grid.Cells[g.Index(2, 2)] != 0 {
		t.Fatal("second ant should have cleared the shared cell")
	}
}

func TestOffGridAntIsDropped(t *testing.T) {
	g := core.NewGrid[uint8](3, 3)
	agents := []core.Agent{
		{Pos: image.Pt(7, 1), Dir: core.DirUp},
		{Pos: image.Pt(1, 1), Dir: core.DirDown, Color: red},
	}
	res := StepAnts(g, core.EdgeWrap, agents)
	if !res.Changed {
		t.Fatal("dropping an ant must report a change")
	}
	if len(res.Agents) != 1 || res.Agents[0].Color != red {
		t.Fatalf("expected only the in-grid ant to survive, got %+v", res.Agents)
	}
}

func TestNoAgentsOrInvalidGridIsNoop(t *testing.T) {
	g := core.NewGrid[uint8](3, 3)
	if res := StepAnts(g, core.EdgeWrap, nil); res.Changed || len(res.Agents) != 0 {
		t.Fatal("no agents must be a no-op")
	}
	bad := core.Grid[uint8]{W: 3, H: 3, Cells: make([]uint8, 2)}
	agents := []core.Agent{{Pos: image.Pt(0, 0)}}
	res := StepTurmites(bad, core.EdgeWrap, agents, "RL")
	if res.Changed || len(res.Agents) != 1 || len(res.Grid.Cells) != 2 {
		t.Fatalf("invalid grid must be returned unchanged, got %+v", res)
	}
}

func TestNormalizeRule(t *testing.T) {
	cases := map[string]string{"": "RL", "r": "RL", "é": "RL", "lr": "LR", "rllr": "RLLR", "éR": "ÉR"}
	for in, want := range cases {
		if got := NormalizeRule(in); got != want {
			t.Fatalf("NormalizeRule(%q)=%q, expected %q", in, got, want)
		}
	}
}

func TestTurmiteClampsRuleIndex(t *testing.T) {
	g := core.NewGrid[uint8](3, 3)
	g.Cells[g.Index(1, 1)] = 2
	res := StepTurmites(g, core.EdgeWrap, []core.Agent{{Pos: image.Pt(1, 1), Dir: core.DirUp}}, "rl")
	// Value 2 clamps to index 1 ('L'); the cell is flipped with byte arithmetic.
	if res.Agents[0].Dir != core.DirLeft {
		t.Fatalf("dir %d, expected left", res.Agents[0].Dir)
	}
	if got := res.Grid.Cells[g.Index(1, 1)]; got != 255 {
		t.Fatalf("cell %d, expected 255", got)
	}
}

func TestTurmiteCountsRuleInCharacters(t *testing.T) {
	g := core.NewGrid[uint8](5, 5)
	agents := []core.Agent{{Pos: image.Pt(2, 2), Dir: core.DirUp}}

	got := StepTurmites(g, core.EdgeWrap, agents, "é")
	want := StepTurmites(g, core.EdgeWrap, agents, DefaultTurmiteRule)
	if !slices.Equal(got.Agents, want.Agents) || !slices.Equal(got.Grid.Cells, want.Grid.Cells) {
		t.Fatalf("one-character rule should fall back to %s: got %+v, expected %+v", DefaultTurmiteRule, got.Agents, want.Agents)
	}

	// Cell value 1 reads the second character, 'R', not the second byte of 'É'.
	g.Cells[g.Index(2, 2)] = 1
	res := StepTurmites(g, core.EdgeWrap, agents, "ér")
	if res.Agents[0].Dir != core.DirRight || res.Agents[0].Pos != image.Pt(3, 2) {
		t.Fatalf("expected a right turn to (3,2), got %+v", res.Agents[0])
	}
}

func TestTurmiteLeavesInputUntouched(t *testing.T) {
	g, agents := seededState(7, 8, 8, 3)
	cells := slices.Clone(g.Cells)
	before := slices.Clone(agents)
	for _, mode := range []core.EdgeMode{core.EdgeWrap, core.EdgeBounce, core.EdgeFalloff} {
		StepTurmites(g, mode, agents, "RLR")
	}
	if !slices.Equal(g.Cells, cells) {
		t.Fatal("input grid was modified")
	}
	if !slices.Equal(agents, before) {
		t.Fatal("input agents were modified")
	}
}

func seededState(seed int64, w, h, n int) (core.ByteGrid, []core.Agent) {
	rng := core.NewRNG(seed).Source()
	g := core.NewGrid[uint8](w, h)
	core.FillDensity(rng, g.Cells, 0.3)
	return g, core.RandomAgents(rng, g.Size(), n, nil)
}

func TestTurmiteLRMatchesAnt(t *testing.T) {
	for _, mode := range []core.EdgeMode{core.EdgeWrap, core.EdgeBounce, core.EdgeFalloff} {
		g, agents := seededState(11, 12, 10, 3)
		antGrid, antAgents := g, agents
		turGrid, turAgents := g, agents
		for step := 0; step < 150; step++ {
			a := StepAnts(antGrid, mode, antAgents)
			b := StepTurmites(turGrid, mode, turAgents, "LR")
			if a.Changed != b.Changed {
				t.Fatalf("%v step %d: changed %v vs %v", mode, step, a.Changed, b.Changed)
			}
			if !slices.Equal(a.Grid.Cells, b.Grid.Cells) || !slices.Equal(a.Agents, b.Agents) {
				t.Fatalf("%v step %d: trajectories diverged", mode, step)
			}
			antGrid, antAgents = a.Grid, a.Agents
			turGrid, turAgents = b.Grid, b.Agents
		}
	}
}

// mirror reflects a state across the vertical axis, which swaps left and
// right turns.
func mirror(g core.ByteGrid, agents []core.Agent) (core.ByteGrid, []core.Agent) {
	m := core.NewGrid[uint8](g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			m.Cells[m.Index(g.W-1-x, y)] = g.Cells[g.Index(x, y)]
		}
	}
	out := make([]core.Agent, len(agents))
	for i, a := range agents {
		dir := a.Dir
		switch dir {
		case core.DirLeft:
			dir = core.DirRight
		case core.DirRight:
			dir = core.DirLeft
		}
		out[i] = core.Agent{Pos: image.Pt(g.W-1-a.Pos.X, a.Pos.Y), Dir: dir, Color: a.Color}
	}
	return m, out
}

func TestTurmiteRLMirrorsAnt(t *testing.T) {
	for _, mode := range []core.EdgeMode{core.EdgeWrap, core.EdgeBounce, core.EdgeFalloff} {
		antGrid, antAgents := seededState(5, 9, 9, 2)
		turGrid, turAgents := mirror(antGrid, antAgents)
		for step := 0; step < 120; step++ {
			a := StepAnts(antGrid, mode, antAgents)
			b := StepTurmites(turGrid, mode, turAgents, "RL")
			wantGrid, wantAgents := mirror(a.Grid, a.Agents)
			if !slices.Equal(wantGrid.Cells, b.Grid.Cells) || !slices.Equal(wantAgents, b.Agents) {
				t.Fatalf("%v step %d: RL turmite is not the mirror image of the ant", mode, step)
			}
			antGrid, antAgents = a.Grid, a.Agents
			turGrid, turAgents = b.Grid, b.Agents
		}
	}
}

func TestColonyReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Ants = 16, 16, 6
	c := NewTurmites(cfg)
	c.Reset(3)
	if len(c.Agents()) != 6 {
		t.Fatalf("expected 6 agents, got %d", len(c.Agents()))
	}
	first := slices.Clone(c.Agents())
	c.Step()
	if !c.Changed() {
		t.Fatal("a turmite step should change the grid")
	}
	c.Reset(3)
	if !slices.Equal(first, c.Agents()) {
		t.Fatal("Reset with the same seed must place the same agents")
	}
}

func TestColonySetAgents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	c := NewAnts(cfg)
	c.Reset(1)
	c.SetAgents([]core.Agent{{Pos: image.Pt(3, 0), Dir: core.DirUp, Color: red}})

	// White cell: turn left from up and step to (2,0).
	c.Step()
	got := c.Agents()
	if len(got) != 1 || got[0].Pos != image.Pt(2, 0) || got[0].Dir != core.DirLeft {
		t.Fatalf("unexpected agents %+v", got)
	}
	if c.Cells()[3] != 1 {
		t.Fatal("the ant should have set the cell it left")
	}
}
