// Command automata runs a simulation headless, recording per-tick frames to a
// run store and optionally writing PNG snapshots.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"native-automata/internal/app"
	_ "native-automata/pkg/sims/ant"
	_ "native-automata/pkg/sims/elementary"
	_ "native-automata/pkg/sims/life"
	_ "native-automata/pkg/sims/sandpile"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 0
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	sum, err := app.Headless(ctx, cfg)
	stop()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("run %s: %d ticks (settled=%t, snapshots=%d)", sum.RunID, sum.Ticks, sum.Settled, sum.Snapshots)
}
