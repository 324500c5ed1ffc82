// Package main is a minimal CLI driving one swarm-coordination tick
// loop against the in-process ORCH facade.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nervosys/autonomysim-swarmcore/dec"
	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
	"github.com/nervosys/autonomysim-swarmcore/orch"
)

func main() {
	var (
		agents = flag.Int("agents", 5, "number of simulated agents to register")
		ticks  = flag.Int("ticks", 20, "number of update ticks to run")
		rateHz = flag.Float64("rate", 10, "tick rate in Hz")
	)
	flag.Parse()

	os.Exit(run(*agents, *ticks, *rateHz))
}

func run(agentCount, ticks int, rateHz float64) int {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	o := orch.New(logger)
	cfg := orch.NewDefaultConfig()
	cfg.FORM.UpdateRateHz = swarmid.Scalar(rateHz)
	if !o.Initialize(cfg) {
		fmt.Fprintln(os.Stderr, "error: initialize failed")
		return 1
	}
	if !o.Start() {
		fmt.Fprintln(os.Stderr, "error: start failed")
		return 1
	}
	defer o.Stop()

	for i := 0; i < agentCount; i++ {
		id := fmt.Sprintf("agent-%02d", i)
		state := dec.AgentState{
			ID:       id,
			Position: swarmid.Vec3{X: swarmid.Scalar(i) * 2, Y: 0},
			Energy:   1.0,
			Capabilities: map[string]swarmid.Scalar{
				"sensing": 0.8,
			},
		}
		if !o.AddAgent(state) {
			fmt.Fprintf(os.Stderr, "warning: could not register %s\n", id)
		}
	}
	o.SetFormationLeader("agent-00")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\ninterrupted, shutting down...")
		cancel()
	}()

	dt := 1.0 / rateHz
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return 0
		default:
		}
		o.Update(swarmid.Scalar(dt))

		state := o.GetSwarmState()
		fmt.Printf("tick=%d agents=%d centroid=%+v cohesion=%.3f dispersion=%.3f\n",
			i, state.AgentCount, state.Centroid, state.Cohesion, state.Dispersion)

		time.Sleep(time.Duration(dt * float64(time.Second)))
	}

	return 0
}
